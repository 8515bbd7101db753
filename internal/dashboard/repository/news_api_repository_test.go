package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNewsAPIArticles(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		payload   string
		wantErr   bool
		wantLen   int
		wantFirst map[string]string
	}{
		{
			name: "success: maps fields",
			payload: `{"status":"ok","totalResults":1,"articles":[
				{"source":{"id":null,"name":"日経"},"title":"日経平均が続伸","description":"買いが優勢","url":"https://example.com/1","publishedAt":"2024-01-01T09:00:00Z"}]}`,
			wantLen: 1,
			wantFirst: map[string]string{
				"title": "日経平均が続伸", "description": "買いが優勢", "source": "日経",
				"publishedAt": "2024-01-01T09:00:00.000Z", "url": "https://example.com/1",
			},
		},
		{
			name:    "success: fallbacks for null fields",
			payload: `{"status":"ok","articles":[{"source":{"id":null,"name":null},"title":null,"description":null,"url":null,"publishedAt":null}]}`,
			wantLen: 1,
			wantFirst: map[string]string{
				"title": FallbackTitle, "description": FallbackDescription, "source": FallbackSource,
				"publishedAt": "2024-03-01T12:00:00.000Z", "url": "",
			},
		},
		{
			name: "success: truncated to five",
			payload: `{"status":"ok","articles":[{"title":"1"},{"title":"2"},{"title":"3"},{"title":"4"},{"title":"5"},{"title":"6"}]}`,
			wantLen: 5,
		},
		{
			name:    "failure: error status",
			payload: `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`,
			wantErr: true,
		},
		{
			name:    "failure: no articles",
			payload: `{"status":"ok","articles":[]}`,
			wantErr: true,
		},
		{
			name:    "failure: invalid json",
			payload: `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items, err := ParseNewsAPIArticles([]byte(tt.payload), 5, now)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, items, tt.wantLen)
			if tt.wantFirst != nil {
				assert.Equal(t, tt.wantFirst["title"], items[0].Title)
				assert.Equal(t, tt.wantFirst["description"], items[0].Description)
				assert.Equal(t, tt.wantFirst["source"], items[0].Source)
				assert.Equal(t, tt.wantFirst["publishedAt"], items[0].PublishedAt)
				assert.Equal(t, tt.wantFirst["url"], items[0].URL)
			}
		})
	}
}

func TestNewsAPIRepository_FetchNews(t *testing.T) {
	t.Parallel()

	t.Run("success: top headlines with key header", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotKey, gotCountry string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("X-Api-Key")
			gotCountry = r.URL.Query().Get("country")
			_, _ = w.Write([]byte(`{"status":"ok","articles":[{"title":"t","source":{"name":"s"}}]}`))
		}))
		defer server.Close()

		cfg := &config.Config{
			News:    config.News{Timeout: 5 * time.Second},
			NewsAPI: config.NewsAPI{BaseURL: server.URL, APIKey: "secret", Country: "jp", Category: "business", PageSize: 5},
		}
		repo := NewNewsAPIRepository(cfg, logger.NewNop(), server.Client())
		items, err := repo.FetchNews(context.Background())

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "/top-headlines", gotPath)
		assert.Equal(t, "secret", gotKey)
		assert.Equal(t, "jp", gotCountry)
	})

	t.Run("success: keyword uses everything endpoint", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("q")
			_, _ = w.Write([]byte(`{"status":"ok","articles":[{"title":"t"}]}`))
		}))
		defer server.Close()

		cfg := &config.Config{
			News:    config.News{Timeout: 5 * time.Second},
			NewsAPI: config.NewsAPI{BaseURL: server.URL, APIKey: "secret", Keyword: "日経平均", PageSize: 5},
		}
		repo := NewNewsAPIRepository(cfg, logger.NewNop(), server.Client())
		_, err := repo.FetchNews(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/everything", gotPath)
		assert.Equal(t, "日経平均", gotQuery)
	})

	t.Run("failure: unauthorized", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid"}`))
		}))
		defer server.Close()

		cfg := &config.Config{
			News:    config.News{Timeout: 5 * time.Second},
			NewsAPI: config.NewsAPI{BaseURL: server.URL, APIKey: "bad"},
		}
		repo := NewNewsAPIRepository(cfg, logger.NewNop(), server.Client())
		_, err := repo.FetchNews(context.Background())

		assert.Error(t, err)
	})
}
