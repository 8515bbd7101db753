package service

import (
	"context"
	"testing"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/dashboard/repository"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(newsRepo *fakeNewsRepository, digest repository.DigestRepository) DashboardService {
	cfg := &config.Config{
		News:      config.News{CacheTTL: time.Hour},
		Scheduler: config.Scheduler{SnapshotTTL: time.Hour},
	}
	news := newTestNewsService(newsRepo)
	stocks := newTestStockService(
		[]entity.Instrument{{Code: "7203", Name: "トヨタ自動車"}},
		map[string]dto.StockQuote{"7203": quoteWithMove(100, 104)},
	)
	return NewDashboardService(cfg, logger.NewNop(), news, stocks, digest, fakeArticleRepository{})
}

func TestDashboardService_GetDashboard(t *testing.T) {
	t.Parallel()

	newsRepo := &fakeNewsRepository{items: []entity.NewsItem{{Title: "円安進行"}}}
	digest := &fakeDigestRepository{text: "円安が進み輸出株が堅調です。"}
	svc := newTestDashboard(newsRepo, digest)

	resp := svc.GetDashboard(context.Background())

	require.Len(t, resp.News.Items, 1)
	assert.Equal(t, "円安進行", resp.News.Items[0].Title)
	require.Len(t, resp.Stocks.Items, 1)
	assert.Equal(t, "7203", resp.Stocks.Items[0].Code)
	assert.Equal(t, "円安が進み輸出株が堅調です。", resp.Digest)
	assert.NotEmpty(t, resp.UpdatedAt)

	again := svc.GetDashboard(context.Background())
	assert.Equal(t, resp, again, "served from the snapshot")
	assert.Equal(t, 1, digest.calls)
	assert.Equal(t, 1, newsRepo.calls)

	svc.Refresh(context.Background())
	assert.Equal(t, 2, newsRepo.calls)
	assert.Equal(t, 2, digest.calls)
}

func TestDashboardService_NoDigestForPlaceholder(t *testing.T) {
	t.Parallel()

	digest := &fakeDigestRepository{text: "unused"}
	svc := newTestDashboard(&fakeNewsRepository{err: errBoom}, digest)

	resp := svc.Refresh(context.Background())

	assert.True(t, IsFallbackNews(resp.News.Items))
	assert.Empty(t, resp.Digest)
	assert.Equal(t, 0, digest.calls)
}

func TestDashboardService_DigestErrorIsIgnored(t *testing.T) {
	t.Parallel()

	svc := newTestDashboard(&fakeNewsRepository{items: []entity.NewsItem{{Title: "a"}}}, &fakeDigestRepository{err: errBoom})

	resp := svc.Refresh(context.Background())

	assert.Len(t, resp.News.Items, 1)
	assert.Empty(t, resp.Digest)
}

func TestDashboardService_WithoutDigest(t *testing.T) {
	t.Parallel()

	svc := newTestDashboard(&fakeNewsRepository{items: []entity.NewsItem{{Title: "a"}}}, nil)

	resp := svc.Refresh(context.Background())

	assert.Empty(t, resp.Digest)
}

func TestDashboardService_GetArticlePreview(t *testing.T) {
	t.Parallel()

	const headline = "https://www3.nhk.or.jp/news/html/20240110/k1.html"
	cfg := &config.Config{
		News:      config.News{CacheTTL: time.Hour},
		Scheduler: config.Scheduler{SnapshotTTL: time.Hour},
		Article:   config.Article{AllowedHosts: []string{"News.Example.JP"}},
	}
	news := newTestNewsService(&fakeNewsRepository{items: []entity.NewsItem{{Title: "円安", URL: headline}}})
	stocks := newTestStockService(nil, nil)
	svc := NewDashboardService(cfg, logger.NewNop(), news, stocks, nil, fakeArticleRepository{})
	ctx := context.Background()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "success: current headline", url: headline},
		{name: "success: headline with surrounding spaces", url: "  " + headline + " "},
		{name: "success: allowed host", url: "https://news.example.jp/article/9"},
		{name: "failure: loopback", url: "http://127.0.0.1:8080/admin", wantErr: true},
		{name: "failure: cloud metadata", url: "http://169.254.169.254/latest/meta-data/", wantErr: true},
		{name: "failure: other page on headline host", url: "https://www3.nhk.or.jp/news/html/other.html", wantErr: true},
		{name: "failure: empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			preview, err := svc.GetArticlePreview(ctx, tt.url)

			if tt.wantErr {
				assert.ErrorIs(t, err, repository.ErrInvalidArticleURL)
				assert.Nil(t, preview)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, preview.URL)
		})
	}
}
