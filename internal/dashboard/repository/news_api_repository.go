package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"
)

type newsAPIRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client *http.Client
	now    func() time.Time
}

// NewNewsAPIRepository creates a NewsRepository backed by the JSON news API.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger, client *http.Client) NewsRepository {
	if client == nil {
		client = &http.Client{Timeout: cfg.News.Timeout}
	}
	return &newsAPIRepository{
		cfg:    cfg,
		log:    log,
		client: client,
		now:    time.Now,
	}
}

func (r *newsAPIRepository) Name() string {
	return "newsapi"
}

func (r *newsAPIRepository) FetchNews(ctx context.Context) ([]entity.NewsItem, error) {
	endpoint := r.buildURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news api request: %w", err)
	}
	req.Header.Set("X-Api-Key", r.cfg.NewsAPI.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Error("Failed to send request to news API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to news api: %w", err)
	}
	defer resp.Body.Close()

	body, err := utils.ReadLimitedBody(resp.Body, r.cfg.News.MaxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read news api body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.Error("Received non-OK response from news API", logger.IntField("status_code", resp.StatusCode), logger.StringField("body", utils.Truncate(string(body), 200)))
		return nil, fmt.Errorf("received non-OK response from news api: %d", resp.StatusCode)
	}

	items, err := ParseNewsAPIArticles(body, r.cfg.NewsAPI.PageSize, r.now())
	if err != nil {
		r.log.Error("Failed to parse news API payload", logger.ErrorField(err))
		return nil, err
	}
	return items, nil
}

// buildURL picks the keyword search endpoint when a keyword is set, the
// category headlines otherwise. The key travels in a header, never in the URL.
func (r *newsAPIRepository) buildURL() string {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(clampMaxItems(r.cfg.NewsAPI.PageSize)))

	base := strings.TrimRight(r.cfg.NewsAPI.BaseURL, "/")
	if kw := strings.TrimSpace(r.cfg.NewsAPI.Keyword); kw != "" {
		q.Set("q", kw)
		return base + "/everything?" + q.Encode()
	}
	q.Set("country", r.cfg.NewsAPI.Country)
	q.Set("category", r.cfg.NewsAPI.Category)
	return base + "/top-headlines?" + q.Encode()
}

// ParseNewsAPIArticles maps a news API payload onto headlines, applying the
// same fallbacks as the RSS parser.
func ParseNewsAPIArticles(payload []byte, maxItems int, now time.Time) ([]entity.NewsItem, error) {
	var resp dto.NewsAPIResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode news api payload: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("news api error %s: %s", resp.Code, resp.Message)
	}
	if len(resp.Articles) == 0 {
		return nil, ErrNoNewsItems
	}

	limit := clampMaxItems(maxItems)
	items := make([]entity.NewsItem, 0, limit)
	for _, a := range resp.Articles {
		if len(items) >= limit {
			break
		}
		items = append(items, entity.NewsItem{
			Title:       orDefault(a.Title, FallbackTitle),
			Description: orDefault(a.Description, FallbackDescription),
			Source:      orDefault(a.Source.Name, FallbackSource),
			PublishedAt: normalizePublishedAt(a.PublishedAt, now),
			URL:         orDefault(a.URL, ""),
		})
	}
	return items, nil
}

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	if v := strings.TrimSpace(*s); v != "" {
		return v
	}
	return def
}

func normalizePublishedAt(s *string, now time.Time) string {
	if s != nil {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(*s)); err == nil {
			return utils.FormatISO(t)
		}
	}
	return utils.FormatISO(now)
}
