package service

import (
	"context"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/dashboard/repository"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"

	"github.com/patrickmn/go-cache"
)

const (
	FallbackNewsTitle       = "ニュースの取得に失敗しました"
	FallbackNewsDescription = "現在、ニュースデータを取得できません。しばらくしてから再度お試しください。"
	FallbackNewsSource      = "システム"

	newsCacheKey = "economic_news"
)

// NewsService serves the headline panel.
type NewsService interface {
	// FetchEconomicNews returns the cached batch, fetching when the cache is
	// cold. Failures yield the single placeholder item.
	FetchEconomicNews(ctx context.Context) dto.NewsResponse
	// RefreshEconomicNews bypasses the cache.
	RefreshEconomicNews(ctx context.Context) dto.NewsResponse
}

type newsService struct {
	cfg   *config.Config
	log   *logger.Logger
	repo  repository.NewsRepository
	cache *cache.Cache
	now   func() time.Time
}

// NewNewsService creates a NewsService.
func NewNewsService(cfg *config.Config, log *logger.Logger, repo repository.NewsRepository) NewsService {
	ttl := cfg.News.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &newsService{
		cfg:   cfg,
		log:   log,
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		now:   time.Now,
	}
}

func (s *newsService) FetchEconomicNews(ctx context.Context) dto.NewsResponse {
	if cached, found := s.cache.Get(newsCacheKey); found {
		if resp, ok := cached.(dto.NewsResponse); ok {
			return resp
		}
	}
	return s.RefreshEconomicNews(ctx)
}

func (s *newsService) RefreshEconomicNews(ctx context.Context) dto.NewsResponse {
	now := s.now()
	items, err := s.repo.FetchNews(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch economic news, serving placeholder", logger.ErrorField(err), logger.StringField("provider", s.repo.Name()))
		return dto.NewsResponse{
			Items:     FallbackNews(now),
			UpdatedAt: utils.FormatISO(now),
		}
	}

	resp := dto.NewsResponse{
		Items:     items,
		UpdatedAt: utils.FormatISO(now),
	}
	s.cache.SetDefault(newsCacheKey, resp)
	return resp
}

// FallbackNews is the single placeholder batch served when headlines are unavailable.
func FallbackNews(now time.Time) []entity.NewsItem {
	return []entity.NewsItem{{
		Title:       FallbackNewsTitle,
		Description: FallbackNewsDescription,
		Source:      FallbackNewsSource,
		PublishedAt: utils.FormatISO(now),
	}}
}

// IsFallbackNews reports whether items is the placeholder batch.
func IsFallbackNews(items []entity.NewsItem) bool {
	return len(items) == 1 && items[0].Source == FallbackNewsSource && items[0].Title == FallbackNewsTitle
}
