package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/dashboard/repository"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"

	"github.com/patrickmn/go-cache"
)

const dashboardSnapshotKey = "dashboard_snapshot"

// DashboardService assembles both panels and keeps the last snapshot.
type DashboardService interface {
	// GetDashboard serves the snapshot, building one when none is cached.
	GetDashboard(ctx context.Context) dto.DashboardResponse
	// Refresh rebuilds the snapshot from fresh upstream data.
	Refresh(ctx context.Context) dto.DashboardResponse
	GetArticlePreview(ctx context.Context, rawURL string) (*dto.ArticlePreviewResponse, error)
}

type dashboardService struct {
	cfg         *config.Config
	log         *logger.Logger
	newsService NewsService
	stockSvc    StockService
	digestRepo  repository.DigestRepository
	articleRepo repository.ArticleRepository
	snapshot    *cache.Cache
	now         func() time.Time
}

// NewDashboardService creates a DashboardService. digestRepo may be nil when
// the digest is disabled.
func NewDashboardService(cfg *config.Config, log *logger.Logger, newsService NewsService, stockSvc StockService, digestRepo repository.DigestRepository, articleRepo repository.ArticleRepository) DashboardService {
	ttl := cfg.Scheduler.SnapshotTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &dashboardService{
		cfg:         cfg,
		log:         log,
		newsService: newsService,
		stockSvc:    stockSvc,
		digestRepo:  digestRepo,
		articleRepo: articleRepo,
		snapshot:    cache.New(ttl, ttl),
		now:         time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) dto.DashboardResponse {
	if cached, found := s.snapshot.Get(dashboardSnapshotKey); found {
		if resp, ok := cached.(dto.DashboardResponse); ok {
			return resp
		}
	}
	return s.build(ctx, false)
}

func (s *dashboardService) Refresh(ctx context.Context) dto.DashboardResponse {
	return s.build(ctx, true)
}

// build fetches news and stocks in parallel. Each side already degrades to
// its placeholder, so the result always has both panels.
func (s *dashboardService) build(ctx context.Context, fresh bool) dto.DashboardResponse {
	var (
		wg     sync.WaitGroup
		news   dto.NewsResponse
		stocks dto.StocksResponse
	)

	wg.Add(2)
	utils.GoSafe(s.log, func() {
		defer wg.Done()
		if fresh {
			news = s.newsService.RefreshEconomicNews(ctx)
		} else {
			news = s.newsService.FetchEconomicNews(ctx)
		}
	})
	utils.GoSafe(s.log, func() {
		defer wg.Done()
		stocks = s.stockSvc.FetchAttentionStocks(ctx)
	})
	wg.Wait()

	now := s.now()
	if news.Items == nil {
		news = dto.NewsResponse{Items: FallbackNews(now), UpdatedAt: utils.FormatISO(now)}
	}
	if stocks.Items == nil {
		stocks = dto.StocksResponse{Items: FallbackStocks(), UpdatedAt: utils.FormatISO(now)}
	}

	resp := dto.DashboardResponse{
		News:      news,
		Stocks:    stocks,
		UpdatedAt: utils.FormatISO(now),
	}

	if s.digestRepo != nil && !IsFallbackNews(news.Items) {
		digest, err := s.digestRepo.Summarize(ctx, news.Items)
		if err != nil {
			s.log.WarnContext(ctx, "Failed to build headline digest", logger.ErrorField(err))
		} else {
			resp.Digest = digest
		}
	}

	if ctx.Err() == nil {
		s.snapshot.SetDefault(dashboardSnapshotKey, resp)
	}
	return resp
}

// GetArticlePreview previews a URL of the current headlines, or of a host in
// cfg.Article.AllowedHosts. Anything else is ErrInvalidArticleURL.
func (s *dashboardService) GetArticlePreview(ctx context.Context, rawURL string) (*dto.ArticlePreviewResponse, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !s.previewAllowed(ctx, rawURL) {
		s.log.Warn("Refused article preview outside the headlines", logger.StringField("url", rawURL))
		return nil, fmt.Errorf("%w: not a current headline", repository.ErrInvalidArticleURL)
	}
	return s.articleRepo.GetPreview(ctx, rawURL)
}

func (s *dashboardService) previewAllowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range s.cfg.Article.AllowedHosts {
		if strings.EqualFold(strings.TrimSpace(allowed), host) {
			return true
		}
	}
	for _, item := range s.newsService.FetchEconomicNews(ctx).Items {
		if item.URL != "" && strings.TrimSpace(item.URL) == rawURL {
			return true
		}
	}
	return false
}
