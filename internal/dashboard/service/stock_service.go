package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/dashboard/repository"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"
)

const (
	FallbackStockCode   = "----"
	FallbackStockName   = "データ取得エラー"
	FallbackStockReason = "現在、株価データを取得できません。しばらくしてから再度お試しください。"
)

// ErrNoStockData is returned when no instrument of the watch list yielded a record.
var ErrNoStockData = errors.New("no stock data available")

// StockService serves the attention stock panel.
type StockService interface {
	// LoadAttentionStocks fetches every instrument concurrently and returns the
	// ranked records. It fails only when no instrument produced a record.
	LoadAttentionStocks(ctx context.Context) ([]entity.Stock, error)
	// FetchAttentionStocks wraps LoadAttentionStocks, substituting the
	// placeholder record on failure.
	FetchAttentionStocks(ctx context.Context) dto.StocksResponse
}

type stockService struct {
	cfg  *config.Config
	log  *logger.Logger
	repo repository.YahooFinanceRepository
	now  func() time.Time
}

// NewStockService creates a StockService.
func NewStockService(cfg *config.Config, log *logger.Logger, repo repository.YahooFinanceRepository) StockService {
	return &stockService{
		cfg:  cfg,
		log:  log,
		repo: repo,
		now:  time.Now,
	}
}

func (s *stockService) LoadAttentionStocks(ctx context.Context) ([]entity.Stock, error) {
	instruments := s.cfg.Stocks.Instruments
	limit := s.cfg.Stocks.MaxConcurrentFetches
	if limit <= 0 || limit > len(instruments) {
		limit = len(instruments)
	}
	if limit == 0 {
		return nil, ErrNoStockData
	}

	now := s.now()
	results := make([]*entity.Stock, len(instruments))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, inst := range instruments {
		wg.Add(1)
		utils.GoSafe(s.log, func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()
			results[i] = s.fetchStock(ctx, inst, now)
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stocks := make([]entity.Stock, 0, len(results))
	for _, st := range results {
		if st != nil {
			stocks = append(stocks, *st)
		}
	}
	if len(stocks) == 0 {
		return nil, ErrNoStockData
	}

	s.log.DebugContext(ctx, "Loaded attention stocks", logger.IntField("requested", len(instruments)), logger.IntField("loaded", len(stocks)))
	return RankAttentionStocks(stocks), nil
}

// fetchStock returns nil when the instrument could not be fetched or parsed.
func (s *stockService) fetchStock(ctx context.Context, inst entity.Instrument, now time.Time) *entity.Stock {
	quote, err := s.repo.GetStockData(ctx, dto.GetStockDataParam{
		StockCode: inst.Code,
		Range:     s.cfg.YahooFinance.Range,
		Interval:  s.cfg.YahooFinance.Interval,
	})
	if err != nil {
		s.log.WarnContext(ctx, "Skipping instrument", logger.StringField("stock_code", inst.Code), logger.ErrorField(err))
		return nil
	}
	quote.Code = inst.Code
	quote.Name = inst.Name
	return NormalizeQuote(*quote, now)
}

func (s *stockService) FetchAttentionStocks(ctx context.Context) dto.StocksResponse {
	now := s.now()
	stocks, err := s.LoadAttentionStocks(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to load attention stocks, serving placeholder", logger.ErrorField(err))
		stocks = FallbackStocks()
	}
	return dto.StocksResponse{
		Items:     stocks,
		UpdatedAt: utils.FormatISO(now),
	}
}

// FallbackStocks is the single placeholder record served when quotes are unavailable.
func FallbackStocks() []entity.Stock {
	return []entity.Stock{{
		Code:   FallbackStockCode,
		Name:   FallbackStockName,
		Reason: FallbackStockReason,
	}}
}
