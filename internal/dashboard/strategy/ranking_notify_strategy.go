package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tnp-quickview/internal/dashboard/service"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/telegram"
)

// RankingNotifyStrategy pushes the current attention ranking to Telegram.
type RankingNotifyStrategy struct {
	dashboard service.DashboardService
	notifier  telegram.Notifier
	log       *logger.Logger
	maxStocks int
}

// NewRankingNotifyStrategy creates a RankingNotifyStrategy sending at most
// maxStocks entries.
func NewRankingNotifyStrategy(dashboard service.DashboardService, notifier telegram.Notifier, log *logger.Logger, maxStocks int) *RankingNotifyStrategy {
	return &RankingNotifyStrategy{
		dashboard: dashboard,
		notifier:  notifier,
		log:       log,
		maxStocks: maxStocks,
	}
}

func (s *RankingNotifyStrategy) GetType() string {
	return JobTypeRankingNotify
}

// Execute sends the ranking of the current snapshot. The placeholder record is
// never pushed.
func (s *RankingNotifyStrategy) Execute(ctx context.Context) (string, error) {
	resp := s.dashboard.GetDashboard(ctx)
	stocks := resp.Stocks.Items
	if len(stocks) == 1 && stocks[0].Code == service.FallbackStockCode {
		return "skipped: no stock data", nil
	}
	if s.maxStocks > 0 && len(stocks) > s.maxStocks {
		stocks = stocks[:s.maxStocks]
	}

	updatedAt, err := time.Parse(time.RFC3339, resp.Stocks.UpdatedAt)
	if err != nil {
		updatedAt = time.Now()
	}

	var errs []error
	messages := telegram.FormatAttentionStocksForTelegram(stocks, updatedAt)
	for i, msg := range messages {
		if err := s.notifier.SendMessage(ctx, msg); err != nil {
			s.log.Error("Failed to send ranking to Telegram", logger.ErrorField(err), logger.IntField("part", i+1))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("failed to send %d of %d messages: %w", len(errs), len(messages), errors.Join(errs...))
	}
	return fmt.Sprintf("sent %d messages for %d stocks", len(messages), len(stocks)), nil
}
