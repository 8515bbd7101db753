package strategy

import (
	"context"
	"encoding/json"

	"tnp-quickview/internal/dashboard/service"
	"tnp-quickview/pkg/logger"
)

// DashboardRefreshStrategy rebuilds the dashboard snapshot.
type DashboardRefreshStrategy struct {
	dashboard service.DashboardService
	log       *logger.Logger
}

// NewDashboardRefreshStrategy creates a DashboardRefreshStrategy.
func NewDashboardRefreshStrategy(dashboard service.DashboardService, log *logger.Logger) *DashboardRefreshStrategy {
	return &DashboardRefreshStrategy{
		dashboard: dashboard,
		log:       log,
	}
}

func (s *DashboardRefreshStrategy) GetType() string {
	return JobTypeDashboardRefresh
}

type dashboardRefreshResult struct {
	NewsItems    int    `json:"news_items"`
	NewsFallback bool   `json:"news_fallback"`
	StockItems   int    `json:"stock_items"`
	HasDigest    bool   `json:"has_digest"`
	UpdatedAt    string `json:"updated_at"`
}

// Execute refreshes the snapshot and reports what it holds.
func (s *DashboardRefreshStrategy) Execute(ctx context.Context) (string, error) {
	resp := s.dashboard.Refresh(ctx)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := json.Marshal(dashboardRefreshResult{
		NewsItems:    len(resp.News.Items),
		NewsFallback: service.IsFallbackNews(resp.News.Items),
		StockItems:   len(resp.Stocks.Items),
		HasDigest:    resp.Digest != "",
		UpdatedAt:    resp.UpdatedAt,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
