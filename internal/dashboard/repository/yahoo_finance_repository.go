package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/pkg/common"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrMalformedChart is returned when the chart payload lacks the series.
var ErrMalformedChart = errors.New("malformed chart payload")

// YahooFinanceRepository fetches raw daily series for one instrument.
type YahooFinanceRepository interface {
	GetStockData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockQuote, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a YahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	perMinute := cfg.YahooFinance.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)
	burst := cfg.Stocks.MaxConcurrentFetches
	if burst <= 0 {
		burst = 1
	}
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.YahooFinance.Timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), burst),
	}
}

func (r *yahooFinanceRepository) GetStockData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockQuote, error) {
	endpoint := r.ChartURL(param)
	fields := []zap.Field{
		zap.String("stock_code", param.StockCode),
		zap.String("url", endpoint),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart request: %w", err)
	}
	req.Header.Set("User-Agent", common.BrowserUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to chart API", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to send request to chart api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.WarnContext(ctx, "Received non-OK response from chart API", append(fields, zap.Int("status_code", resp.StatusCode))...)
		return nil, fmt.Errorf("received non-OK response from chart api: %d", resp.StatusCode)
	}

	body, err := utils.ReadLimitedBody(resp.Body, r.cfg.YahooFinance.MaxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart body: %w", err)
	}

	quote, err := ParseChartResponse(body)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to parse chart payload", append(fields, zap.Error(err))...)
		return nil, err
	}
	quote.Code = param.StockCode
	return quote, nil
}

// ChartURL builds the chart endpoint for one instrument, wrapped by the relay
// when one is configured.
func (r *yahooFinanceRepository) ChartURL(param dto.GetStockDataParam) string {
	rng := param.Range
	if rng == "" {
		rng = r.cfg.YahooFinance.Range
	}
	interval := param.Interval
	if interval == "" {
		interval = r.cfg.YahooFinance.Interval
	}

	q := url.Values{}
	q.Set("interval", interval)
	q.Set("range", rng)

	target := fmt.Sprintf("%s/v8/finance/chart/%s%s?%s",
		strings.TrimRight(r.cfg.YahooFinance.BaseURL, "/"),
		url.PathEscape(param.StockCode),
		r.cfg.YahooFinance.SymbolSuffix,
		q.Encode(),
	)

	proxy := strings.TrimSpace(r.cfg.YahooFinance.ProxyURL)
	if proxy == "" {
		return target
	}
	sep := "?"
	if strings.Contains(proxy, "?") {
		sep = "&"
	}
	return proxy + sep + "url=" + url.QueryEscape(target)
}

// ParseChartResponse extracts the first result's series from a chart payload.
func ParseChartResponse(body []byte) (*dto.StockQuote, error) {
	var resp dto.YahooChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode chart payload: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart api error %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrMalformedChart
	}

	result := resp.Chart.Result[0]
	series := result.Indicators.Quote[0]
	return &dto.StockQuote{
		Timestamps:         result.Timestamp,
		Closes:             series.Close,
		Volumes:            series.Volume,
		RegularMarketPrice: result.Meta.RegularMarketPrice,
	}, nil
}
