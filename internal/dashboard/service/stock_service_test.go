package service

import (
	"context"
	"testing"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStockService(instruments []entity.Instrument, quotes map[string]dto.StockQuote) *stockService {
	cfg := &config.Config{
		Stocks:       config.Stocks{Instruments: instruments, MaxConcurrentFetches: 2},
		YahooFinance: config.YahooFinance{Range: "5d", Interval: "1d"},
	}
	svc := NewStockService(cfg, logger.NewNop(), &fakeYahooRepository{quotes: quotes}).(*stockService)
	svc.now = func() time.Time { return normalizerNow }
	return svc
}

func quoteWithMove(previous, current float64) dto.StockQuote {
	return dto.StockQuote{
		Timestamps:         []int64{dayTS(8), dayTS(9)},
		Closes:             closes(previous, previous),
		RegularMarketPrice: utils.ToPointer(current),
	}
}

func TestStockService_LoadAttentionStocks(t *testing.T) {
	t.Parallel()

	instruments := []entity.Instrument{
		{Code: "7203", Name: "トヨタ自動車"},
		{Code: "6758", Name: "ソニーグループ"},
		{Code: "9999", Name: "取得失敗"},
		{Code: "7974", Name: "任天堂"},
	}
	svc := newTestStockService(instruments, map[string]dto.StockQuote{
		"7203": quoteWithMove(100, 101),
		"6758": quoteWithMove(100, 95),
		"7974": quoteWithMove(100, 102),
	})

	stocks, err := svc.LoadAttentionStocks(context.Background())

	require.NoError(t, err)
	require.Len(t, stocks, 3, "failed instrument is dropped")
	assert.Equal(t, "6758", stocks[0].Code)
	assert.Equal(t, "ソニーグループ", stocks[0].Name)
	assert.Equal(t, "7974", stocks[1].Code)
	assert.Equal(t, "7203", stocks[2].Code)
}

func TestStockService_PanickingInstrumentIsIsolated(t *testing.T) {
	t.Parallel()

	svc := newTestStockService(
		[]entity.Instrument{{Code: "7203"}, {Code: "bad"}},
		map[string]dto.StockQuote{
			"7203": quoteWithMove(100, 101),
			"bad":  {Code: "panic"},
		},
	)

	stocks, err := svc.LoadAttentionStocks(context.Background())

	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "7203", stocks[0].Code)
}

func TestStockService_AllFail(t *testing.T) {
	t.Parallel()

	svc := newTestStockService([]entity.Instrument{{Code: "1111"}, {Code: "2222"}}, nil)

	_, err := svc.LoadAttentionStocks(context.Background())
	assert.ErrorIs(t, err, ErrNoStockData)

	resp := svc.FetchAttentionStocks(context.Background())
	require.Len(t, resp.Items, 1)
	assert.Equal(t, FallbackStockCode, resp.Items[0].Code)
	assert.Equal(t, FallbackStockName, resp.Items[0].Name)
	assert.Equal(t, FallbackStockReason, resp.Items[0].Reason)
	assert.Nil(t, resp.Items[0].Price)
}

func TestStockService_EmptyWatchList(t *testing.T) {
	t.Parallel()

	svc := newTestStockService(nil, nil)

	_, err := svc.LoadAttentionStocks(context.Background())

	assert.ErrorIs(t, err, ErrNoStockData)
}

func TestStockService_CancelledContext(t *testing.T) {
	t.Parallel()

	svc := newTestStockService([]entity.Instrument{{Code: "7203"}}, map[string]dto.StockQuote{"7203": quoteWithMove(100, 101)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.LoadAttentionStocks(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
