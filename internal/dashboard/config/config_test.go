package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "https://www.nhk.or.jp/rss/news/cat6.xml", cfg.News.RSSURL)
	assert.Equal(t, "NHK NEWS WEB", cfg.News.SourceLabel)
	assert.Equal(t, time.Hour, cfg.News.CacheTTL)
	assert.Equal(t, "@hourly", cfg.Scheduler.RefreshCron)
	assert.Equal(t, time.Minute, cfg.Storage.RemoteRetryInterval)
	assert.Equal(t, "quickview", cfg.Redis.KeyPrefix)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Len(t, cfg.Stocks.Instruments, 15)
	assert.False(t, cfg.Article.AllowPrivateNetworks)
	assert.Equal(t, int64(2<<20), cfg.Article.MaxBodyBytes)
	assert.Contains(t, cfg.Article.AllowedHosts, "www3.nhk.or.jp")

	assert.False(t, cfg.NewsAPIEnabled())
	assert.False(t, cfg.GeminiEnabled())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
news:
  provider: newsapi
news_api:
  api_key: real-key
yahoo_finance:
  proxy_url: https://relay.example.com/raw
stocks:
  instruments:
    - code: "7203"
      name: トヨタ自動車
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.NewsAPIEnabled())
	assert.True(t, cfg.GeminiEnabled())
	assert.Equal(t, "https://relay.example.com/raw", cfg.YahooFinance.ProxyURL)
	require.Len(t, cfg.Stocks.Instruments, 1)
	assert.Equal(t, "7203", cfg.Stocks.Instruments[0].Code)
	assert.Equal(t, "トヨタ自動車", cfg.Stocks.Instruments[0].Name)
}
