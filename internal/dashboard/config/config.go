package config

import (
	"time"

	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/config"
)

// PlaceholderAPIKey marks an API key that was never configured. Components
// seeing it run in demo mode instead of calling the provider.
const PlaceholderAPIKey = "demo-api-key"

// News holds the headline source configuration.
type News struct {
	Provider     string        `mapstructure:"provider"` // "rss" or "newsapi"
	RSSURL       string        `mapstructure:"rss_url"`
	SourceLabel  string        `mapstructure:"source_label"`
	MaxItems     int           `mapstructure:"max_items"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// NewsAPI holds the configuration for the JSON news API.
type NewsAPI struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Country  string `mapstructure:"country"`
	Category string `mapstructure:"category"`
	Keyword  string `mapstructure:"keyword"`
	PageSize int    `mapstructure:"page_size"`
}

// YahooFinance holds the configuration for the chart endpoint.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	ProxyURL            string        `mapstructure:"proxy_url"`
	Range               string        `mapstructure:"range"`
	Interval            string        `mapstructure:"interval"`
	SymbolSuffix        string        `mapstructure:"symbol_suffix"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxBodyBytes        int64         `mapstructure:"max_body_bytes"`
}

// Stocks holds the watch list configuration.
type Stocks struct {
	Instruments          []entity.Instrument `mapstructure:"instruments"`
	MaxConcurrentFetches int                 `mapstructure:"max_concurrent_fetches"`
}

// Storage holds the persistence shim configuration.
type Storage struct {
	RemoteRetryInterval time.Duration `mapstructure:"remote_retry_interval"`
	RemoteTimeout       time.Duration `mapstructure:"remote_timeout"`
}

// Scheduler holds the revalidation schedule.
type Scheduler struct {
	Enabled     bool          `mapstructure:"enabled"`
	RefreshCron string        `mapstructure:"refresh_cron"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
	JobTimeout  time.Duration `mapstructure:"job_timeout"`
}

// Gemini holds the configuration for the optional headline digest.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the optional ranking push.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Article holds configuration for the article preview extractor.
// Only URLs of the current headlines or of AllowedHosts are fetched, and
// private or loopback addresses are refused unless AllowPrivateNetworks is set.
type Article struct {
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRunes             int           `mapstructure:"max_runes"`
	MaxBodyBytes         int64         `mapstructure:"max_body_bytes"`
	AllowedHosts         []string      `mapstructure:"allowed_hosts"`
	AllowPrivateNetworks bool          `mapstructure:"allow_private_networks"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	News         News            `mapstructure:"news"`
	NewsAPI      NewsAPI         `mapstructure:"news_api"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Stocks       Stocks          `mapstructure:"stocks"`
	Storage      Storage         `mapstructure:"storage"`
	Scheduler    Scheduler       `mapstructure:"scheduler"`
	Gemini       Gemini          `mapstructure:"gemini"`
	Telegram     Telegram        `mapstructure:"telegram"`
	Article      Article         `mapstructure:"article"`
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	if len(cfg.Stocks.Instruments) == 0 {
		cfg.Stocks.Instruments = DefaultInstruments()
	}
	return &cfg, nil
}

// NewsAPIEnabled reports whether the JSON news API has a real key and is selected.
func (c *Config) NewsAPIEnabled() bool {
	return c.News.Provider == "newsapi" && c.NewsAPI.APIKey != "" && c.NewsAPI.APIKey != PlaceholderAPIKey
}

// GeminiEnabled reports whether the headline digest can call Gemini.
func (c *Config) GeminiEnabled() bool {
	return c.Gemini.APIKey != "" && c.Gemini.APIKey != PlaceholderAPIKey
}

// TelegramEnabled reports whether the ranking push is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.BotToken != PlaceholderAPIKey && c.Telegram.ChatID != 0
}

// Defaults returns the baked-in values. Secrets default to placeholders so the
// service starts in demo mode instead of failing.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":    "tnp-quickview",
		"app.env":     "development",
		"app.version": "1.0.0",

		"logger.level":    "info",
		"logger.encoding": "json",

		"database.driver":            "sqlite",
		"database.sqlite_path":       "quickview.db",
		"database.host":              "localhost",
		"database.port":              5432,
		"database.user":              "postgres",
		"database.password":          "postgres",
		"database.name":              "quickview",
		"database.ssl_mode":          "disable",
		"database.time_zone":         "Asia/Tokyo",
		"database.max_idle_conns":    2,
		"database.max_open_conns":    10,
		"database.conn_max_lifetime": "1h",
		"database.log_level":         "silent",

		"redis.enabled":    true,
		"redis.host":       "localhost",
		"redis.port":       6379,
		"redis.password":   "",
		"redis.db":         0,
		"redis.pool_size":  10,
		"redis.key_prefix": "quickview",

		"api.host": "0.0.0.0",
		"api.port": 8080,

		"news.provider":       "rss",
		"news.rss_url":        "https://www.nhk.or.jp/rss/news/cat6.xml",
		"news.source_label":   "NHK NEWS WEB",
		"news.max_items":      5,
		"news.cache_ttl":      time.Hour,
		"news.timeout":        15 * time.Second,
		"news.max_body_bytes": int64(2 << 20),

		"news_api.base_url":  "https://newsapi.org/v2",
		"news_api.api_key":   PlaceholderAPIKey,
		"news_api.country":   "jp",
		"news_api.category":  "business",
		"news_api.keyword":   "",
		"news_api.page_size": 5,

		"yahoo_finance.base_url":               "https://query1.finance.yahoo.com",
		"yahoo_finance.proxy_url":              "",
		"yahoo_finance.range":                  "5d",
		"yahoo_finance.interval":               "1d",
		"yahoo_finance.symbol_suffix":          ".T",
		"yahoo_finance.max_request_per_minute": 120,
		"yahoo_finance.timeout":                10 * time.Second,
		"yahoo_finance.max_body_bytes":         int64(1 << 20),

		"stocks.max_concurrent_fetches": 15,

		"storage.remote_retry_interval": time.Minute,
		"storage.remote_timeout":        3 * time.Second,

		"scheduler.enabled":      true,
		"scheduler.refresh_cron": "@hourly",
		"scheduler.snapshot_ttl": 2 * time.Hour,
		"scheduler.job_timeout":  2 * time.Minute,

		"gemini.api_key":                PlaceholderAPIKey,
		"gemini.model":                  "gemini-2.0-flash",
		"gemini.max_request_per_minute": 10,

		"telegram.bot_token": PlaceholderAPIKey,
		"telegram.chat_id":   0,

		"article.timeout":                10 * time.Second,
		"article.max_runes":              2000,
		"article.max_body_bytes":         int64(2 << 20),
		"article.allowed_hosts":          []string{"www3.nhk.or.jp", "www.nhk.or.jp"},
		"article.allow_private_networks": false,
	}
}

// DefaultInstruments is the watch list used when none is configured: large
// Nikkei 225 constituents.
func DefaultInstruments() []entity.Instrument {
	return []entity.Instrument{
		{Code: "7203", Name: "トヨタ自動車"},
		{Code: "6758", Name: "ソニーグループ"},
		{Code: "9984", Name: "ソフトバンクグループ"},
		{Code: "8035", Name: "東京エレクトロン"},
		{Code: "6501", Name: "日立製作所"},
		{Code: "6861", Name: "キーエンス"},
		{Code: "4063", Name: "信越化学工業"},
		{Code: "8306", Name: "三菱UFJフィナンシャル・グループ"},
		{Code: "9433", Name: "KDDI"},
		{Code: "4568", Name: "第一三共"},
		{Code: "6702", Name: "富士通"},
		{Code: "2914", Name: "日本たばこ産業"},
		{Code: "9020", Name: "東日本旅客鉄道"},
		{Code: "8058", Name: "三菱商事"},
		{Code: "7974", Name: "任天堂"},
	}
}
