package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/common"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

type newsRSSRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client *http.Client
	now    func() time.Time
}

// NewNewsRSSRepository creates a NewsRepository reading the configured RSS feed.
func NewNewsRSSRepository(cfg *config.Config, log *logger.Logger, client *http.Client) NewsRepository {
	if client == nil {
		client = &http.Client{Timeout: cfg.News.Timeout}
	}
	return &newsRSSRepository{
		cfg:    cfg,
		log:    log,
		client: client,
		now:    time.Now,
	}
}

func (r *newsRSSRepository) Name() string {
	return "rss"
}

// FetchNews downloads the feed and extracts at most MaxNewsItems headlines.
func (r *newsRSSRepository) FetchNews(ctx context.Context) ([]entity.NewsItem, error) {
	url := r.cfg.News.RSSURL
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.log.Error("Failed to create RSS request", logger.ErrorField(err), logger.StringField("url", url))
		return nil, fmt.Errorf("failed to create rss request: %w", err)
	}
	req.Header.Set("User-Agent", common.BrowserUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Error("Failed to fetch RSS feed", logger.ErrorField(err), logger.StringField("url", url))
		return nil, fmt.Errorf("failed to fetch rss feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Error("Received non-OK response from RSS feed", logger.IntField("status_code", resp.StatusCode), logger.StringField("url", url))
		return nil, fmt.Errorf("failed to fetch rss feed, status code: %d", resp.StatusCode)
	}

	body, err := utils.ReadLimitedBody(resp.Body, r.cfg.News.MaxBodyBytes)
	if err != nil {
		r.log.Error("Failed to read RSS body", logger.ErrorField(err), logger.StringField("url", url))
		return nil, fmt.Errorf("failed to read rss body: %w", err)
	}

	items, err := ParseRSSFeed(string(body), r.cfg.News.SourceLabel, r.cfg.News.MaxItems, r.now())
	if err != nil {
		r.log.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", url))
		return nil, err
	}

	r.log.Debug("Fetched RSS headlines", logger.IntField("count", len(items)), logger.StringField("url", url))
	return items, nil
}

// ParseRSSFeed extracts up to maxItems headlines from raw feed text, in the
// order the feed delivers them. Titles and descriptions fall back to fixed
// literals; an unparseable publication date is replaced by now. A feed
// without entries is an error.
func ParseRSSFeed(raw, sourceLabel string, maxItems int, now time.Time) ([]entity.NewsItem, error) {
	feed, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rss feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, ErrNoNewsItems
	}

	limit := clampMaxItems(maxItems)
	items := make([]entity.NewsItem, 0, limit)
	for _, it := range feed.Items {
		if len(items) >= limit {
			break
		}
		if it == nil {
			continue
		}

		title := strings.TrimSpace(it.Title)
		if title == "" {
			title = FallbackTitle
		}

		description := plainText(it.Description)
		if description == "" {
			description = FallbackDescription
		}

		publishedAt := utils.FormatISO(now)
		if it.PublishedParsed != nil {
			publishedAt = utils.FormatISO(*it.PublishedParsed)
		}

		items = append(items, entity.NewsItem{
			Title:       title,
			Description: description,
			Source:      sourceLabel,
			PublishedAt: publishedAt,
			URL:         strings.TrimSpace(it.Link),
		})
	}

	if len(items) == 0 {
		return nil, ErrNoNewsItems
	}
	return items, nil
}

// plainText reduces an HTML fragment to its text; plain strings are only trimmed.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return utils.SafeText(doc.Text())
}
