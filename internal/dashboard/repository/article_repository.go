package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/pkg/common"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

var (
	// ErrInvalidArticleURL is returned for URLs that are not absolute http(s)
	// or that the preview is not allowed to fetch.
	ErrInvalidArticleURL = errors.New("invalid article url")
	// ErrBlockedAddress is returned when an article host resolves to a
	// loopback, private, link-local or otherwise non-public address.
	ErrBlockedAddress = errors.New("article host resolves to a non-public address")
)

// sharedAddressSpace is the carrier-grade NAT range, which netip does not
// report as private.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// ArticleRepository extracts the readable text of a news article.
type ArticleRepository interface {
	GetPreview(ctx context.Context, rawURL string) (*dto.ArticlePreviewResponse, error)
}

type articleRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client *http.Client
}

// NewArticleRepository creates an ArticleRepository. Unless
// cfg.Article.AllowPrivateNetworks is set, connections to non-public
// addresses are refused at dial time, which also covers redirects.
func NewArticleRepository(cfg *config.Config, log *logger.Logger) ArticleRepository {
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	if !cfg.Article.AllowPrivateNetworks {
		dialer.Control = refuseNonPublic
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: cfg.Article.Timeout,
	}
	return &articleRepository{
		cfg:    cfg,
		log:    log,
		client: &http.Client{Timeout: cfg.Article.Timeout, Transport: transport},
	}
}

// refuseNonPublic is a net.Dialer Control hook; address is the resolved ip:port.
func refuseNonPublic(network, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	if !IsPublicAddr(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ap.Addr())
	}
	return nil
}

// IsPublicAddr reports whether ip is a globally routable unicast address.
func IsPublicAddr(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsValid() &&
		ip.IsGlobalUnicast() &&
		!ip.IsPrivate() &&
		!ip.IsLoopback() &&
		!ip.IsLinkLocalUnicast() &&
		!sharedAddressSpace.Contains(ip)
}

func (r *articleRepository) GetPreview(ctx context.Context, rawURL string) (*dto.ArticlePreviewResponse, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidArticleURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for article: %w", err)
	}
	req.Header.Set("User-Agent", common.BrowserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrBlockedAddress) {
			r.log.Warn("Refused article on a non-public address", logger.StringField("url", u.String()))
		} else {
			r.log.Error("Failed to fetch article", logger.ErrorField(err), logger.StringField("url", u.String()))
		}
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Error("Failed to fetch article with non-200 status", logger.IntField("status", resp.StatusCode), logger.StringField("url", u.String()))
		return nil, fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	body, err := utils.ReadLimitedBody(resp.Body, r.cfg.Article.MaxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read article body: %w", err)
	}

	title, content, err := ExtractArticle(body)
	if err != nil {
		r.log.Error("Failed to parse article", logger.ErrorField(err), logger.StringField("url", u.String()))
		return nil, err
	}

	return &dto.ArticlePreviewResponse{
		URL:     u.String(),
		Title:   title,
		Content: utils.Truncate(content, r.cfg.Article.MaxRunes),
	}, nil
}

// ExtractArticle returns the page title and the readable body text of an HTML page.
func ExtractArticle(page []byte) (string, string, error) {
	pageDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse article page: %w", err)
	}
	title := utils.SafeText(pageDoc.Find("title").First().Text())

	doc, err := readability.NewDocument(string(page))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse article content: %w", err)
	}
	contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse article content: %w", err)
	}

	return title, utils.SafeText(contentDoc.Text()), nil
}
