package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ErrEmptyDigest is returned when the model answered with no text.
var ErrEmptyDigest = errors.New("empty digest")

// DigestRepository summarizes a batch of headlines.
type DigestRepository interface {
	Summarize(ctx context.Context, items []entity.NewsItem) (string, error)
}

type geminiDigestRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	client         *genai.Client
	requestLimiter *rate.Limiter
}

// NewGeminiDigestRepository creates a DigestRepository backed by Gemini.
func NewGeminiDigestRepository(cfg *config.Config, log *logger.Logger, client *genai.Client) DigestRepository {
	perMinute := cfg.Gemini.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	return &geminiDigestRepository{
		cfg:            cfg,
		log:            log,
		client:         client,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *geminiDigestRepository) Summarize(ctx context.Context, items []entity.NewsItem) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	prompt := BuildDigestPrompt(items)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		r.log.Error("Failed to generate digest", logger.ErrorField(err), logger.StringField("model", r.cfg.Gemini.Model))
		return "", fmt.Errorf("failed to generate digest: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyDigest
	}
	return text, nil
}

// BuildDigestPrompt renders the headlines into the summarization prompt.
func BuildDigestPrompt(items []entity.NewsItem) string {
	var sb strings.Builder
	sb.WriteString("あなたは日本の経済ニュース編集者です。以下の見出しから、今日の市場の雰囲気を日本語で2文以内に要約してください。\n\n")
	for i, it := range items {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, it.Title, it.Description)
	}
	return sb.String()
}
