package repository

import (
	"context"
	"errors"

	"tnp-quickview/internal/entity"
)

const (
	// MaxNewsItems caps every headline batch.
	MaxNewsItems = 5

	FallbackTitle       = "タイトルなし"
	FallbackDescription = "説明なし"
	FallbackSource      = "不明"
)

// ErrNoNewsItems is returned when a payload parsed fine but held no entries.
var ErrNoNewsItems = errors.New("no news items found")

// NewsRepository fetches a bounded batch of headlines from one source.
type NewsRepository interface {
	FetchNews(ctx context.Context) ([]entity.NewsItem, error)
	Name() string
}

func clampMaxItems(n int) int {
	if n <= 0 || n > MaxNewsItems {
		return MaxNewsItems
	}
	return n
}
