package dto

import "tnp-quickview/internal/entity"

// NewsResponse is the news panel payload.
type NewsResponse struct {
	Items     []entity.NewsItem `json:"items"`
	UpdatedAt string            `json:"updatedAt"`
}

// StocksResponse is the attention stock panel payload.
type StocksResponse struct {
	Items     []entity.Stock `json:"items"`
	UpdatedAt string         `json:"updatedAt"`
}

// DashboardResponse combines both panels and the optional digest.
type DashboardResponse struct {
	News      NewsResponse   `json:"news"`
	Stocks    StocksResponse `json:"stocks"`
	Digest    string         `json:"digest,omitempty"`
	UpdatedAt string         `json:"updatedAt"`
}

// CommentsResponse lists the comments of one stock.
type CommentsResponse struct {
	StockCode string           `json:"stockCode"`
	Items     []entity.Comment `json:"items"`
}

// UserNameResponse carries the display name of the current viewer.
type UserNameResponse struct {
	UserName string `json:"userName"`
}

// StorageStatusResponse reports which persistence backend is active.
type StorageStatusResponse struct {
	Backend string `json:"backend"`
}

// ArticlePreviewResponse is the readable text of a news article.
type ArticlePreviewResponse struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
