package entity

// NewsItem represents one headline extracted from a feed or news API payload.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url,omitempty"`
}
