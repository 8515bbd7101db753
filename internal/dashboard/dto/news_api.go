package dto

// NewsAPIResponse is the payload of the JSON news API (top-headlines / everything).
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code,omitempty"`
	Message      string           `json:"message,omitempty"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
}

// NewsAPIArticle is one article of NewsAPIResponse.
type NewsAPIArticle struct {
	Source      NewsAPISource `json:"source"`
	Author      *string       `json:"author"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	URL         *string       `json:"url"`
	PublishedAt *string       `json:"publishedAt"`
}

// NewsAPISource names the publisher of an article.
type NewsAPISource struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}
