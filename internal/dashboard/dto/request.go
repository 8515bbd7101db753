package dto

// CreateCommentRequest is the body of the add-comment endpoint.
type CreateCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// UpdateUserNameRequest is the body of the user name endpoint.
type UpdateUserNameRequest struct {
	UserName string `json:"userName"`
}
