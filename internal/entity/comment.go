package entity

// Comment is a viewer comment on a stock. Comments are append-only.
type Comment struct {
	ID        string `json:"id"`
	StockCode string `json:"stockCode"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// LikeData holds the like counter of one stock and whether the current viewer liked it.
type LikeData struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

// LikesRecord maps stock code to its like data.
type LikesRecord map[string]LikeData

// CommentsRecord maps stock code to its comments in insertion order.
type CommentsRecord map[string][]Comment

// Clone returns a copy that shares no slices with r.
func (r CommentsRecord) Clone() CommentsRecord {
	out := make(CommentsRecord, len(r))
	for code, comments := range r {
		out[code] = append([]Comment(nil), comments...)
	}
	return out
}

// Clone returns a copy of r.
func (r LikesRecord) Clone() LikesRecord {
	out := make(LikesRecord, len(r))
	for code, like := range r {
		out[code] = like
	}
	return out
}
