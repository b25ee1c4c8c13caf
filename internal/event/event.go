package event

// CommentEvent is the comment-submit payload delivered by the hosting
// trigger. It is consumed once and never persisted.
type CommentEvent struct {
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name" binding:"required"`
	CommentID  string `json:"comment_id" binding:"required"`
	Body       string `json:"body"`
	ThreadID   string `json:"thread_id" binding:"required"`
	Permalink  string `json:"permalink"`
	Category   string `json:"category"` // submission flair text, free-form
}
