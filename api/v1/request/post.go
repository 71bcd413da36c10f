package request

type PostRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

// CommentRequest carries the comment body; emptiness after trimming is
// checked by the service so whitespace-only bodies get the same 400.
type CommentRequest struct {
	Body string `json:"body"`
}
