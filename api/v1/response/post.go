package response

import (
	"time"

	"personalblog/model"
)

// Comment exposes the display-name snapshot only, never the author id.
type Comment struct {
	Body      string    `json:"body"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Category    string      `json:"category,omitempty"`
	Author      UserSummary `json:"author"`
	Comments    []Comment   `json:"comments"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewPost 构造帖子响应，作者只保留公开字段
func NewPost(p *model.Post) Post {
	comments := make([]Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, Comment{Body: c.Body, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Author:      NewUserSummary(&p.Author),
		Comments:    comments,
		CreatedAt:   p.CreatedAt,
	}
}

func NewPostList(posts []model.Post) []Post {
	out := make([]Post, 0, len(posts))
	for i := range posts {
		out = append(out, NewPost(&posts[i]))
	}
	return out
}
