package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Comment 评论。没有独立主键，顺序即插入顺序，随帖子一起存储。
// Name is a snapshot of the commenter's display name taken at write time.
type Comment struct {
	Body      string    `json:"body"`
	AuthorID  uint64    `json:"author"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentList is stored as a MySQL JSON column so a comment append can be a
// single JSON_ARRAY_APPEND update instead of a read-modify-write of the row.
type CommentList []Comment

// Value implements driver.Valuer.
func (c CommentList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (c *CommentList) Scan(value interface{}) error {
	if value == nil {
		*c = CommentList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported comments column type %T", value)
	}
	if len(data) == 0 {
		*c = CommentList{}
		return nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return errors.New("malformed comments column: " + err.Error())
	}
	return nil
}

// Post 帖子模型。作者与创建时间写入后不可变，评论只追加。
type Post struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	Title       string      `gorm:"not null;size:255" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	ImageURL    string      `gorm:"size:255" json:"image_url"`
	Category    string      `gorm:"size:64" json:"category"`
	AuthorID    uint64      `gorm:"not null;index" json:"author_id"`
	Comments    CommentList `gorm:"type:json" json:"comments"`
	CreatedAt   time.Time   `json:"created_at"`
	Author      User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"` // 关联作者
}
