package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"personalblog/internal/cache"
	"personalblog/model"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrNotAuthor         = errors.New("not authorized")
	ErrPostFieldsMissing = errors.New("title and description are required")
	ErrEmptyComment      = errors.New("comment body is required")
)

// PostStore is the slice of the DAO the post service depends on.
type PostStore interface {
	Create(post *model.Post) error
	List() ([]model.Post, error)
	ListByAuthor(authorID uint64) ([]model.Post, error)
	GetByID(id uint64) (*model.Post, error)
	UpdateFields(id uint64, fields map[string]interface{}) (int64, error)
	Delete(id uint64) (int64, error)
	AppendComment(id uint64, comment model.Comment) (int64, error)
}

// PostService enforces ownership and validation rules over the content store.
type PostService struct {
	posts PostStore
	users UserStore
	feed  *cache.FeedCache
}

// NewPostService 创建一个新的 PostService 实例。feed 可以为 nil（测试场景）。
func NewPostService(posts PostStore, users UserStore, feed *cache.FeedCache) *PostService {
	return &PostService{posts: posts, users: users, feed: feed}
}

// CreatePost 创建帖子，作者取自认证身份
func (s *PostService) CreatePost(authorID uint64, title, description, imageURL, category string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, ErrPostFieldsMissing
	}
	post := &model.Post{
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		Category:    category,
		AuthorID:    authorID,
		Comments:    model.CommentList{},
		CreatedAt:   time.Now(),
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	// 填充作者用于响应，找不到也不影响已创建的帖子
	if author, err := s.users.FindByID(authorID); err == nil {
		post.Author = *author
	}
	s.invalidateFeed()
	return post, nil
}

// ListPosts returns all posts newest first, served from the Redis feed cache
// when possible. Cache failures fall back to the database silently.
func (s *PostService) ListPosts() ([]model.Post, error) {
	if s.feed != nil {
		if posts, err := s.feed.Get(); err == nil {
			return posts, nil
		}
	}
	posts, err := s.posts.List()
	if err != nil {
		return nil, err
	}
	if s.feed != nil {
		_ = s.feed.Set(posts)
	}
	return posts, nil
}

// ListPostsByUser 查询指定作者的帖子，同样按创建时间倒序
func (s *PostService) ListPostsByUser(userID uint64) ([]model.Post, error) {
	return s.posts.ListByAuthor(userID)
}

// GetPost 根据 ID 获取帖子
func (s *PostService) GetPost(id uint64) (*model.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// UpdatePost overwrites the four mutable fields after the ownership check.
// author/created_at/comments 不受影响。
func (s *PostService) UpdatePost(actingUser, postID uint64, title, description, imageURL, category string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, ErrPostFieldsMissing
	}
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actingUser {
		return nil, ErrNotAuthor
	}
	fields := map[string]interface{}{
		"title":       title,
		"description": description,
		"image_url":   imageURL,
		"category":    category,
	}
	affected, err := s.posts.UpdateFields(postID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// MySQL reports zero rows both for a same-values update and for a row
		// deleted since the ownership read; re-check which one happened.
		if _, err := s.GetPost(postID); err != nil {
			return nil, err
		}
	}
	post.Title = title
	post.Description = description
	post.ImageURL = imageURL
	post.Category = category
	s.invalidateFeed()
	return post, nil
}

// DeletePost removes the post and its embedded comments. Hard delete.
func (s *PostService) DeletePost(actingUser, postID uint64) error {
	post, err := s.GetPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actingUser {
		return ErrNotAuthor
	}
	if _, err := s.posts.Delete(postID); err != nil {
		return err
	}
	s.invalidateFeed()
	return nil
}

// AddComment appends one comment to the post. The commenter's display name is
// resolved now and frozen into the comment; later renames never rewrite it.
func (s *PostService) AddComment(actingUser, postID uint64, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyComment
	}
	name := "Anonymous"
	if user, err := s.users.FindByID(actingUser); err == nil {
		name = user.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	comment := model.Comment{
		Body:      body,
		AuthorID:  actingUser,
		Name:      name,
		CreatedAt: time.Now(),
	}
	affected, err := s.posts.AppendComment(postID, comment)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPostNotFound
	}
	s.invalidateFeed()
	return &comment, nil
}

func (s *PostService) invalidateFeed() {
	if s.feed != nil {
		_ = s.feed.Invalidate()
	}
}
