package v1

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personalblog/api/v1/request"
	"personalblog/api/v1/response"
	"personalblog/internal/metrics"
	"personalblog/service"
)

// PostAPI exposes HTTP handlers for post and comment operations.
type PostAPI struct {
	service *service.PostService
}

// NewPostAPI wires the service layer into the HTTP handlers.
func NewPostAPI(s *service.PostService) *PostAPI {
	return &PostAPI{service: s}
}

// CreatePost 创建帖子，作者为当前登录用户
func (p *PostAPI) CreatePost(c *gin.Context) {
	var req request.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncPostOp("create", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := p.service.CreatePost(c.GetUint64("user_id"), req.Title, req.Description, req.ImageURL, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrPostFieldsMissing) {
			metrics.IncPostOp("create", "bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.IncPostOp("create", "internal_error")
		log.Printf("create post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}
	metrics.IncPostOp("create", "success")
	c.JSON(http.StatusOK, response.NewPost(post))
}

// ListPosts 返回全部帖子，按创建时间倒序
func (p *PostAPI) ListPosts(c *gin.Context) {
	posts, err := p.service.ListPosts()
	if err != nil {
		metrics.IncPostOp("list", "internal_error")
		log.Printf("list posts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch posts"})
		return
	}
	metrics.IncPostOp("list", "success")
	c.JSON(http.StatusOK, response.NewPostList(posts))
}

// ListUserPosts 返回指定作者的帖子
func (p *PostAPI) ListUserPosts(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		// 不存在的作者 id 等价于没有帖子
		metrics.IncPostOp("list_user", "success")
		c.JSON(http.StatusOK, []response.Post{})
		return
	}
	posts, err := p.service.ListPostsByUser(userID)
	if err != nil {
		metrics.IncPostOp("list_user", "internal_error")
		log.Printf("list user posts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user posts"})
		return
	}
	metrics.IncPostOp("list_user", "success")
	c.JSON(http.StatusOK, response.NewPostList(posts))
}

// GetPost 根据 ID 获取帖子
func (p *PostAPI) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	post, err := p.service.GetPost(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("get post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch post"})
		return
	}
	c.JSON(http.StatusOK, response.NewPost(post))
}

// UpdatePost overwrites the mutable fields; only the author may call it.
func (p *PostAPI) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		metrics.IncPostOp("update", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	var req request.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncPostOp("update", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := p.service.UpdatePost(c.GetUint64("user_id"), id, req.Title, req.Description, req.ImageURL, req.Category)
	if err != nil {
		p.writePostError(c, "update", err, "failed to update post")
		return
	}
	metrics.IncPostOp("update", "success")
	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    response.NewPost(post),
	})
}

// DeletePost removes the post and its comments; only the author may call it.
func (p *PostAPI) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		metrics.IncPostOp("delete", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err := p.service.DeletePost(c.GetUint64("user_id"), id); err != nil {
		p.writePostError(c, "delete", err, "failed to delete post")
		return
	}
	metrics.IncPostOp("delete", "success")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// AddComment 追加评论，任何已登录用户都可以评论
func (p *PostAPI) AddComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		metrics.IncPostOp("comment", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	var req request.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncPostOp("comment", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := p.service.AddComment(c.GetUint64("user_id"), id, req.Body)
	if err != nil {
		p.writePostError(c, "comment", err, "failed to add comment")
		return
	}
	metrics.IncPostOp("comment", "success")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added",
		"comment": comment,
	})
}

// writePostError maps service errors onto the shared status code contract.
func (p *PostAPI) writePostError(c *gin.Context, op string, err error, internalMsg string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		metrics.IncPostOp(op, "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthor):
		metrics.IncPostOp(op, "forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPostFieldsMissing), errors.Is(err, service.ErrEmptyComment):
		metrics.IncPostOp(op, "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		metrics.IncPostOp(op, "internal_error")
		log.Printf("%s: %v", internalMsg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
