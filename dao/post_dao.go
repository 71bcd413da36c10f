package dao

import (
	"encoding/json"

	"gorm.io/gorm"

	"personalblog/model"
)

type PostDAO struct {
	db *gorm.DB
}

// NewPostDAO 创建一个新的 PostDAO 实例
func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{db: db}
}

// Create 创建帖子
func (dao *PostDAO) Create(post *model.Post) error {
	return dao.db.Create(post).Error
}

// List returns all posts newest first with the author row preloaded.
func (dao *PostDAO) List() ([]model.Post, error) {
	var posts []model.Post
	err := dao.db.Preload("Author").Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

// ListByAuthor returns one user's posts newest first.
func (dao *PostDAO) ListByAuthor(authorID uint64) ([]model.Post, error) {
	var posts []model.Post
	err := dao.db.Preload("Author").Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

// GetByID 根据 ID 获取帖子（含作者）
func (dao *PostDAO) GetByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := dao.db.Preload("Author").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateFields overwrites the given columns for one post id.
// author_id/created_at/comments are never part of the map.
func (dao *PostDAO) UpdateFields(id uint64, fields map[string]interface{}) (int64, error) {
	res := dao.db.Model(&model.Post{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// Delete removes the post row; the embedded comments go with it.
func (dao *PostDAO) Delete(id uint64) (int64, error) {
	res := dao.db.Delete(&model.Post{}, id)
	return res.RowsAffected, res.Error
}

// AppendComment pushes one comment onto the post's JSON array in a single
// UPDATE, so concurrent appends to the same post never lose each other.
// RowsAffected == 0 means the post does not exist.
func (dao *PostDAO) AppendComment(id uint64, comment model.Comment) (int64, error) {
	payload, err := json.Marshal(comment)
	if err != nil {
		return 0, err
	}
	res := dao.db.Model(&model.Post{}).Where("id = ?", id).Update("comments",
		gorm.Expr("JSON_ARRAY_APPEND(COALESCE(comments, JSON_ARRAY()), '$', CAST(? AS JSON))", string(payload)))
	return res.RowsAffected, res.Error
}
