package repositories

import (
	"context"

	"github.com/anonto42/socially/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentIDsByPostID(ctx context.Context, postID uint) ([]uint, error)
	UpdateCommentContent(ctx context.Context, id uint, content string) error
	DeleteComment(ctx context.Context, id uint) (int64, error)
	DeleteCommentsByPostID(ctx context.Context, postID uint) (int64, error)
}

// GormCommentRepository implements CommentRepository on a GORM connection
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateComment inserts the comment row only; the author is referenced by id.
func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *GormCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentIDsByPostID returns the ids of every comment under a post
func (r *GormCommentRepository) GetCommentIDsByPostID(ctx context.Context, postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &ids).Error
	return ids, err
}

// UpdateCommentContent replaces the content of a comment
func (r *GormCommentRepository) UpdateCommentContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&models.Comment{ID: id}).Update("content", content).Error
}

// DeleteComment deletes a comment by ID
func (r *GormCommentRepository) DeleteComment(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	return res.RowsAffected, res.Error
}

// DeleteCommentsByPostID deletes every comment under a post
func (r *GormCommentRepository) DeleteCommentsByPostID(ctx context.Context, postID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
