package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/socially/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post listing. Zero values mean "no restriction".
type PostFilter struct {
	AuthorID uint
	LikedBy  uint
	BeforeID uint // cursor: only posts listed after this one
	Limit    int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	UpdatePostContent(ctx context.Context, id uint, content string) error
	DeletePost(ctx context.Context, id uint) (int64, error)
	CountByAuthorID(ctx context.Context, authorID uint) (int64, error)
}

// GormPostRepository implements PostRepository on a GORM connection
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// CreatePost inserts a post row
func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// GetPostByID retrieves a post by ID without its associations
func (r *GormPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns posts newest first with author, comments (oldest first,
// with authors) and likes preloaded.
func (r *GormPostRepository) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC").Order("comments.id ASC")
		}).
		Preload("Comments.Author").
		Preload("Likes")

	if filter.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.LikedBy != 0 {
		q = q.Where("EXISTS (SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?)", filter.LikedBy)
	}
	if filter.BeforeID != 0 {
		var err error
		if q, err = r.afterCursor(ctx, q, filter.BeforeID); err != nil {
			return nil, err
		}
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var posts []models.Post
	err := q.Order("posts.created_at DESC").Order("posts.id DESC").Find(&posts).Error
	return posts, err
}

// afterCursor keeps the posts that sort after the cursor post under
// (created_at DESC, id DESC). A cursor post that no longer exists degrades to
// an id bound.
func (r *GormPostRepository) afterCursor(ctx context.Context, q *gorm.DB, cursorID uint) (*gorm.DB, error) {
	var cursor models.Post
	err := r.db.WithContext(ctx).Select("id", "created_at").First(&cursor, cursorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return q.Where("posts.id < ?", cursorID), nil
	}
	if err != nil {
		return nil, err
	}
	return q.Where("(posts.created_at < ? OR (posts.created_at = ? AND posts.id < ?))",
		cursor.CreatedAt, cursor.CreatedAt, cursor.ID), nil
}

// UpdatePostContent replaces the content of a post
func (r *GormPostRepository) UpdatePostContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&models.Post{ID: id}).Update("content", content).Error
}

// DeletePost deletes the post row only; dependents are removed by the caller
func (r *GormPostRepository) DeletePost(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	return res.RowsAffected, res.Error
}

func (r *GormPostRepository) CountByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
