package repositories

import (
	"context"

	"github.com/anonto42/socially/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error
	GetSuggestions(ctx context.Context, viewerID uint, limit int) ([]models.Suggestion, error)
}

// GormUserRepository implements UserRepository on a GORM connection
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateUser creates a new user
func (r *GormUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *GormUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByExternalID retrieves a user by identity provider subject
func (r *GormUserRepository) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// UpdateProfile writes the given columns, including empty strings
func (r *GormUserRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Updates(fields).Error
}

// GetSuggestions returns up to limit users the viewer does not follow,
// excluding the viewer, in ascending id order.
func (r *GormUserRepository) GetSuggestions(ctx context.Context, viewerID uint, limit int) ([]models.Suggestion, error) {
	db := r.db.WithContext(ctx)
	followed := db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", viewerID)

	var suggestions []models.Suggestion
	err := db.Model(&models.User{}).
		Select("users.id, users.name, users.surname, users.username, users.image, " +
			"(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) AS follower_count").
		Where("users.id <> ?", viewerID).
		Where("users.id NOT IN (?)", followed).
		Order("users.id ASC").
		Limit(limit).
		Scan(&suggestions).Error
	return suggestions, err
}
