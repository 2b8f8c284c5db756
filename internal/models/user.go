package models

import "time"

// User is the internal record for an externally authenticated identity.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ExternalID string    `json:"-" gorm:"size:128;not null;uniqueIndex"` // identity provider subject
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Username   string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email      string    `json:"email" gorm:"not null"`
	Bio        string    `json:"bio"`
	Location   string    `json:"location"`
	Website    string    `json:"website"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserSummary is the minimal author/creator projection joined into listings.
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// ToSummary projects a user into the listing shape.
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Surname:  u.Surname,
		Username: u.Username,
		Image:    u.Image,
	}
}

// UserCounts carries follower/following/post aggregates.
type UserCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Posts     int64 `json:"posts"`
}

// Profile is a user together with its aggregates.
type Profile struct {
	User
	Counts UserCounts `json:"_count"`
}

// Suggestion is a follow suggestion with its follower count.
type Suggestion struct {
	UserSummary
	FollowerCount int64 `json:"follower_count"`
}

// UpdateProfileRequest defines the request body for editing the caller's profile
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,max=50"`
	Bio      string `json:"bio" validate:"omitempty,max=160"`
	Location string `json:"location" validate:"omitempty,max=100"`
	Website  string `json:"website" validate:"omitempty,url"`
}

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&Comment{},
		&Like{},
		&Follow{},
		&Notification{},
	}
}
