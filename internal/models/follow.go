package models

import "time"

// Follow is a directed follower -> following edge
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID"`
	FollowingID uint      `json:"following_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID"`
	CreatedAt   time.Time `json:"created_at"`
}
