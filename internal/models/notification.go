package models

import "time"

// NotificationType is the kind of event a notification reports.
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
)

// Notification is a derived record written alongside a like, comment or follow.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"` // recipient
	User      User             `json:"-" gorm:"foreignKey:UserID"`
	CreatorID uint             `json:"creator_id" gorm:"not null;index"`
	Creator   User             `json:"-" gorm:"foreignKey:CreatorID"`
	Type      NotificationType `json:"type" gorm:"size:16;not null"`
	PostID    *uint            `json:"post_id,omitempty" gorm:"index"`
	Post      *Post            `json:"-" gorm:"foreignKey:PostID"`
	CommentID *uint            `json:"comment_id,omitempty" gorm:"index"`
	Comment   *Comment         `json:"-" gorm:"foreignKey:CommentID"`
	Read      bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

// NotificationPost is the post projection carried by a notification.
type NotificationPost struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// NotificationCommentRef is the comment projection carried by a notification.
type NotificationCommentRef struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationView is a notification joined with minimal related entities.
type NotificationView struct {
	ID        uint                    `json:"id"`
	Type      NotificationType        `json:"type"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
	Creator   UserSummary             `json:"creator"`
	Post      *NotificationPost       `json:"post,omitempty"`
	Comment   *NotificationCommentRef `json:"comment,omitempty"`
}

// ToView projects a notification whose Creator, Post and Comment are loaded.
func (n *Notification) ToView() NotificationView {
	view := NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
		Creator:   n.Creator.ToSummary(),
	}
	if n.Post != nil {
		view.Post = &NotificationPost{ID: n.Post.ID, Content: n.Post.Content, Image: n.Post.Image}
	}
	if n.Comment != nil {
		view.Comment = &NotificationCommentRef{ID: n.Comment.ID, Content: n.Comment.Content, CreatedAt: n.Comment.CreatedAt}
	}
	return view
}

// MarkReadRequest defines the request body for bulk marking notifications read
type MarkReadRequest struct {
	IDs []uint `json:"ids" validate:"required,max=500"`
}
