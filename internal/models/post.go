package models

import "time"

// Post is a piece of content owned by its author.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID"`
	Content   string    `json:"content" gorm:"type:text"`
	Image     string    `json:"image"`
	Comments  []Comment `json:"-" gorm:"foreignKey:PostID"`
	Likes     []Like    `json:"-" gorm:"foreignKey:PostID"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostCounts carries the like and comment aggregates of a post.
type PostCounts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// PostView is a post as rendered in feeds and profiles.
type PostView struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	Image     string        `json:"image,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Author    UserSummary   `json:"author"`
	Comments  []CommentView `json:"comments"`
	LikerIDs  []uint        `json:"liker_ids"`
	Counts    PostCounts    `json:"_count"`
}

// ToView projects a post whose Author, Comments(.Author) and Likes are loaded.
func (p *Post) ToView() PostView {
	view := PostView{
		ID:        p.ID,
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		Author:    p.Author.ToSummary(),
		Comments:  make([]CommentView, 0, len(p.Comments)),
		LikerIDs:  make([]uint, 0, len(p.Likes)),
		Counts:    PostCounts{Likes: len(p.Likes), Comments: len(p.Comments)},
	}
	for i := range p.Comments {
		view.Comments = append(view.Comments, p.Comments[i].ToView())
	}
	for _, l := range p.Likes {
		view.LikerIDs = append(view.LikerIDs, l.UserID)
	}
	return view
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"max=2000"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
