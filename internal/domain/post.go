package domain

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post is a named page owning its own ordered component list.
type Post struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Status         PostStatus  `json:"status"`
	PageComponents []Component `json:"pageComponents"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Clone deep-copies the post including its component list.
func (p Post) Clone() Post {
	p.PageComponents = CloneComponents(p.PageComponents)
	return p
}

// PostStore holds the posts of a builder session.
type PostStore interface {
	CreatePost(p *Post) error
	GetPost(id string) (*Post, error)
	ListPosts() ([]Post, error)
	UpdatePost(p *Post) error
	DeletePost(id string) error
}
