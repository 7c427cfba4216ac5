package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is stored in the posts collection with its comments embedded.
// Community is nil for public feed posts.
type Post struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title     string               `json:"title" bson:"title"`
	Content   string               `json:"content" bson:"content"`
	Author    primitive.ObjectID   `json:"author" bson:"author"`
	Tags      []string             `json:"tags" bson:"tags"`
	Image     string               `json:"image,omitempty" bson:"image,omitempty"`
	Anonymous bool                 `json:"anonymous" bson:"anonymous"`
	Community *primitive.ObjectID  `json:"community" bson:"community"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (p *Post) OwnerID() primitive.ObjectID { return p.Author }

// FindComment locates a comment by id inside the post.
func (p *Post) FindComment(id primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// PostView is a Post with its user references populated.
type PostView struct {
	ID        primitive.ObjectID   `json:"_id"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	Author    UserCompact          `json:"author"`
	Tags      []string             `json:"tags"`
	Image     string               `json:"image,omitempty"`
	Anonymous bool                 `json:"anonymous"`
	Community *primitive.ObjectID  `json:"community"`
	Likes     []primitive.ObjectID `json:"likes"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Content     string   `json:"content" validate:"required"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Anonymous   bool     `json:"anonymous"`
	CommunityID string   `json:"communityId" validate:"omitempty,objectid"`
}

// UpdatePostRequest carries a partial update; empty values leave the field
// untouched.
type UpdatePostRequest struct {
	Title     string   `json:"title" validate:"omitempty,max=200"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
	Image     string   `json:"image" validate:"omitempty,url"`
	Anonymous *bool    `json:"anonymous" copier:"-"`
}

type TextRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// PostFilter selects posts for listing.
type PostFilter struct {
	Search      string
	Tag         string
	AuthorID    *primitive.ObjectID
	CommunityID *primitive.ObjectID
	PublicOnly  bool
}
