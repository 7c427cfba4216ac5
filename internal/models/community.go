package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community relation filters for listings, relative to a viewer.
const (
	RelationCreated     = "created"
	RelationSubscribed  = "subscribed"
	RelationRecommended = "recommended"
)

// Community is owned by a single admin. Name is unique across communities.
type Community struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Image       string               `json:"image" bson:"image"`
	Admin       primitive.ObjectID   `json:"admin" bson:"admin"`
	Members     []primitive.ObjectID `json:"members" bson:"members"`
	Posts       []primitive.ObjectID `json:"posts" bson:"posts"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (c *Community) OwnerID() primitive.ObjectID { return c.Admin }

type CommunityView struct {
	ID          primitive.ObjectID   `json:"_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Image       string               `json:"image"`
	Admin       UserCompact          `json:"admin"`
	Members     []UserCompact        `json:"members"`
	Posts       []primitive.ObjectID `json:"posts"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// CommunityDetail resolves the post ids of a CommunityView to full posts.
type CommunityDetail struct {
	CommunityView
	Posts []PostView `json:"posts"`
}

type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type UpdateCommunityRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type CommunityFilter struct {
	Search   string
	Relation string
	ViewerID *primitive.ObjectID
}
