package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceTypes enumerates the allowed Resource.Type values.
var ResourceTypes = []string{"Roadmap", "Notes", "Book", "Tutorial", "Tool", "Other"}

func IsResourceType(s string) bool {
	for _, t := range ResourceTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Resource is a shared learning link. SavedBy holds the users who bookmarked it.
type Resource struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	Type        string               `json:"type" bson:"type"`
	Link        string               `json:"link" bson:"link"`
	Author      primitive.ObjectID   `json:"author" bson:"author"`
	SavedBy     []primitive.ObjectID `json:"savedBy" bson:"savedBy"`
	Tags        []string             `json:"tags" bson:"tags"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (r *Resource) OwnerID() primitive.ObjectID { return r.Author }

type ResourceView struct {
	ID          primitive.ObjectID   `json:"_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Type        string               `json:"type"`
	Link        string               `json:"link"`
	Author      UserCompact          `json:"author"`
	SavedBy     []primitive.ObjectID `json:"savedBy"`
	Tags        []string             `json:"tags"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type CreateResourceRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Type        string   `json:"type" validate:"required,resourcetype"`
	Link        string   `json:"link" validate:"required,url"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
}

type UpdateResourceRequest struct {
	Title       string   `json:"title" validate:"omitempty,max=200"`
	Description string   `json:"description"`
	Type        string   `json:"type" validate:"omitempty,resourcetype"`
	Link        string   `json:"link" validate:"omitempty,url"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
}

type ResourceFilter struct {
	Search    string
	Type      string
	Tag       string
	AuthorID  *primitive.ObjectID
	SavedByID *primitive.ObjectID
}
