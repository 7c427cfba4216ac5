package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is either a direct thread between exactly two users (unique per
// pair) or a named group with a group admin.
type Conversation struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name        string               `json:"name,omitempty" bson:"name,omitempty"`
	Members     []primitive.ObjectID `json:"members" bson:"members"`
	IsGroup     bool                 `json:"isGroup" bson:"isGroup"`
	GroupAdmin  *primitive.ObjectID  `json:"groupAdmin,omitempty" bson:"groupAdmin,omitempty"`
	LastMessage *primitive.ObjectID  `json:"lastMessage,omitempty" bson:"lastMessage,omitempty"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type ConversationView struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name,omitempty"`
	Members     []UserCompact      `json:"members"`
	IsGroup     bool               `json:"isGroup"`
	GroupAdmin  *UserCompact       `json:"groupAdmin,omitempty"`
	LastMessage *MessageView       `json:"lastMessage,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type CreateGroupRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	MemberIDs []string `json:"memberIds" validate:"omitempty,dive,objectid"`
	Members   []string `json:"members" validate:"omitempty,dive,objectid"`
}

// AllMemberIDs merges the two accepted spellings of the member list.
func (r *CreateGroupRequest) AllMemberIDs() []string {
	return append(append([]string{}, r.MemberIDs...), r.Members...)
}
