package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaText  = "text"
	MediaImage = "image"
	MediaVideo = "video"
)

// Message is immutable once created. Recipient is only set by the legacy
// direct-message model; Read is never flipped.
type Message struct {
	ID             primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Sender         primitive.ObjectID  `json:"sender" bson:"sender"`
	Recipient      *primitive.ObjectID `json:"recipient,omitempty" bson:"recipient,omitempty"`
	ConversationID *primitive.ObjectID `json:"conversationId,omitempty" bson:"conversationId,omitempty"`
	Content        string              `json:"content" bson:"content"`
	MediaType      string              `json:"mediaType" bson:"mediaType"`
	MediaURL       string              `json:"mediaUrl,omitempty" bson:"mediaUrl,omitempty"`
	Read           bool                `json:"read" bson:"read"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type MessageView struct {
	ID             primitive.ObjectID  `json:"_id"`
	Sender         UserCompact         `json:"sender"`
	ConversationID *primitive.ObjectID `json:"conversationId,omitempty"`
	Content        string              `json:"content"`
	MediaType      string              `json:"mediaType"`
	MediaURL       string              `json:"mediaUrl,omitempty"`
	Read           bool                `json:"read"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// SendMessageRequest accepts either a conversation id or a recipient id.
// "recipient" is the spelling used by the web client.
type SendMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"omitempty,objectid"`
	RecipientID    string `json:"recipientId" validate:"omitempty,objectid"`
	Recipient      string `json:"recipient" validate:"omitempty,objectid"`
	Content        string `json:"content" validate:"max=5000"`
	MediaType      string `json:"mediaType" validate:"omitempty,oneof=text image video"`
	MediaURL       string `json:"mediaUrl" validate:"omitempty,url"`
}

func (r *SendMessageRequest) Target() string {
	if r.RecipientID != "" {
		return r.RecipientID
	}
	return r.Recipient
}
