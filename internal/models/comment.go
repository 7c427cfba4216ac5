package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in a Post and addressed by its id within that post.
type Comment struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id"`
	User      primitive.ObjectID   `json:"user" bson:"user"`
	Text      string               `json:"text" bson:"text"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Replies   []Reply              `json:"replies" bson:"replies"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}

// Reply is embedded in a Comment. Replies are append-only.
type Reply struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type CommentView struct {
	ID        primitive.ObjectID   `json:"_id"`
	User      UserCompact          `json:"user"`
	Text      string               `json:"text"`
	Likes     []primitive.ObjectID `json:"likes"`
	Replies   []ReplyView          `json:"replies"`
	CreatedAt time.Time            `json:"createdAt"`
}

type ReplyView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      UserCompact        `json:"user"`
	Text      string             `json:"text"`
	CreatedAt time.Time          `json:"createdAt"`
}
