package repositories

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection         = "users"
	PostsCollection         = "posts"
	CommunitiesCollection   = "communities"
	ConversationsCollection = "conversations"
	MessagesCollection      = "messages"
	ResourcesCollection     = "resources"
)

// NewMongoStore builds every repository on top of a single database.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:         NewMongoUserRepository(db),
		Posts:         NewMongoPostRepository(db),
		Communities:   NewMongoCommunityRepository(db),
		Conversations: NewMongoConversationRepository(db),
		Messages:      NewMongoMessageRepository(db),
		Resources:     NewMongoResourceRepository(db),
	}
}

// translateErr maps driver errors onto the package sentinels.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// findAll decodes every document matching filter into out.
func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// findPage counts the matches and decodes the requested page into out.
func findPage(ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, skip, limit int64, out interface{}) (int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	findOptions := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	if err := findAll(ctx, coll, filter, out, findOptions); err != nil {
		return 0, err
	}
	return total, nil
}

// replaceByID overwrites the document with the given id.
func replaceByID(ctx context.Context, coll *mongo.Collection, id interface{}, doc interface{}) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteByID removes the document with the given id.
func deleteByID(ctx context.Context, coll *mongo.Collection, id interface{}) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
}
