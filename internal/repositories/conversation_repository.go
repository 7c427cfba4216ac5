package repositories

import (
	"context"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoConversationRepository struct {
	collection *mongo.Collection
}

func NewMongoConversationRepository(db *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{collection: db.Collection(ConversationsCollection)}
}

func (r *MongoConversationRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = time.Now().UTC()
	conv.UpdatedAt = conv.CreatedAt
	_, err := r.collection.InsertOne(ctx, conv)
	return translateErr(err)
}

func (r *MongoConversationRepository) GetConversationByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conv); err != nil {
		return nil, translateErr(err)
	}
	return &conv, nil
}

// FindDirectConversation returns the non-group conversation whose members are
// exactly a and b. A direct conversation never has a single member.
func (r *MongoConversationRepository) FindDirectConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	if a == b {
		return nil, ErrNotFound
	}
	var conv models.Conversation
	if err := r.collection.FindOne(ctx, directConversationFilter(a, b)).Decode(&conv); err != nil {
		return nil, translateErr(err)
	}
	return &conv, nil
}

// GetConversationsByMember lists the user's conversations, most recently
// updated first.
func (r *MongoConversationRepository) GetConversationsByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	convs := []models.Conversation{}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}})
	err := findAll(ctx, r.collection, bson.M{"members": userID}, &convs, opts)
	return convs, err
}

func (r *MongoConversationRepository) SetLastMessage(ctx context.Context, conversationID, messageID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": conversationID}, bson.M{
		"$set": bson.M{"lastMessage": messageID, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
