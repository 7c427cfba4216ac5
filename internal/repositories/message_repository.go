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

type MongoMessageRepository struct {
	collection *mongo.Collection
}

func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection(MessagesCollection)}
}

func (r *MongoMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	msg.UpdatedAt = msg.CreatedAt
	_, err := r.collection.InsertOne(ctx, msg)
	return translateErr(err)
}

func (r *MongoMessageRepository) GetMessagesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Message, error) {
	msgs := []models.Message{}
	if len(ids) == 0 {
		return msgs, nil
	}
	err := findAll(ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}}, &msgs)
	return msgs, err
}

// GetMessagesByConversation returns the thread in creation order.
func (r *MongoMessageRepository) GetMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	msgs := []models.Message{}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	err := findAll(ctx, r.collection, bson.M{"conversationId": conversationID}, &msgs, opts)
	return msgs, err
}
