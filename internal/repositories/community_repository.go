package repositories

import (
	"context"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCommunityRepository implements CommunityRepository for MongoDB.
// Name uniqueness relies on the unique index created by EnsureIndexes.
type MongoCommunityRepository struct {
	collection *mongo.Collection
}

func NewMongoCommunityRepository(db *mongo.Database) *MongoCommunityRepository {
	return &MongoCommunityRepository{collection: db.Collection(CommunitiesCollection)}
}

func (r *MongoCommunityRepository) CreateCommunity(ctx context.Context, community *models.Community) error {
	community.ID = primitive.NewObjectID()
	community.CreatedAt = time.Now().UTC()
	community.UpdatedAt = community.CreatedAt
	_, err := r.collection.InsertOne(ctx, community)
	return translateErr(err)
}

func (r *MongoCommunityRepository) GetCommunityByID(ctx context.Context, id primitive.ObjectID) (*models.Community, error) {
	var community models.Community
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&community); err != nil {
		return nil, translateErr(err)
	}
	return &community, nil
}

// FindCommunities lists communities alphabetically by name.
func (r *MongoCommunityRepository) FindCommunities(ctx context.Context, filter models.CommunityFilter, page models.Pagination) ([]models.Community, int64, error) {
	communities := []models.Community{}
	total, err := findPage(ctx, r.collection, buildCommunityFilter(filter),
		bson.D{{Key: "name", Value: 1}},
		page.Skip(), page.Limit, &communities)
	return communities, total, err
}

func (r *MongoCommunityRepository) UpdateCommunity(ctx context.Context, community *models.Community) error {
	community.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, community.ID, community)
}

// AppendPost pushes a post id onto the community's post list.
func (r *MongoCommunityRepository) AppendPost(ctx context.Context, communityID, postID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": communityID}, bson.M{
		"$push": bson.M{"posts": postID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCommunityRepository) DeleteCommunity(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}
