package repositories

import (
	"context"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoResourceRepository struct {
	collection *mongo.Collection
}

func NewMongoResourceRepository(db *mongo.Database) *MongoResourceRepository {
	return &MongoResourceRepository{collection: db.Collection(ResourcesCollection)}
}

func (r *MongoResourceRepository) CreateResource(ctx context.Context, resource *models.Resource) error {
	resource.ID = primitive.NewObjectID()
	resource.CreatedAt = time.Now().UTC()
	resource.UpdatedAt = resource.CreatedAt
	_, err := r.collection.InsertOne(ctx, resource)
	return translateErr(err)
}

func (r *MongoResourceRepository) GetResourceByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	var resource models.Resource
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&resource); err != nil {
		return nil, translateErr(err)
	}
	return &resource, nil
}

// FindResources lists resources alphabetically by title.
func (r *MongoResourceRepository) FindResources(ctx context.Context, filter models.ResourceFilter, page models.Pagination) ([]models.Resource, int64, error) {
	resources := []models.Resource{}
	total, err := findPage(ctx, r.collection, buildResourceFilter(filter),
		bson.D{{Key: "title", Value: 1}},
		page.Skip(), page.Limit, &resources)
	return resources, total, err
}

func (r *MongoResourceRepository) ListRecentResources(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	resources := []models.Resource{}
	err := findAll(ctx, r.collection, buildResourceFilter(filter), &resources, newestFirst())
	return resources, err
}

func (r *MongoResourceRepository) UpdateResource(ctx context.Context, resource *models.Resource) error {
	resource.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, resource.ID, resource)
}

func (r *MongoResourceRepository) DeleteResource(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}
