package repositories

import (
	"context"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(PostsCollection)}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	_, err := r.collection.InsertOne(ctx, post)
	return translateErr(err)
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translateErr(err)
	}
	return &post, nil
}

// GetPostsByIDs returns the posts with the given ids, newest first.
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	posts := []models.Post{}
	if len(ids) == 0 {
		return posts, nil
	}
	err := findAll(ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}}, &posts, newestFirst())
	return posts, err
}

// FindPosts lists posts newest first.
func (r *MongoPostRepository) FindPosts(ctx context.Context, filter models.PostFilter, page models.Pagination) ([]models.Post, int64, error) {
	posts := []models.Post{}
	total, err := findPage(ctx, r.collection, buildPostFilter(filter),
		bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		page.Skip(), page.Limit, &posts)
	return posts, total, err
}

// UpdatePost writes back the whole post document.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, post.ID, post)
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id)
}
