package repositories

import (
	"context"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when an id or filter resolves to no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// PostRepository defines the interface for post data operations.
// UpdatePost replaces the whole document, so concurrent read-modify-write
// cycles on the same post are last-write-wins.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	FindPosts(ctx context.Context, filter models.PostFilter, page models.Pagination) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
}

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	CreateCommunity(ctx context.Context, community *models.Community) error
	GetCommunityByID(ctx context.Context, id primitive.ObjectID) (*models.Community, error)
	FindCommunities(ctx context.Context, filter models.CommunityFilter, page models.Pagination) ([]models.Community, int64, error)
	UpdateCommunity(ctx context.Context, community *models.Community) error
	AppendPost(ctx context.Context, communityID, postID primitive.ObjectID) error
	DeleteCommunity(ctx context.Context, id primitive.ObjectID) error
}

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversationByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error)
	// FindDirectConversation returns the non-group conversation whose members
	// are exactly {a, b}, or ErrNotFound.
	FindDirectConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error)
	GetConversationsByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error)
	SetLastMessage(ctx context.Context, conversationID, messageID primitive.ObjectID) error
}

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessagesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Message, error)
	GetMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error)
}

// ResourceRepository defines the interface for resource data operations
type ResourceRepository interface {
	CreateResource(ctx context.Context, resource *models.Resource) error
	GetResourceByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error)
	FindResources(ctx context.Context, filter models.ResourceFilter, page models.Pagination) ([]models.Resource, int64, error)
	// ListRecentResources returns every match, newest first.
	ListRecentResources(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error)
	UpdateResource(ctx context.Context, resource *models.Resource) error
	DeleteResource(ctx context.Context, id primitive.ObjectID) error
}

// Store bundles one repository per collection.
type Store struct {
	Users         UserRepository
	Posts         PostRepository
	Communities   CommunityRepository
	Conversations ConversationRepository
	Messages      MessageRepository
	Resources     ResourceRepository
}
