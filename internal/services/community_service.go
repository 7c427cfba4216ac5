package services

import (
	"context"
	"strings"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommunityService manages communities and their membership.
type CommunityService struct {
	communities repositories.CommunityRepository
	posts       repositories.PostRepository
	postService *PostService
	populator   *Populator
}

func NewCommunityService(store *repositories.Store, postService *PostService, populator *Populator) *CommunityService {
	return &CommunityService{
		communities: store.Communities,
		posts:       store.Posts,
		postService: postService,
		populator:   populator,
	}
}

func (s *CommunityService) load(ctx context.Context, id primitive.ObjectID) (*models.Community, error) {
	community, err := s.communities.GetCommunityByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Community", "load community")
	}
	return community, nil
}

func nameConflict(err error, op string) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return apperr.Conflict("A community with this name already exists")
	}
	return storeErr(err, "Community", op)
}

// CreateCommunity makes adminID the admin and first member.
func (s *CommunityService) CreateCommunity(ctx context.Context, adminID primitive.ObjectID, req *models.CreateCommunityRequest) (*models.CommunityView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	community := &models.Community{
		Name:        name,
		Description: req.Description,
		Image:       req.Image,
		Admin:       adminID,
		Members:     []primitive.ObjectID{adminID},
		Posts:       []primitive.ObjectID{},
	}
	if err := s.communities.CreateCommunity(ctx, community); err != nil {
		return nil, nameConflict(err, "create community")
	}
	return s.populator.CommunityView(ctx, community)
}

func (s *CommunityService) ListCommunities(ctx context.Context, filter models.CommunityFilter, page models.Pagination) (models.Page[models.CommunityView], error) {
	communities, total, err := s.communities.FindCommunities(ctx, filter, page)
	if err != nil {
		return models.Page[models.CommunityView]{}, storeErr(err, "Community", "list communities")
	}
	views, err := s.populator.CommunityViews(ctx, communities)
	if err != nil {
		return models.Page[models.CommunityView]{}, err
	}
	return models.NewPage(views, page, total), nil
}

// GetCommunity returns the community with its posts resolved, newest first.
func (s *CommunityService) GetCommunity(ctx context.Context, id primitive.ObjectID) (*models.CommunityDetail, error) {
	community, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.populator.CommunityView(ctx, community)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetPostsByIDs(ctx, community.Posts)
	if err != nil {
		return nil, storeErr(err, "Post", "load community posts")
	}
	postViews, err := s.populator.PostViews(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &models.CommunityDetail{CommunityView: *view, Posts: postViews}, nil
}

func (s *CommunityService) UpdateCommunity(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateCommunityRequest) (*models.CommunityView, error) {
	community, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, community, "community"); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := copier.CopyWithOption(community, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperr.Internal(err, "Failed to update community")
	}
	if err := s.communities.UpdateCommunity(ctx, community); err != nil {
		return nil, nameConflict(err, "update community")
	}
	return s.populator.CommunityView(ctx, community)
}

func (s *CommunityService) DeleteCommunity(ctx context.Context, actorID, id primitive.ObjectID) error {
	community, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, community, "community"); err != nil {
		return err
	}
	if err := s.communities.DeleteCommunity(ctx, id); err != nil {
		return storeErr(err, "Community", "delete community")
	}
	return nil
}

// Join rejects a user who is already a member.
func (s *CommunityService) Join(ctx context.Context, id, userID primitive.ObjectID) (*models.CommunityView, error) {
	community, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if containsID(community.Members, userID) {
		return nil, apperr.Conflict("Already a member of this community")
	}
	community.Members = append(community.Members, userID)
	if err := s.communities.UpdateCommunity(ctx, community); err != nil {
		return nil, storeErr(err, "Community", "join community")
	}
	return s.populator.CommunityView(ctx, community)
}

// Leave removes userID from the members. Leaving a community one is not a
// member of succeeds without changing anything. The admin keeps the admin
// role after leaving.
func (s *CommunityService) Leave(ctx context.Context, id, userID primitive.ObjectID) (*models.CommunityView, error) {
	community, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if containsID(community.Members, userID) {
		community.Members = removeID(community.Members, userID)
		if err := s.communities.UpdateCommunity(ctx, community); err != nil {
			return nil, storeErr(err, "Community", "leave community")
		}
	}
	return s.populator.CommunityView(ctx, community)
}

// AddPost creates a post inside the community.
func (s *CommunityService) AddPost(ctx context.Context, id, authorID primitive.ObjectID, req *models.CreatePostRequest) (*models.PostView, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	req.CommunityID = id.Hex()
	return s.postService.CreatePost(ctx, authorID, req)
}
