package services

import (
	"context"
	"strings"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ResourceService struct {
	resources repositories.ResourceRepository
	populator *Populator
}

func NewResourceService(store *repositories.Store, populator *Populator) *ResourceService {
	return &ResourceService{resources: store.Resources, populator: populator}
}

func (s *ResourceService) load(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	resource, err := s.resources.GetResourceByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Resource", "load resource")
	}
	return resource, nil
}

func (s *ResourceService) save(ctx context.Context, resource *models.Resource) (*models.ResourceView, error) {
	if err := s.resources.UpdateResource(ctx, resource); err != nil {
		return nil, storeErr(err, "Resource", "update resource")
	}
	return s.populator.ResourceView(ctx, resource)
}

func (s *ResourceService) CreateResource(ctx context.Context, authorID primitive.ObjectID, req *models.CreateResourceRequest) (*models.ResourceView, error) {
	resource := &models.Resource{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		Link:        req.Link,
		Author:      authorID,
		SavedBy:     []primitive.ObjectID{},
		Tags:        nonNilStrings(req.Tags),
	}
	if !models.IsResourceType(resource.Type) {
		return nil, apperr.Validation("Invalid resource type")
	}
	if err := s.resources.CreateResource(ctx, resource); err != nil {
		return nil, storeErr(err, "Resource", "create resource")
	}
	return s.populator.ResourceView(ctx, resource)
}

func (s *ResourceService) ListResources(ctx context.Context, filter models.ResourceFilter, page models.Pagination) (models.Page[models.ResourceView], error) {
	resources, total, err := s.resources.FindResources(ctx, filter, page)
	if err != nil {
		return models.Page[models.ResourceView]{}, storeErr(err, "Resource", "list resources")
	}
	views, err := s.populator.ResourceViews(ctx, resources)
	if err != nil {
		return models.Page[models.ResourceView]{}, err
	}
	return models.NewPage(views, page, total), nil
}

func (s *ResourceService) GetResource(ctx context.Context, id primitive.ObjectID) (*models.ResourceView, error) {
	resource, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populator.ResourceView(ctx, resource)
}

func (s *ResourceService) UpdateResource(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateResourceRequest) (*models.ResourceView, error) {
	resource, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, resource, "resource"); err != nil {
		return nil, err
	}
	if req.Type != "" && !models.IsResourceType(req.Type) {
		return nil, apperr.Validation("Invalid resource type")
	}
	if err := copier.CopyWithOption(resource, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperr.Internal(err, "Failed to update resource")
	}
	return s.save(ctx, resource)
}

func (s *ResourceService) DeleteResource(ctx context.Context, actorID, id primitive.ObjectID) error {
	resource, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, resource, "resource"); err != nil {
		return err
	}
	if err := s.resources.DeleteResource(ctx, id); err != nil {
		return storeErr(err, "Resource", "delete resource")
	}
	return nil
}

// ToggleSave bookmarks the resource for userID, or removes the bookmark.
func (s *ResourceService) ToggleSave(ctx context.Context, id, userID primitive.ObjectID) (*models.ResourceView, error) {
	resource, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.SavedBy, _ = toggleID(resource.SavedBy, userID)
	return s.save(ctx, resource)
}

// Uploads lists the resources authored by userID, newest first.
func (s *ResourceService) Uploads(ctx context.Context, userID primitive.ObjectID) ([]models.ResourceView, error) {
	return s.recent(ctx, models.ResourceFilter{AuthorID: &userID})
}

// Saved lists the resources userID has bookmarked, newest first.
func (s *ResourceService) Saved(ctx context.Context, userID primitive.ObjectID) ([]models.ResourceView, error) {
	return s.recent(ctx, models.ResourceFilter{SavedByID: &userID})
}

func (s *ResourceService) recent(ctx context.Context, filter models.ResourceFilter) ([]models.ResourceView, error) {
	resources, err := s.resources.ListRecentResources(ctx, filter)
	if err != nil {
		return nil, storeErr(err, "Resource", "list resources")
	}
	return s.populator.ResourceViews(ctx, resources)
}
