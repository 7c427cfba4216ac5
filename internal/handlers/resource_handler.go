package handlers

import (
	"net/http"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ResourceHandler handles HTTP requests related to shared resources
type ResourceHandler struct {
	resources *services.ResourceService
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(resources *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// RegisterResourceRoutes registers resource-related routes
func (h *ResourceHandler) RegisterResourceRoutes(g *echo.Group, auth AuthMiddleware) {
	g.GET("", h.GetResources, auth.Optional)
	g.POST("", h.CreateResource, auth.Required)
	g.GET("/user/uploads", h.GetUploads, auth.Required)
	g.GET("/user/saved", h.GetSaved, auth.Required)
	g.GET("/:id", h.GetResource, auth.Optional)
	g.PUT("/:id", h.UpdateResource, auth.Required)
	g.DELETE("/:id", h.DeleteResource, auth.Required)
	g.POST("/:id/save", h.SaveResource, auth.Required)
}

func (h *ResourceHandler) CreateResource(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CreateResourceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	resource, err := h.resources.CreateResource(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) GetResources(c echo.Context) error {
	author, err := queryID(c, "author")
	if err != nil {
		return err
	}
	savedBy, err := queryID(c, "savedBy")
	if err != nil {
		return err
	}
	filter := models.ResourceFilter{
		Search:    c.QueryParam("search"),
		Type:      c.QueryParam("type"),
		Tag:       c.QueryParam("tag"),
		AuthorID:  author,
		SavedByID: savedBy,
	}
	page, err := h.resources.ListResources(c.Request().Context(), filter, pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(page, "resources"))
}

func (h *ResourceHandler) GetResource(c echo.Context) error {
	id, err := pathID(c, "id", "resource")
	if err != nil {
		return err
	}
	resource, err := h.resources.GetResource(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) UpdateResource(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "resource")
	if err != nil {
		return err
	}
	var req models.UpdateResourceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	resource, err := h.resources.UpdateResource(c.Request().Context(), userID, id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "resource")
	if err != nil {
		return err
	}
	if err := h.resources.DeleteResource(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Resource deleted successfully"))
}

// SaveResource toggles the caller's bookmark on a resource
func (h *ResourceHandler) SaveResource(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "resource")
	if err != nil {
		return err
	}
	resource, err := h.resources.ToggleSave(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) GetUploads(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	resources, err := h.resources.Uploads(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) GetSaved(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	resources, err := h.resources.Saved(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resources)
}
