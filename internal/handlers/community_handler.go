package handlers

import (
	"net/http"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommunityHandler handles HTTP requests related to communities
type CommunityHandler struct {
	communities *services.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(communities *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communities: communities}
}

// RegisterCommunityRoutes registers community-related routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group, auth AuthMiddleware) {
	g.GET("", h.GetCommunities, auth.Optional)
	g.POST("", h.CreateCommunity, auth.Required)
	g.GET("/:id", h.GetCommunity, auth.Optional)
	g.PUT("/:id", h.UpdateCommunity, auth.Required)
	g.DELETE("/:id", h.DeleteCommunity, auth.Required)
	g.POST("/:id/join", h.JoinCommunity, auth.Required)
	g.POST("/:id/leave", h.LeaveCommunity, auth.Required)
	g.POST("/:id/posts", h.AddPost, auth.Required)
}

func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CreateCommunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	community, err := h.communities.CreateCommunity(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, community)
}

// GetCommunities lists communities. "type" selects created, subscribed or
// recommended relative to "userId", defaulting to the caller.
func (h *CommunityHandler) GetCommunities(c echo.Context) error {
	viewer, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	if viewer == nil {
		viewer = viewerID(c)
	}
	filter := models.CommunityFilter{
		Search:   c.QueryParam("search"),
		Relation: c.QueryParam("type"),
		ViewerID: viewer,
	}
	page, err := h.communities.ListCommunities(c.Request().Context(), filter, pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(page, "communities"))
}

func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	id, err := pathID(c, "id", "community")
	if err != nil {
		return err
	}
	community, err := h.communities.GetCommunity(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) UpdateCommunity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "community")
	if err != nil {
		return err
	}
	var req models.UpdateCommunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	community, err := h.communities.UpdateCommunity(c.Request().Context(), userID, id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) DeleteCommunity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "community")
	if err != nil {
		return err
	}
	if err := h.communities.DeleteCommunity(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Community deleted successfully"))
}

func (h *CommunityHandler) JoinCommunity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "community")
	if err != nil {
		return err
	}
	community, err := h.communities.Join(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) LeaveCommunity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "community")
	if err != nil {
		return err
	}
	community, err := h.communities.Leave(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, community)
}

// AddPost creates a post inside the community
func (h *CommunityHandler) AddPost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "community")
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.communities.AddPost(c.Request().Context(), id, userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}
