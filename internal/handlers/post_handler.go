package handlers

import (
	"net/http"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts, their comments and
// replies
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, auth AuthMiddleware) {
	g.GET("", h.GetPosts, auth.Optional)
	g.POST("", h.CreatePost, auth.Required)
	g.GET("/:id", h.GetPost, auth.Optional)
	g.PUT("/:id", h.UpdatePost, auth.Required)
	g.DELETE("/:id", h.DeletePost, auth.Required)
	g.POST("/:id/like", h.LikePost, auth.Required)
	g.POST("/:id/comment", h.AddComment, auth.Required)
	g.PUT("/:id/comment/:commentId/like", h.LikeComment, auth.Required)
	g.POST("/:id/comment/:commentId/reply", h.AddReply, auth.Required)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.CreatePost(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts lists the public feed. Community posts never appear here.
func (h *PostHandler) GetPosts(c echo.Context) error {
	author, err := queryID(c, "author")
	if err != nil {
		return err
	}
	filter := models.PostFilter{
		Search:     c.QueryParam("search"),
		Tag:        c.QueryParam("tag"),
		AuthorID:   author,
		PublicOnly: true,
	}
	page, err := h.posts.ListPosts(c.Request().Context(), filter, pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(page, "posts"))
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := pathID(c, "id", "post")
	if err != nil {
		return err
	}
	post, err := h.posts.GetPost(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost updates a post; only its author may do so
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.UpdatePost(c.Request().Context(), userID, postID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post; only its author may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.posts.DeletePost(c.Request().Context(), userID, postID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Post deleted successfully"))
}

// LikePost toggles the caller's like on a post
func (h *PostHandler) LikePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id", "post")
	if err != nil {
		return err
	}
	post, err := h.posts.ToggleLike(c.Request().Context(), postID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// AddComment appends a comment to a post
func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.AddComment(c.Request().Context(), postID, userID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// LikeComment toggles the caller's like on a comment
func (h *PostHandler) LikeComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id", "post")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "commentId", "comment")
	if err != nil {
		return err
	}
	post, err := h.posts.ToggleCommentLike(c.Request().Context(), postID, commentID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// AddReply appends a reply to a comment
func (h *PostHandler) AddReply(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id", "post")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "commentId", "comment")
	if err != nil {
		return err
	}
	var req models.TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.AddReply(c.Request().Context(), postID, commentID, userID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
