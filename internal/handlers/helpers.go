package handlers

import (
	"strconv"
	"strings"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/middleware"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID returns the authenticated user of the request.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	session, ok := middleware.GetSession(c)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized("Not authorized, no token")
	}
	return session.UserID, nil
}

// viewerID returns the authenticated user, if any.
func viewerID(c echo.Context) *primitive.ObjectID {
	if session, ok := middleware.GetSession(c); ok {
		id := session.UserID
		return &id
	}
	return nil
}

func pathID(c echo.Context, param, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid %s id", what)
	}
	return id, nil
}

// queryID parses an optional id filter; an absent parameter yields nil.
func queryID(c echo.Context, param string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(c.QueryParam(param))
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, apperr.Validation("Invalid %s", param)
	}
	return &id, nil
}

func queryInt(c echo.Context, param string) int64 {
	n, err := strconv.ParseInt(c.QueryParam(param), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func pagination(c echo.Context) models.Pagination {
	return models.NewPagination(queryInt(c, "page"), queryInt(c, "limit"), models.DefaultPageLimit)
}

// bindAndValidate binds the request body into req and runs the registered
// validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("Invalid request payload")
	}
	return c.Validate(req)
}

// listEnvelope renders a page under "items" and, for the web client, under
// the entity name with a matching total ("posts", "totalPosts").
func listEnvelope[T any](page models.Page[T], entity string) echo.Map {
	return echo.Map{
		"items":       page.Items,
		entity:        page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"totalCount":  page.TotalCount,
		"total" + strings.ToUpper(entity[:1]) + entity[1:]: page.TotalCount,
	}
}

func message(text string) echo.Map {
	return echo.Map{"message": text}
}
