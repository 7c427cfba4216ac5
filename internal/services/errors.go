package services

import (
	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/pkg/errors"
)

// storeErr maps a repository failure onto the error taxonomy. entity names
// the thing being looked up ("Post"), op describes the attempted action.
func storeErr(err error, entity, op string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperr.NotFound("%s not found", entity)
	case errors.Is(err, repositories.ErrDuplicate):
		return apperr.Conflict("%s already exists", entity)
	default:
		return apperr.Internal(err, "Failed to "+op)
	}
}
