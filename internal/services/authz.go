package services

import (
	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owned is implemented by entities with a single owning user: a Post's
// author, a Community's admin, a Resource's author.
type Owned interface {
	OwnerID() primitive.ObjectID
}

// Authorize allows a mutation only when actor owns entity. It guards update
// and delete; likes, comments, joins and saves are open to every
// authenticated user and never call it.
func Authorize(actorID primitive.ObjectID, entity Owned, kind string) error {
	if actorID.IsZero() || entity.OwnerID() != actorID {
		return apperr.Forbidden("Not authorized to modify this %s", kind)
	}
	return nil
}
