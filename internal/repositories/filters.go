package repositories

import (
	"regexp"
	"strings"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// searchRegex builds a case-insensitive substring match. User input is
// quoted so it is never interpreted as a pattern.
func searchRegex(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

// anyFieldMatches ORs a substring match over fields.
func anyFieldMatches(search string, fields ...string) bson.M {
	re := searchRegex(search)
	clauses := make(bson.A, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: re})
	}
	return bson.M{"$or": clauses}
}

func buildPostFilter(f models.PostFilter) bson.M {
	filter := bson.M{}
	var and bson.A

	if f.PublicOnly {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"community": bson.M{"$exists": false}},
			bson.M{"community": nil},
		}})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		and = append(and, anyFieldMatches(s, "title", "content"))
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.AuthorID != nil {
		filter["author"] = *f.AuthorID
	}
	if f.CommunityID != nil {
		filter["community"] = *f.CommunityID
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

func buildCommunityFilter(f models.CommunityFilter) bson.M {
	filter := bson.M{}
	if s := strings.TrimSpace(f.Search); s != "" {
		filter["$or"] = anyFieldMatches(s, "name", "description")["$or"]
	}
	if f.ViewerID == nil {
		return filter
	}
	viewer := *f.ViewerID
	switch f.Relation {
	case models.RelationCreated:
		filter["admin"] = viewer
	case models.RelationSubscribed:
		filter["members"] = viewer
	case models.RelationRecommended:
		filter["admin"] = bson.M{"$ne": viewer}
		filter["members"] = bson.M{"$ne": viewer}
	}
	return filter
}

func buildResourceFilter(f models.ResourceFilter) bson.M {
	filter := bson.M{}
	if s := strings.TrimSpace(f.Search); s != "" {
		filter["$or"] = anyFieldMatches(s, "title", "description", "type")["$or"]
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.AuthorID != nil {
		filter["author"] = *f.AuthorID
	}
	if f.SavedByID != nil {
		filter["savedBy"] = *f.SavedByID
	}
	return filter
}

// directConversationFilter matches the non-group conversation whose member
// set is exactly {a, b}, independent of order.
func directConversationFilter(a, b primitive.ObjectID) bson.M {
	return bson.M{
		"isGroup": false,
		"members": bson.M{
			"$all":  bson.A{a, b},
			"$size": 2,
		},
	}
}
