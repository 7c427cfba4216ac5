package services

import "go.mongodb.org/mongo-driver/bson/primitive"

func containsID(set []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// removeID drops every occurrence of id. The result is never nil.
func removeID(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// toggleID removes id if present, appends it otherwise, and reports whether
// id is in the resulting set.
func toggleID(set []primitive.ObjectID, id primitive.ObjectID) ([]primitive.ObjectID, bool) {
	if containsID(set, id) {
		return removeID(set, id), false
	}
	return append(removeID(set, id), id), true
}

// uniqueIDs keeps the first occurrence of each id, preserving order.
func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}
