package validators

import (
	"testing"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateUsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&models.SignupRequest{Username: "ab", Email: "a@b.co", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "username must be at least 3 characters", apperr.MessageOf(err))
}

func TestValidateRequired(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&models.CreatePostRequest{Content: "body"})
	require.Error(t, err)
	assert.Equal(t, "title is required", apperr.MessageOf(err))

	assert.NoError(t, v.Validate(&models.CreatePostRequest{Title: "t", Content: "c"}))
}

func TestValidateObjectID(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", CommunityID: "nope"})
	require.Error(t, err)
	assert.Equal(t, "communityId must be a valid id", apperr.MessageOf(err))

	ok := &models.CreatePostRequest{Title: "t", Content: "c", CommunityID: primitive.NewObjectID().Hex()}
	assert.NoError(t, v.Validate(ok))
}

func TestValidateResourceType(t *testing.T) {
	v := NewValidator()
	req := &models.CreateResourceRequest{Title: "t", Description: "d", Type: "Video", Link: "https://go.dev"}
	err := v.Validate(req)
	require.Error(t, err)
	assert.Contains(t, apperr.MessageOf(err), "type must be one of")

	req.Type = "Tutorial"
	assert.NoError(t, v.Validate(req))
}

func TestValidateGroupMembers(t *testing.T) {
	v := NewValidator()
	req := &models.CreateGroupRequest{Name: "g", Members: []string{"bad"}}
	require.Error(t, v.Validate(req))

	req.Members = []string{primitive.NewObjectID().Hex()}
	assert.NoError(t, v.Validate(req))
}
