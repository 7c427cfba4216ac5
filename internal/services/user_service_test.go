package services

import (
	"context"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	u := env.signup(t, "alice")
	assert.NotEqual(t, "secret123", u.Password)

	_, err := env.users.Signup(env.ctx, &models.SignupRequest{Username: "alice", Email: "other@example.com", Password: "secret123"})
	requireKind(t, err, apperr.KindConflict)
	_, err = env.users.Signup(env.ctx, &models.SignupRequest{Username: "other", Email: "ALICE@example.com", Password: "secret123"})
	requireKind(t, err, apperr.KindConflict)

	logged, err := env.users.Login(env.ctx, &models.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = env.users.Login(env.ctx, &models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	requireKind(t, err, apperr.KindUnauthorized)
	_, err = env.users.Login(env.ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	requireKind(t, err, apperr.KindUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	u := env.signup(t, "alice")
	env.signup(t, "bob")

	updated, err := env.users.UpdateProfile(env.ctx, u.ID, &models.UpdateProfileRequest{Bio: "writer"})
	require.NoError(t, err)
	assert.Equal(t, "writer", updated.Bio)
	assert.Equal(t, "alice", updated.Username)

	_, err = env.users.UpdateProfile(env.ctx, u.ID, &models.UpdateProfileRequest{Username: "bob"})
	requireKind(t, err, apperr.KindConflict)

	renamed, err := env.users.UpdateProfile(env.ctx, u.ID, &models.UpdateProfileRequest{Username: "alicia"})
	require.NoError(t, err)
	assert.Equal(t, "alicia", renamed.Username)
	assert.Equal(t, "writer", renamed.Bio)

	users, err := env.users.ListUsers(env.ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alicia", users[0].Username)
}

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid token")
}

func TestFirebaseLogin(t *testing.T) {
	env := newTestEnv(t)
	existing := env.signup(t, "alice")
	verifier := &fakeVerifier{tokens: map[string]*auth.Token{
		"alice-token": {UID: "uid-alice-1", Claims: map[string]interface{}{"email": "alice@example.com"}},
		"new-token":   {UID: "uid-newbie-1", Claims: map[string]interface{}{"email": "newbie@example.com", "name": "New Bie"}},
	}}
	users := NewUserService(env.store.Users, verifier)
	assert.True(t, users.FederatedLoginEnabled())

	linked, err := users.FirebaseLogin(env.ctx, "alice-token")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
	assert.Equal(t, "uid-alice-1", linked.FirebaseUID)

	again, err := users.FirebaseLogin(env.ctx, "alice-token")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.ID)

	created, err := users.FirebaseLogin(env.ctx, "new-token")
	require.NoError(t, err)
	assert.Equal(t, "NewBie", created.Username)
	assert.Equal(t, "newbie@example.com", created.Email)

	_, err = users.FirebaseLogin(env.ctx, "forged")
	requireKind(t, err, apperr.KindUnauthorized)

	_, err = env.users.FirebaseLogin(env.ctx, "alice-token")
	assert.ErrorIs(t, err, ErrFederatedLoginDisabled)
}

func TestUsernameFrom(t *testing.T) {
	assert.Equal(t, "AdaLovelace", usernameFrom("Ada Lovelace", "ada@example.com"))
	assert.Equal(t, "ada", usernameFrom("", "ada@example.com"))
}
