package services

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// IDTokenVerifier is satisfied by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ErrFederatedLoginDisabled is returned by FirebaseLogin when no verifier is
// configured.
var ErrFederatedLoginDisabled = errors.New("federated login is not configured")

type UserService struct {
	users    repositories.UserRepository
	verifier IDTokenVerifier
}

// NewUserService creates a UserService. verifier may be nil.
func NewUserService(users repositories.UserRepository, verifier IDTokenVerifier) *UserService {
	return &UserService{users: users, verifier: verifier}
}

func (s *UserService) FederatedLoginEnabled() bool { return s.verifier != nil }

func (s *UserService) ensureAvailable(ctx context.Context, self primitive.ObjectID, email, username string) error {
	if email != "" {
		if u, err := s.users.GetUserByEmail(ctx, email); err == nil && u.ID != self {
			return apperr.Conflict("User with this email already exists")
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return storeErr(err, "User", "check email")
		}
	}
	if username != "" {
		if u, err := s.users.GetUserByUsername(ctx, username); err == nil && u.ID != self {
			return apperr.Conflict("Username is already taken")
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return storeErr(err, "User", "check username")
		}
	}
	return nil
}

// Signup registers a local account with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if err := s.ensureAvailable(ctx, primitive.NilObjectID, email, username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to hash password")
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, storeErr(err, "User", "create user")
	}
	return user, nil
}

// Login checks email and password. Unknown email and wrong password produce
// the same error.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, storeErr(err, "User", "load user")
	}
	if user.Password == "" {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	return user, nil
}

func (s *UserService) Me(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User", "load user")
	}
	return user, nil
}

// UpdateProfile changes only the fields present in req.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Me(ctx, id)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	if username != "" && username != user.Username {
		if err := s.ensureAvailable(ctx, user.ID, "", username); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("Username is already taken")
		}
		return nil, storeErr(err, "User", "update profile")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, storeErr(err, "User", "list users")
	}
	return users, nil
}

// FirebaseLogin exchanges a verified Firebase ID token for the matching
// local account: by Firebase UID first, then by email, creating the account
// when neither exists.
func (s *UserService) FirebaseLogin(ctx context.Context, idToken string) (*models.User, error) {
	if s.verifier == nil {
		return nil, ErrFederatedLoginDisabled
	}
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	name, _ := token.Claims["name"].(string)

	user, err := s.users.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeErr(err, "User", "load user")
	}

	if email == "" {
		return nil, apperr.Validation("Firebase account has no email address")
	}
	user, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		user.FirebaseUID = token.UID
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return nil, storeErr(err, "User", "link Firebase account")
		}
		return user, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, storeErr(err, "User", "load user")
	}

	username, err := s.freeUsername(ctx, usernameFrom(name, email), token.UID)
	if err != nil {
		return nil, err
	}
	user = &models.User{Username: username, Email: email, FirebaseUID: token.UID}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, storeErr(err, "User", "create user")
	}
	return user, nil
}

// usernameFrom derives a username from a display name, falling back to the
// local part of the email address.
func usernameFrom(displayName, email string) string {
	base := strings.Join(strings.Fields(displayName), "")
	if len(base) < 3 {
		base = strings.SplitN(email, "@", 2)[0]
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return base
}

func (s *UserService) freeUsername(ctx context.Context, base, uid string) (string, error) {
	candidates := []string{base}
	if len(uid) >= 6 {
		candidates = append(candidates, base+"_"+uid[:6])
	}
	candidates = append(candidates, base+"_"+primitive.NewObjectID().Hex()[18:])
	for _, c := range candidates {
		_, err := s.users.GetUserByUsername(ctx, c)
		if errors.Is(err, repositories.ErrNotFound) {
			return c, nil
		}
		if err != nil {
			return "", storeErr(err, "User", "check username")
		}
	}
	return "", apperr.Conflict("Could not allocate a username")
}
