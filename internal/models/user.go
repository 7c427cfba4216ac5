package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a Scriblyn account. Followers and Following are kept in the schema
// but no operation mutates them.
type User struct {
	ID             primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password"` // bcrypt hash
	Bio            string               `json:"bio" bson:"bio"`
	ProfilePicture string               `json:"profilePicture" bson:"profilePicture"`
	FirebaseUID    string               `json:"-" bson:"firebaseUid,omitempty"`
	Followers      []primitive.ObjectID `json:"followers" bson:"followers"`
	Following      []primitive.ObjectID `json:"following" bson:"following"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserCompact is the projection substituted for a user reference when an
// entity is populated.
type UserCompact struct {
	ID             primitive.ObjectID `json:"_id"`
	Username       string             `json:"username"`
	ProfilePicture string             `json:"profilePicture,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username       string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Bio            string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture string `json:"profilePicture,omitempty" validate:"omitempty,url"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// AuthResponse is returned by signup and every login flavour.
type AuthResponse struct {
	Token    string             `json:"token"`
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
