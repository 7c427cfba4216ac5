package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const sessionKey = "session"

// Session is the authenticated actor of a request.
type Session struct {
	UserID primitive.ObjectID
	Email  string
}

// GetSession returns the session stored by the auth middleware.
func GetSession(c echo.Context) (*Session, bool) {
	s, ok := c.Get(sessionKey).(*Session)
	return s, ok && s != nil
}

func bearerToken(c echo.Context) (string, *echo.HTTPError) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}

	// Expecting "Bearer <token>"
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}

// ParseToken verifies an HS256 token signed with secret and returns its
// claims.
func ParseToken(tokenString, secret string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

func sessionFromToken(tokenString, secret string) (*Session, *echo.HTTPError) {
	claims, err := ParseToken(tokenString, secret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
	}
	return &Session{UserID: userID, Email: claims.Email}, nil
}

// JWTAuthMiddleware rejects requests without a valid bearer token and
// stores the Session in the context.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, herr := bearerToken(c)
			if herr != nil {
				return herr
			}
			session, herr := sessionFromToken(tokenString, secret)
			if herr != nil {
				return herr
			}
			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware attaches a Session when a valid token is
// present and otherwise lets the request through anonymously.
func OptionalJWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenString, herr := bearerToken(c); herr == nil {
				if session, herr := sessionFromToken(tokenString, secret); herr == nil {
					c.Set(sessionKey, session)
				}
			}
			return next(c)
		}
	}
}
