package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified identity carried by a session token.
type Claims struct {
	UserID  primitive.ObjectID
	Email   string
	IsAdmin bool
	Roles   []Role
}

// HasRole reports whether the identity satisfies any of the required roles.
func (c Claims) HasRole(required ...Role) bool {
	return HasAnyRole(c.Roles, required...)
}

// IssueToken signs a session token with a fixed expiry window.
func IssueToken(userID primitive.ObjectID, email string, isAdmin bool, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID.Hex(),
		"email":   email,
		"isAdmin": isAdmin,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a signed token. Expired tokens are
// rejected outright, never extended.
func VerifyToken(raw, secret string) (Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return Claims{}, ErrInvalidToken
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	email, _ := mapClaims["email"].(string)
	isAdmin, _ := mapClaims["isAdmin"].(bool)

	return Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		Roles:   RolesFor(isAdmin),
	}, nil
}
