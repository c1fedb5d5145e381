package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reuniteapp/reunite-api/config"
	"github.com/reuniteapp/reunite-api/models"
)

// Sentinel errors for the auth gate. The middleware maps these to the exact
// 401 messages the client matches on.
var (
	ErrNoToken      = errors.New("no bearer token in authorization header")
	ErrInvalidToken = errors.New("token signature or format is invalid")
	ErrUserNotFound = errors.New("token subject does not exist")
)

// UserLookup resolves a token subject to a stored user
type UserLookup func(ctx context.Context, id primitive.ObjectID) (*models.User, error)

// Auth verifies bearer tokens and attaches the caller to the request context
type Auth struct {
	Secret []byte
	Lookup UserLookup
}

// VerifyToken checks the signature and expiry of a token and returns the
// user id carried in its "id" claim
func VerifyToken(tokenString string, secret []byte) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return primitive.NilObjectID, err
		}
		return primitive.NilObjectID, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}
	sub, _ := claims["id"].(string)
	id, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}

// Authenticate verifies a token and resolves its subject through the lookup.
// It holds no state besides its inputs, so callers outside the HTTP stack
// (the websocket stream) can use it too.
func Authenticate(ctx context.Context, tokenString string, secret []byte, lookup UserLookup) (*models.User, error) {
	id, err := VerifyToken(tokenString, secret)
	if err != nil {
		return nil, err
	}
	user, err := lookup(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// WriteAuthError maps an authentication failure to its 401 response. The
// messages are load bearing, the client matches on them.
func WriteAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoToken):
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		config.ErrorStatus("Token has expired", http.StatusUnauthorized, w, err)
	case errors.Is(err, ErrUserNotFound):
		config.ErrorStatus("User not found", http.StatusUnauthorized, w, err)
	default:
		config.ErrorStatus("Invalid token format or signature", http.StatusUnauthorized, w, err)
	}
}

// Middleware gates a handler behind bearer authentication
func (a Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			WriteAuthError(w, ErrNoToken)
			return
		}

		user, err := Authenticate(r.Context(), strings.TrimPrefix(header, "Bearer "), a.Secret, a.Lookup)
		if err != nil {
			WriteAuthError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}
