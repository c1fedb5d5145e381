package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reuniteapp/reunite-api/api"
	"github.com/reuniteapp/reunite-api/models"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, userID primitive.ObjectID, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID.Hex(),
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func assertErrorBody(t *testing.T, body string, message string) {
	t.Helper()
	var resp models.ErrorMessageResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to unmarshal error body: %v", err)
	}
	assert.Equal(t, message, resp.Response.Message)
}

func TestAuth_MiddlewareNoToken(t *testing.T) {
	a := api.Auth{Secret: testSecret}
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assertErrorBody(t, rr.Body.String(), "Not authorized, no token provided")
}

func TestAuth_MiddlewareMalformedToken(t *testing.T) {
	a := api.Auth{Secret: testSecret}
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assertErrorBody(t, rr.Body.String(), "Invalid token format or signature")
}

func TestAuth_MiddlewareWrongSecret(t *testing.T) {
	a := api.Auth{Secret: testSecret}
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+signed)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assertErrorBody(t, rr.Body.String(), "Invalid token format or signature")
}

func TestAuth_MiddlewareExpiredToken(t *testing.T) {
	a := api.Auth{Secret: testSecret}
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	signed := signToken(t, primitive.NewObjectID(), time.Now().Add(-time.Hour))

	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+signed)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assertErrorBody(t, rr.Body.String(), "Token has expired")
}

func TestAuth_MiddlewareUnknownUser(t *testing.T) {
	a := api.Auth{
		Secret: testSecret,
		Lookup: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, errors.New("mongo: no documents in result")
		},
	}
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	signed := signToken(t, primitive.NewObjectID(), time.Now().Add(time.Hour))

	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+signed)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assertErrorBody(t, rr.Body.String(), "User not found")
}

func TestAuth_MiddlewareSuccessAttachesUser(t *testing.T) {
	userID := primitive.NewObjectID()
	a := api.Auth{
		Secret: testSecret,
		Lookup: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			assert.Equal(t, userID, id)
			return &models.User{ID: id, Name: "Dana", Email: "dana@example.com"}, nil
		},
	}

	nextCalled := false
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		user, ok := api.UserFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, user.ID)
		w.WriteHeader(http.StatusOK)
	}))

	signed := signToken(t, userID, time.Now().Add(time.Hour))

	req, err := http.NewRequest("GET", "/api/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+signed)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	assert.True(t, nextCalled)
}
