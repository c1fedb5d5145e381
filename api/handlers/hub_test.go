package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reuniteapp/reunite-api/api"
	"github.com/reuniteapp/reunite-api/api/handlers"
	"github.com/reuniteapp/reunite-api/models"
)

func streamToken(t *testing.T, secret []byte, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  primitive.NewObjectID().Hex(),
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func streamErrorMessage(t *testing.T, body string) string {
	t.Helper()
	var resp models.ErrorMessageResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to unmarshal error body: %v", err)
	}
	return resp.Response.Message
}

func TestNotificationStream_StreamHandlerNoToken(t *testing.T) {
	s := handlers.NotificationStream{Hub: handlers.NewHub(), Auth: api.Auth{Secret: []byte("test-secret")}}

	req, err := http.NewRequest("GET", "/api/notifications/stream", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.StreamHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assert.Equal(t, "Not authorized, no token provided", streamErrorMessage(t, rr.Body.String()))
}

func TestNotificationStream_StreamHandlerExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	s := handlers.NotificationStream{Hub: handlers.NewHub(), Auth: api.Auth{Secret: secret}}

	req, err := http.NewRequest("GET", "/api/notifications/stream?token="+streamToken(t, secret, time.Now().Add(-time.Hour)), nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.StreamHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assert.Equal(t, "Token has expired", streamErrorMessage(t, rr.Body.String()))
}

func TestNotificationStream_StreamHandlerMalformedToken(t *testing.T) {
	s := handlers.NotificationStream{Hub: handlers.NewHub(), Auth: api.Auth{Secret: []byte("test-secret")}}

	req, err := http.NewRequest("GET", "/api/notifications/stream?token=not-a-jwt", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.StreamHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}
	assert.Equal(t, "Invalid token format or signature", streamErrorMessage(t, rr.Body.String()))
}
