package config_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reuniteapp/reunite-api/config"
	"github.com/reuniteapp/reunite-api/models"
)

func TestNew(t *testing.T) {
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "reunite-test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")

	conf := config.New()

	assert.Equal(t, "mongodb://localhost:27017", conf.URL)
	assert.Equal(t, "reunite-test", conf.DatabaseName)
	assert.Equal(t, "test-secret", conf.JWTSecret)
	assert.Equal(t, "8080", conf.Port)
}

func TestNewPortOverride(t *testing.T) {
	t.Setenv("PORT", "9090")

	conf := config.New()

	assert.Equal(t, "9090", conf.Port)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()

	config.ErrorStatus("failed to get notifications", 404, rr, errors.New("mongo: no documents in result"))

	assert.Equal(t, 404, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to get notifications", Error: "mongo: no documents in result"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String())
}
