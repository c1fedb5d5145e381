package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reuniteapp/reunite-api/api/handlers"
	"github.com/reuniteapp/reunite-api/config"
)

func TestApp_HealthCheckHandler(t *testing.T) {
	a := handlers.App{Config: config.Config{JWTSecret: "test-secret"}}
	router := a.New()

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestApp_GatedRoutesRejectMissingToken(t *testing.T) {
	a := handlers.App{Config: config.Config{JWTSecret: "test-secret"}}
	router := a.New()

	gated := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/missing"},
		{http.MethodPut, "/api/missing/608cafe595eb9dc05379b7f4"},
		{http.MethodDelete, "/api/missing/608cafe595eb9dc05379b7f4"},
		{http.MethodPost, "/api/found"},
		{http.MethodPost, "/api/feedback"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodPut, "/api/notifications/read-all"},
		{http.MethodPut, "/api/notifications/608cafe595eb9dc05379b7f4/read"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/uploads"},
	}

	for _, route := range gated {
		req, err := http.NewRequest(route.method, route.path, nil)
		if err != nil {
			t.Fatal(err)
		}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusUnauthorized {
			t.Errorf("%s %s returned wrong status code: got %v want %v", route.method, route.path, status, http.StatusUnauthorized)
		}
	}
}
