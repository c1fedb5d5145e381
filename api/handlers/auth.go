package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/reuniteapp/reunite-api/api"
	"github.com/reuniteapp/reunite-api/config"
	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/models"
)

// tokenTTL is how long an issued token stays valid
const tokenTTL = 30 * 24 * time.Hour

// Auth exported for testing purposes
type Auth struct {
	DB     databases.UserDatabase
	Secret []byte
}

// RegisterHandler creates a user account and returns a signed token
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := models.Validate(in); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	if _, err := a.DB.FindOne(r.Context(), bson.M{"email": in.Email}); err == nil {
		config.ErrorStatus("email is already registered", http.StatusConflict, w, errors.New("duplicate email"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := a.DB.InsertOne(r.Context(), user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("user registered", "userId", user.ID.Hex())

	b, err := json.Marshal(models.AuthResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// LoginHandler verifies credentials and returns a signed token
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := models.Validate(in); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	user, err := a.DB.FindOne(r.Context(), bson.M{"email": in.Email})
	if err != nil {
		config.ErrorStatus("invalid email or password", http.StatusUnauthorized, w, errors.New("unknown email"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		config.ErrorStatus("invalid email or password", http.StatusUnauthorized, w, errors.New("password mismatch"))
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.AuthResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MeHandler returns the authenticated caller's profile
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (a Auth) issueToken(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	return token.SignedString(a.Secret)
}
