package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reuniteapp/reunite-api/api"
	"github.com/reuniteapp/reunite-api/config"
	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/models"
)

// Feedback exported for testing purposes
type Feedback struct {
	DB       databases.FeedbackDatabase
	Notifier *Notifier
}

// CreateFeedbackHandler records feedback from the caller
func (f Feedback) CreateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	var in models.FeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := models.Validate(in); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	feedback := models.Feedback{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Subject:   in.Subject,
		Message:   in.Message,
		Category:  in.Category,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}

	if _, err := f.DB.InsertOne(r.Context(), feedback); err != nil {
		config.ErrorStatus("failed to submit feedback", http.StatusInternalServerError, w, err)
		return
	}

	f.Notifier.Notify(r.Context(), user.ID,
		"Thank you for your feedback. We'll review it shortly.",
		models.NotificationTypeFeedback,
		models.Related{Model: models.RelatedFeedback, ID: feedback.ID},
	)

	b, err := json.Marshal(feedback)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// FeedbackByUserHandler returns the caller's feedback, newest first
func (f Feedback) FeedbackByUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	dbResp, err := f.DB.Find(r.Context(), bson.M{"userId": user.ID}, &options.FindOptions{Sort: bson.D{{Key: "createdAt", Value: -1}}})
	if err != nil {
		config.ErrorStatus("failed to get feedback", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Feedback{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
