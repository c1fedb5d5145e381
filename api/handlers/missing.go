package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reuniteapp/reunite-api/api"
	"github.com/reuniteapp/reunite-api/config"
	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/models"
)

// Missing exported for testing purposes
type Missing struct {
	DB       databases.MissingPersonDatabase
	Notifier *Notifier
}

// MissingPersonsHandler returns all missing person reports, newest first
func (m Missing) MissingPersonsHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := m.DB.Find(r.Context(), bson.M{}, &options.FindOptions{Sort: bson.D{{Key: "createdAt", Value: -1}}})
	if err != nil {
		config.ErrorStatus("failed to get missing person reports", http.StatusInternalServerError, w, err)
		return
	}
	// The frontend iterates the response unconditionally, so an empty result
	// must serialize as [] and not null
	if len(dbResp) == 0 {
		dbResp = []models.MissingPerson{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MissingPersonByIDHandler returns a missing person report by ID
func (m Missing) MissingPersonByIDHandler(w http.ResponseWriter, r *http.Request) {
	missingID := mux.Vars(r)["missing_id"]

	mID, err := primitive.ObjectIDFromHex(missingID)
	if err != nil {
		config.ErrorStatus("missing person report not found", http.StatusNotFound, w, err)
		return
	}

	dbResp, err := m.DB.FindOne(r.Context(), bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("missing person report not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateMissingPersonHandler creates a missing person report owned by the caller
func (m Missing) CreateMissingPersonHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	var in models.MissingPersonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := models.Validate(in); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}
	lastSeen, err := models.ParseDate(in.LastSeen)
	if err != nil {
		config.ErrorStatus("invalid lastSeen date", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	report := models.MissingPerson{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Age:         in.Age,
		Gender:      in.Gender,
		Height:      in.Height,
		Weight:      in.Weight,
		HairColor:   in.HairColor,
		EyeColor:    in.EyeColor,
		LastSeen:    primitive.NewDateTimeFromTime(lastSeen),
		Location:    in.Location,
		Description: in.Description,
		ContactInfo: in.ContactInfo,
		Image:       in.Image,
		Status:      models.MissingStatus,
		ReportedBy:  user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := m.DB.InsertOne(r.Context(), report); err != nil {
		config.ErrorStatus("failed to create missing person report", http.StatusInternalServerError, w, err)
		return
	}

	m.Notifier.Notify(r.Context(), user.ID,
		fmt.Sprintf("Your missing person report for %s has been submitted successfully.", report.Name),
		models.NotificationTypeMissingPerson,
		models.Related{Model: models.RelatedMissingPerson, ID: report.ID},
	)

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateMissingPersonHandler applies a partial update to a report owned by the caller
func (m Missing) UpdateMissingPersonHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	missingID := mux.Vars(r)["missing_id"]
	mID, err := primitive.ObjectIDFromHex(missingID)
	if err != nil {
		config.ErrorStatus("missing person report not found", http.StatusNotFound, w, err)
		return
	}

	existing, err := m.DB.FindOne(r.Context(), bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("missing person report not found", http.StatusNotFound, w, err)
		return
	}
	if existing.ReportedBy != user.ID {
		config.ErrorStatus("User not authorized to update this report", http.StatusForbidden, w, errors.New("report belongs to another user"))
		return
	}

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	// Ownership and bookkeeping fields are never client writable
	delete(updatedFields, "_id")
	delete(updatedFields, "reportedBy")
	delete(updatedFields, "createdAt")
	updatedFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if _, err := m.DB.UpdateOne(r.Context(), bson.M{"_id": mID}, bson.M{"$set": updatedFields}); err != nil {
		config.ErrorStatus("failed to update missing person report", http.StatusInternalServerError, w, err)
		return
	}

	updated, err := m.DB.FindOne(r.Context(), bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("failed to get updated report", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteMissingPersonHandler removes a report owned by the caller
func (m Missing) DeleteMissingPersonHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	missingID := mux.Vars(r)["missing_id"]
	mID, err := primitive.ObjectIDFromHex(missingID)
	if err != nil {
		config.ErrorStatus("missing person report not found", http.StatusNotFound, w, err)
		return
	}

	existing, err := m.DB.FindOne(r.Context(), bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("missing person report not found", http.StatusNotFound, w, err)
		return
	}
	if existing.ReportedBy != user.ID {
		config.ErrorStatus("User not authorized to delete this report", http.StatusForbidden, w, errors.New("report belongs to another user"))
		return
	}

	if _, err := m.DB.DeleteOne(r.Context(), bson.M{"_id": mID}); err != nil {
		config.ErrorStatus("failed to delete missing person report", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Missing person report removed",
	})
}
