package handlers

import (
	"encoding/json"
	"errors"
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

// Found exported for testing purposes
type Found struct {
	DB       databases.FoundPersonDatabase
	Notifier *Notifier
}

// FoundPersonsHandler returns all found person reports, newest first
func (f Found) FoundPersonsHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := f.DB.Find(r.Context(), bson.M{}, &options.FindOptions{Sort: bson.D{{Key: "createdAt", Value: -1}}})
	if err != nil {
		config.ErrorStatus("failed to get found person reports", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.FoundPerson{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// FoundPersonByIDHandler returns a found person report by ID
func (f Found) FoundPersonByIDHandler(w http.ResponseWriter, r *http.Request) {
	foundID := mux.Vars(r)["found_id"]

	fID, err := primitive.ObjectIDFromHex(foundID)
	if err != nil {
		config.ErrorStatus("found person report not found", http.StatusNotFound, w, err)
		return
	}

	dbResp, err := f.DB.FindOne(r.Context(), bson.M{"_id": fID})
	if err != nil {
		config.ErrorStatus("found person report not found", http.StatusNotFound, w, err)
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

// CreateFoundPersonHandler creates a found person report owned by the caller
func (f Found) CreateFoundPersonHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	var in models.FoundPersonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := models.Validate(in); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}
	foundDate, err := models.ParseDate(in.FoundDate)
	if err != nil {
		config.ErrorStatus("invalid foundDate date", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	report := models.FoundPerson{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Age:         in.Age,
		Gender:      in.Gender,
		Height:      in.Height,
		Weight:      in.Weight,
		HairColor:   in.HairColor,
		EyeColor:    in.EyeColor,
		FoundDate:   primitive.NewDateTimeFromTime(foundDate),
		Location:    in.Location,
		Description: in.Description,
		ContactInfo: in.ContactInfo,
		Image:       in.Image,
		Status:      models.FoundStatusActive,
		ReportedBy:  user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.DB.InsertOne(r.Context(), report); err != nil {
		config.ErrorStatus("failed to create found person report", http.StatusInternalServerError, w, err)
		return
	}

	f.Notifier.Notify(r.Context(), user.ID,
		"Your found person report has been submitted successfully.",
		models.NotificationTypeFoundPerson,
		models.Related{Model: models.RelatedFoundPerson, ID: report.ID},
	)

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateFoundPersonHandler applies a partial update to a report owned by the caller
func (f Found) UpdateFoundPersonHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	foundID := mux.Vars(r)["found_id"]
	fID, err := primitive.ObjectIDFromHex(foundID)
	if err != nil {
		config.ErrorStatus("found person report not found", http.StatusNotFound, w, err)
		return
	}

	existing, err := f.DB.FindOne(r.Context(), bson.M{"_id": fID})
	if err != nil {
		config.ErrorStatus("found person report not found", http.StatusNotFound, w, err)
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

	delete(updatedFields, "_id")
	delete(updatedFields, "reportedBy")
	delete(updatedFields, "createdAt")
	updatedFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if _, err := f.DB.UpdateOne(r.Context(), bson.M{"_id": fID}, bson.M{"$set": updatedFields}); err != nil {
		config.ErrorStatus("failed to update found person report", http.StatusInternalServerError, w, err)
		return
	}

	updated, err := f.DB.FindOne(r.Context(), bson.M{"_id": fID})
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

// DeleteFoundPersonHandler removes a report owned by the caller
func (f Found) DeleteFoundPersonHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	foundID := mux.Vars(r)["found_id"]
	fID, err := primitive.ObjectIDFromHex(foundID)
	if err != nil {
		config.ErrorStatus("found person report not found", http.StatusNotFound, w, err)
		return
	}

	existing, err := f.DB.FindOne(r.Context(), bson.M{"_id": fID})
	if err != nil {
		config.ErrorStatus("found person report not found", http.StatusNotFound, w, err)
		return
	}
	if existing.ReportedBy != user.ID {
		config.ErrorStatus("User not authorized to delete this report", http.StatusForbidden, w, errors.New("report belongs to another user"))
		return
	}

	if _, err := f.DB.DeleteOne(r.Context(), bson.M{"_id": fID}); err != nil {
		config.ErrorStatus("failed to delete found person report", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Found person report removed",
	})
}
