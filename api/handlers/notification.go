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

// Notification exported for testing purposes
type Notification struct {
	DB databases.NotificationDatabase
}

// NotificationsHandler returns the caller's notifications, newest first
func (n Notification) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	dbResp, err := n.DB.Find(r.Context(), bson.M{"userId": user.ID}, &options.FindOptions{Sort: bson.D{{Key: "createdAt", Value: -1}}})
	if err != nil {
		config.ErrorStatus("failed to get notifications", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Notification{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkNotificationReadHandler marks one of the caller's notifications as read
func (n Notification) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	notificationID := mux.Vars(r)["notification_id"]
	nID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		config.ErrorStatus("notification not found", http.StatusNotFound, w, err)
		return
	}

	existing, err := n.DB.FindOne(r.Context(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("notification not found", http.StatusNotFound, w, err)
		return
	}
	if existing.UserID != user.ID {
		config.ErrorStatus("User not authorized to update this notification", http.StatusForbidden, w, errors.New("notification belongs to another user"))
		return
	}

	update := bson.M{"$set": bson.M{
		"read":      true,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}
	if _, err := n.DB.UpdateOne(r.Context(), bson.M{"_id": nID}, update); err != nil {
		config.ErrorStatus("failed to update notification", http.StatusInternalServerError, w, err)
		return
	}

	existing.Read = true
	b, err := json.Marshal(existing)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkAllNotificationsReadHandler marks every unread notification of the caller as read
func (n Notification) MarkAllNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized, no token provided", http.StatusUnauthorized, w, errors.New("no authenticated user in request context"))
		return
	}

	filter := bson.M{"userId": user.ID, "read": false}
	update := bson.M{"$set": bson.M{
		"read":      true,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}
	if _, err := n.DB.UpdateMany(r.Context(), filter, update); err != nil {
		config.ErrorStatus("failed to update notifications", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "All notifications marked as read",
	})
}
