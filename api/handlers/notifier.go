package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/models"
)

// Notifier records notifications and pushes them to connected clients.
// A failed insert never fails the operation that triggered it.
type Notifier struct {
	DB  databases.NotificationDatabase
	Hub *Hub
}

// Notify stores a notification for userID and pushes it over the hub
func (n *Notifier) Notify(ctx context.Context, userID primitive.ObjectID, message string, ntype models.NotificationType, related models.Related) {
	if n == nil || n.DB == nil {
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Message:   message,
		Type:      ntype,
		Read:      false,
		RelatedID: related.ID,
		OnModel:   related.Model,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := n.DB.InsertOne(ctx, notification); err != nil {
		zap.S().Errorw("failed to create notification",
			"userId", userID.Hex(),
			"type", ntype,
			"error", err,
		)
		return
	}

	if n.Hub != nil {
		n.Hub.Send(userID.Hex(), notification)
	}
}
