package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType categorizes a notification for the client
type NotificationType string

// Notification types surfaced to the client
const (
	NotificationTypeMissingPerson NotificationType = "Missing Person"
	NotificationTypeFoundPerson   NotificationType = "Found Person"
	NotificationTypeMatch         NotificationType = "Match"
	NotificationTypeSystem        NotificationType = "System"
	NotificationTypeFeedback      NotificationType = "Feedback"
)

// RelatedModel names the collection a notification points back to
type RelatedModel string

// Models a notification may reference
const (
	RelatedMissingPerson RelatedModel = "MissingPerson"
	RelatedFoundPerson   RelatedModel = "FoundPerson"
	RelatedFeedback      RelatedModel = "Feedback"
)

// Related ties a notification to the record that caused it. The model and id
// travel together so a reference can never be half set.
type Related struct {
	Model RelatedModel
	ID    primitive.ObjectID
}

// Notification represents an in-app notification document
type Notification struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Message   string             `json:"message" bson:"message"`
	Type      NotificationType   `json:"type" bson:"type"`
	Read      bool               `json:"read" bson:"read"`
	RelatedID primitive.ObjectID `json:"relatedId,omitempty" bson:"relatedId,omitempty"`
	OnModel   RelatedModel       `json:"onModel,omitempty" bson:"onModel,omitempty"`
	SourceID  primitive.ObjectID `json:"sourceId,omitempty" bson:"sourceId,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
