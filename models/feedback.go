package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback represents a feedback submission document
type Feedback struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Subject   string             `json:"subject" bson:"subject"`
	Message   string             `json:"message" bson:"message"`
	Category  string             `json:"category" bson:"category"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// FeedbackInput is the client payload to submit feedback
type FeedbackInput struct {
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Category string `json:"category" validate:"required,oneof=bug feature improvement other"`
}
