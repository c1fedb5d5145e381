package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissingStatus is the lifecycle status of a missing person report
const MissingStatus = "Missing"

// MissingPerson represents a missing person report document
type MissingPerson struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Age         int                `json:"age,omitempty" bson:"age,omitempty"`
	Gender      string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Height      string             `json:"height,omitempty" bson:"height,omitempty"`
	Weight      string             `json:"weight,omitempty" bson:"weight,omitempty"`
	HairColor   string             `json:"hairColor,omitempty" bson:"hairColor,omitempty"`
	EyeColor    string             `json:"eyeColor,omitempty" bson:"eyeColor,omitempty"`
	LastSeen    primitive.DateTime `json:"lastSeen" bson:"lastSeen"`
	Location    string             `json:"location" bson:"location"`
	Description string             `json:"description" bson:"description"`
	ContactInfo string             `json:"contactInfo" bson:"contactInfo"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Status      string             `json:"status" bson:"status"`
	ReportedBy  primitive.ObjectID `json:"reportedBy" bson:"reportedBy"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// MissingPersonInput is the client payload to create a missing person report
type MissingPersonInput struct {
	Name        string `json:"name" validate:"required"`
	Age         int    `json:"age" validate:"omitempty,gte=0,lte=130"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female Other Unknown"`
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	HairColor   string `json:"hairColor"`
	EyeColor    string `json:"eyeColor"`
	LastSeen    string `json:"lastSeen" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
	ContactInfo string `json:"contactInfo" validate:"required"`
	Image       string `json:"image" validate:"omitempty,url"`
}
