package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/reuniteapp/reunite-api/models"
)

func TestValidateMissingPersonInput(t *testing.T) {
	valid := models.MissingPersonInput{
		Name:        "Jordan Reyes",
		Age:         34,
		Gender:      "Male",
		LastSeen:    "2026-08-01",
		Location:    "Riverside Park",
		Description: "Last seen near the north entrance",
		ContactInfo: "555-0142",
	}
	assert.NoError(t, models.Validate(valid))

	missingFields := models.MissingPersonInput{Name: "Jordan Reyes"}
	assert.Error(t, models.Validate(missingFields))

	badGender := valid
	badGender.Gender = "N/A"
	assert.Error(t, models.Validate(badGender))

	badAge := valid
	badAge.Age = 200
	assert.Error(t, models.Validate(badAge))
}

func TestValidateFoundPersonInputNameOptional(t *testing.T) {
	in := models.FoundPersonInput{
		FoundDate:   "2026-08-15",
		Location:    "Central Station",
		Description: "Found disoriented near platform 3",
		ContactInfo: "555-0178",
	}
	assert.NoError(t, models.Validate(in))
}

func TestValidateFeedbackInput(t *testing.T) {
	in := models.FeedbackInput{
		Subject:  "Search filters",
		Message:  "Please add age filters",
		Category: "feature",
	}
	assert.NoError(t, models.Validate(in))

	in.Category = "complaint"
	assert.Error(t, models.Validate(in))
}

func TestParseDate(t *testing.T) {
	short, err := models.ParseDate("2026-08-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), short)

	full, err := models.ParseDate("2026-08-01T15:04:05Z")
	assert.NoError(t, err)
	assert.Equal(t, 15, full.Hour())

	_, err = models.ParseDate("yesterday")
	assert.Error(t, err)
}
