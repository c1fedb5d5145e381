package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the validate tags on an input struct. The returned error is
// a validator.ValidationErrors listing every failed field.
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// Date layouts accepted from clients. HTML date inputs send the short form.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a client supplied date string
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
