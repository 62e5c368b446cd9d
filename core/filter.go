package core

import (
	"strconv"

	"github.com/pkg/errors"
)

// Filter field types, as rendered by a filter panel.
const (
	FieldText     = "text"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
)

var errUnknownFilter = errors.New("unknown filter")

type (
	// FilterField declares one input of a filter panel.
	FilterField struct {
		Key     string         `json:"key"`
		Label   string         `json:"label"`
		Type    string         `json:"type"`
		Options []SelectOption `json:"options,omitempty"`
	}

	SelectOption struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}

	// Filter is a closed set of keyed filter values, settable from strings (query params, console input).
	Filter interface {
		Set(key, value string) error
	}
)

// Options builds select options whose labels are the values themselves.
func Options(values ...string) []SelectOption {
	opts := make([]SelectOption, len(values))
	for i, v := range values {
		opts[i] = SelectOption{Value: v, Label: v}
	}
	return opts
}

func NewUnknownFilterError(key string) error {
	return NewValidationError(nil, FieldError{Field: key, Error: errUnknownFilter.Error()})
}

// ParseFilterBool parses a checkbox value; an empty string means false.
func ParseFilterBool(key, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, NewValidationError(nil, FieldError{Field: key, Error: "must be true or false"})
	}
	return b, nil
}

// ParseFilterInt parses a numeric filter value; an empty string means 0 (no filter).
func ParseFilterInt(key, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewValidationError(nil, FieldError{Field: key, Error: "must be a number"})
	}
	return n, nil
}

// OneOf checks value against allowed; an empty value is always accepted (no filter).
func OneOf(key, value string, allowed []string) (string, error) {
	if value == "" {
		return "", nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", NewValidationError(nil, FieldError{Field: key, Error: "invalid choice"})
}
