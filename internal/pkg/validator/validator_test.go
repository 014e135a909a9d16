package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string   `json:"name" validate:"required,min=2,max=10"`
	Email  string   `json:"contactEmail" validate:"required,email"`
	Status string   `json:"status" validate:"omitempty,oneof=LEAD ACTIVE"`
	Color  string   `json:"color" validate:"omitempty,hexcolor6"`
	Tags   []string `json:"tags" validate:"dive,min=1"`
}

func TestValidate_OK(t *testing.T) {
	assert.Nil(t, Validate(&sample{Name: "Acme", Email: "a@acme.com", Color: "#AABBCC"}))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	issues := Validate(&sample{Name: "A", Email: "nope", Status: "GONE", Color: "red", Tags: []string{""}})

	byField := map[string]string{}
	for _, i := range issues {
		byField[i.Field] = i.Message
	}
	assert.Equal(t, "must be at least 2 characters", byField["name"])
	assert.Equal(t, "must be a valid email", byField["contactEmail"])
	assert.Equal(t, "must be one of: LEAD, ACTIVE", byField["status"])
	assert.Equal(t, "must be a hex color like #1A2B3C", byField["color"])
	assert.Contains(t, byField, "tags[0]")
}
