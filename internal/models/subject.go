package models

import (
	"github.com/go-playground/validator/v10"
)

// Palette lists the color tokens a subject may carry. The UI maps them
// to actual styling, the backend only stores the token.
var Palette = []string{
	"red", "orange", "yellow", "green",
	"teal", "blue", "indigo", "purple", "pink",
}

// DefaultColor is used for new subjects without an explicit color and
// as the sentinel color for dangling subject references.
const DefaultColor = "gray"

// UnknownSubjectName is displayed when an event or exam references a
// subject that no longer exists.
const UnknownSubjectName = "Unknown Subject"

type Subject struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name" validate:"required"`
	Color string `db:"color" json:"color" validate:"required"`
}

func (s *Subject) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
