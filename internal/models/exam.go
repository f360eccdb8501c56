package models

import (
	"github.com/go-playground/validator/v10"
)

// Exam mirrors RevisionEvent but carries its own name and no completion
// flag. DaysRemaining is derived at read time and never persisted.
type Exam struct {
	ID        int64  `db:"id" json:"id"`
	SubjectID int64  `db:"subject_id" json:"subject_id" validate:"required"`
	Name      string `db:"name" json:"name" validate:"required"`
	Date      string `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `db:"time" json:"time" validate:"required,datetime=15:04"`
	Duration  int    `db:"duration" json:"duration" validate:"required,gt=0"`

	SubjectName  *string `db:"subject_name" json:"subject_name,omitempty"`
	SubjectColor *string `db:"subject_color" json:"subject_color,omitempty"`

	DaysRemaining int `db:"-" json:"days_remaining"`
}

func (x *Exam) Validate() error {
	validate := validator.New()
	return validate.Struct(x)
}

func (x *Exam) DisplaySubject() (string, string) {
	name, color := UnknownSubjectName, DefaultColor
	if x.SubjectName != nil {
		name = *x.SubjectName
	}
	if x.SubjectColor != nil {
		color = *x.SubjectColor
	}
	return name, color
}
