package models

import (
	"github.com/go-playground/validator/v10"
)

// RevisionEvent is a scheduled study session. Date and Time are kept as
// ISO strings (YYYY-MM-DD, HH:MM) so that lexical order matches
// chronological order in store queries.
type RevisionEvent struct {
	ID        int64   `db:"id" json:"id"`
	SubjectID int64   `db:"subject_id" json:"subject_id" validate:"required"`
	Date      string  `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time      string  `db:"time" json:"time" validate:"required,datetime=15:04"`
	Duration  int     `db:"duration" json:"duration" validate:"required,gt=0"`
	Completed bool    `db:"completed" json:"completed"`
	Notes     *string `db:"notes" json:"notes"`

	// Joined from subjects; nil when the reference is dangling.
	SubjectName  *string `db:"subject_name" json:"subject_name,omitempty"`
	SubjectColor *string `db:"subject_color" json:"subject_color,omitempty"`
}

func (e *RevisionEvent) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// DisplaySubject resolves the joined subject fields, falling back to
// the unknown-subject sentinel rather than failing on dangling refs.
func (e *RevisionEvent) DisplaySubject() (string, string) {
	name, color := UnknownSubjectName, DefaultColor
	if e.SubjectName != nil {
		name = *e.SubjectName
	}
	if e.SubjectColor != nil {
		color = *e.SubjectColor
	}
	return name, color
}
