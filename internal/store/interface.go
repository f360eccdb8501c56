package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/plugg/internal/models"
)

// ErrNotFound is returned by mutations that target a missing record.
// Point reads return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

type PlannerStore interface {
	Close() error
	ApplyMigrations(dir string) error

	ListSubjects() ([]models.Subject, error)
	GetSubject(id int64) (*models.Subject, error)
	CreateSubject(subject *models.Subject) error
	UpdateSubject(id int64, patch SubjectPatch) (*models.Subject, error)
	DeleteSubject(id int64) error

	ListEvents() ([]models.RevisionEvent, error)
	ListEventsForDate(date string) ([]models.RevisionEvent, error)
	ListEventsForRange(start, end string) ([]models.RevisionEvent, error)
	GetEvent(id int64) (*models.RevisionEvent, error)
	CreateEvent(event *models.RevisionEvent) error
	UpdateEvent(id int64, patch EventPatch) (*models.RevisionEvent, error)
	ToggleEventCompletion(id int64) (*models.RevisionEvent, error)
	DeleteEvent(id int64) error

	ListExams() ([]models.Exam, error)
	ListExamsForDate(date string) ([]models.Exam, error)
	ListExamsForRange(start, end string) ([]models.Exam, error)
	ListUpcomingExams(today string) ([]models.Exam, error)
	GetExam(id int64) (*models.Exam, error)
	CreateExam(exam *models.Exam) error
	UpdateExam(id int64, patch ExamPatch) (*models.Exam, error)
	DeleteExam(id int64) error

	FetchRevisionStats(start, end string) ([]RevisionStat, error)
}

// BaseStore provides common functionality for different DB implementations.
// Dates and times are ISO strings, so lexical ordering in SQL matches
// chronological ordering in both dialects.
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

const eventColumns = `
	e.id, e.subject_id, e.date, e.time, e.duration, e.completed, e.notes,
	s.name AS subject_name, s.color AS subject_color
`

const examColumns = `
	e.id, e.subject_id, e.name, e.date, e.time, e.duration,
	s.name AS subject_name, s.color AS subject_color
`

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) ListSubjects() ([]models.Subject, error) {
	subjects := []models.Subject{}
	err := s.DB.Select(&subjects, `
		SELECT id, name, color
		FROM subjects
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *BaseStore) GetSubject(id int64) (*models.Subject, error) {
	var subject models.Subject
	query := s.Converter(`
		SELECT id, name, color
		FROM subjects
		WHERE id = ?
	`)
	err := s.DB.Get(&subject, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return &subject, nil
}

func (s *BaseStore) CreateSubject(subject *models.Subject) error {
	query := s.Converter(`
		INSERT INTO subjects (name, color)
		VALUES (?, ?)
		RETURNING id
	`)
	if err := s.DB.Get(&subject.ID, query, subject.Name, subject.Color); err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

func (s *BaseStore) UpdateSubject(id int64, patch SubjectPatch) (*models.Subject, error) {
	query := s.Converter(`
		UPDATE subjects
		SET name = COALESCE(?, name),
		    color = COALESCE(?, color)
		WHERE id = ?
	`)
	res, err := s.DB.Exec(query, patch.Name, patch.Color, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("subject %d: %w", id, ErrNotFound)
	}
	return s.GetSubject(id)
}

func (s *BaseStore) DeleteSubject(id int64) error {
	query := s.Converter(`DELETE FROM subjects WHERE id = ?`)
	res, err := s.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subject %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *BaseStore) ListEvents() ([]models.RevisionEvent, error) {
	events := []models.RevisionEvent{}
	err := s.DB.Select(&events, `
		SELECT `+eventColumns+`
		FROM revision_events e
		LEFT JOIN subjects s ON s.id = e.subject_id
		ORDER BY e.date ASC, e.time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *BaseStore) ListEventsForDate(date string) ([]models.RevisionEvent, error) {
	events := []models.RevisionEvent{}
	query := s.Converter(`
		SELECT ` + eventColumns + `
		FROM revision_events e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.date = ?
		ORDER BY e.time ASC
	`)
	if err := s.DB.Select(&events, query, date); err != nil {
		return nil, fmt.Errorf("failed to list events for date: %w", err)
	}
	return events, nil
}

func (s *BaseStore) ListEventsForRange(start, end string) ([]models.RevisionEvent, error) {
	events := []models.RevisionEvent{}
	query := s.Converter(`
		SELECT ` + eventColumns + `
		FROM revision_events e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.date >= ?
		AND e.date <= ?
		ORDER BY e.date ASC, e.time ASC
	`)
	if err := s.DB.Select(&events, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list events for range: %w", err)
	}
	return events, nil
}

func (s *BaseStore) GetEvent(id int64) (*models.RevisionEvent, error) {
	var event models.RevisionEvent
	query := s.Converter(`
		SELECT ` + eventColumns + `
		FROM revision_events e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.id = ?
	`)
	err := s.DB.Get(&event, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (s *BaseStore) CreateEvent(event *models.RevisionEvent) error {
	query := s.Converter(`
		INSERT INTO revision_events (subject_id, date, time, duration, completed, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := s.DB.Get(&event.ID, query,
		event.SubjectID,
		event.Date,
		event.Time,
		event.Duration,
		event.Completed,
		event.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	// Re-read so the caller gets the joined subject fields.
	created, err := s.GetEvent(event.ID)
	if err != nil {
		return err
	}
	if created != nil {
		*event = *created
	}
	return nil
}

func (s *BaseStore) UpdateEvent(id int64, patch EventPatch) (*models.RevisionEvent, error) {
	query := s.Converter(`
		UPDATE revision_events
		SET subject_id = COALESCE(?, subject_id),
		    date = COALESCE(?, date),
		    time = COALESCE(?, time),
		    duration = COALESCE(?, duration),
		    completed = COALESCE(?, completed),
		    notes = COALESCE(?, notes)
		WHERE id = ?
	`)
	res, err := s.DB.Exec(query,
		patch.SubjectID,
		patch.Date,
		patch.Time,
		patch.Duration,
		patch.Completed,
		patch.Notes,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return s.GetEvent(id)
}

func (s *BaseStore) ToggleEventCompletion(id int64) (*models.RevisionEvent, error) {
	query := s.Converter(`
		UPDATE revision_events
		SET completed = NOT completed
		WHERE id = ?
	`)
	res, err := s.DB.Exec(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle event completion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return s.GetEvent(id)
}

func (s *BaseStore) DeleteEvent(id int64) error {
	query := s.Converter(`DELETE FROM revision_events WHERE id = ?`)
	res, err := s.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *BaseStore) ListExams() ([]models.Exam, error) {
	exams := []models.Exam{}
	err := s.DB.Select(&exams, `
		SELECT `+examColumns+`
		FROM exams e
		LEFT JOIN subjects s ON s.id = e.subject_id
		ORDER BY e.date ASC, e.time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, nil
}

func (s *BaseStore) ListExamsForDate(date string) ([]models.Exam, error) {
	exams := []models.Exam{}
	query := s.Converter(`
		SELECT ` + examColumns + `
		FROM exams e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.date = ?
		ORDER BY e.time ASC
	`)
	if err := s.DB.Select(&exams, query, date); err != nil {
		return nil, fmt.Errorf("failed to list exams for date: %w", err)
	}
	return exams, nil
}

func (s *BaseStore) ListExamsForRange(start, end string) ([]models.Exam, error) {
	exams := []models.Exam{}
	query := s.Converter(`
		SELECT ` + examColumns + `
		FROM exams e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.date >= ?
		AND e.date <= ?
		ORDER BY e.date ASC, e.time ASC
	`)
	if err := s.DB.Select(&exams, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list exams for range: %w", err)
	}
	return exams, nil
}

// ListUpcomingExams is the queryable "upcoming" view: exams dated today
// or later, pre-sorted. The caller decides what "today" means.
func (s *BaseStore) ListUpcomingExams(today string) ([]models.Exam, error) {
	exams := []models.Exam{}
	query := s.Converter(`
		SELECT ` + examColumns + `
		FROM exams e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.date >= ?
		ORDER BY e.date ASC, e.time ASC
	`)
	if err := s.DB.Select(&exams, query, today); err != nil {
		return nil, fmt.Errorf("failed to list upcoming exams: %w", err)
	}
	return exams, nil
}

func (s *BaseStore) GetExam(id int64) (*models.Exam, error) {
	var exam models.Exam
	query := s.Converter(`
		SELECT ` + examColumns + `
		FROM exams e
		LEFT JOIN subjects s ON s.id = e.subject_id
		WHERE e.id = ?
	`)
	err := s.DB.Get(&exam, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return &exam, nil
}

func (s *BaseStore) CreateExam(exam *models.Exam) error {
	query := s.Converter(`
		INSERT INTO exams (subject_id, name, date, time, duration)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := s.DB.Get(&exam.ID, query,
		exam.SubjectID,
		exam.Name,
		exam.Date,
		exam.Time,
		exam.Duration,
	)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}

	created, err := s.GetExam(exam.ID)
	if err != nil {
		return err
	}
	if created != nil {
		*exam = *created
	}
	return nil
}

func (s *BaseStore) UpdateExam(id int64, patch ExamPatch) (*models.Exam, error) {
	query := s.Converter(`
		UPDATE exams
		SET subject_id = COALESCE(?, subject_id),
		    name = COALESCE(?, name),
		    date = COALESCE(?, date),
		    time = COALESCE(?, time),
		    duration = COALESCE(?, duration)
		WHERE id = ?
	`)
	res, err := s.DB.Exec(query,
		patch.SubjectID,
		patch.Name,
		patch.Date,
		patch.Time,
		patch.Duration,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update exam: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("exam %d: %w", id, ErrNotFound)
	}
	return s.GetExam(id)
}

func (s *BaseStore) DeleteExam(id int64) error {
	query := s.Converter(`DELETE FROM exams WHERE id = ?`)
	res, err := s.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("exam %d: %w", id, ErrNotFound)
	}
	return nil
}
