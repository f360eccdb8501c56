// internal/store/sqlite/store_test.go
package sqlite

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/plugg/internal/models"
	"github.com/shrimpsizemoose/plugg/internal/store"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(":memory:", "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
	os.Exit(code)
}

func mustCreateSubject(t *testing.T, s *SQLiteStore, name, color string) *models.Subject {
	subject := &models.Subject{Name: name, Color: color}
	require.NoError(t, s.CreateSubject(subject))
	require.NotZero(t, subject.ID, "insert should assign an id")
	return subject
}

func strptr(v string) *string { return &v }
func intptr(v int) *int       { return &v }

func TestSubjectCRUD(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	t.Run("empty list is an empty slice", func(t *testing.T) {
		subjects, err := s.ListSubjects()
		require.NoError(t, err)
		require.NotNil(t, subjects)
		assert.Empty(t, subjects)
	})

	maths := mustCreateSubject(t, s, "Maths", "red")
	mustCreateSubject(t, s, "Biology", "green")

	t.Run("list is ordered by name", func(t *testing.T) {
		subjects, err := s.ListSubjects()
		require.NoError(t, err)
		require.Len(t, subjects, 2)
		assert.Equal(t, "Biology", subjects[0].Name)
		assert.Equal(t, "Maths", subjects[1].Name)
	})

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		updated, err := s.UpdateSubject(maths.ID, store.SubjectPatch{Color: strptr("blue")})
		require.NoError(t, err)
		assert.Equal(t, "Maths", updated.Name)
		assert.Equal(t, "blue", updated.Color)
	})

	t.Run("update of missing subject reports not found", func(t *testing.T) {
		_, err := s.UpdateSubject(9999, store.SubjectPatch{Color: strptr("blue")})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("get missing subject returns nil without error", func(t *testing.T) {
		got, err := s.GetSubject(9999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete removes from list", func(t *testing.T) {
		require.NoError(t, s.DeleteSubject(maths.ID))
		subjects, err := s.ListSubjects()
		require.NoError(t, err)
		require.Len(t, subjects, 1)
		assert.Equal(t, "Biology", subjects[0].Name)
	})
}

func TestEventLifecycle(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	maths := mustCreateSubject(t, s, "Maths", "red")

	event := &models.RevisionEvent{
		SubjectID: maths.ID,
		Date:      "2024-06-10",
		Time:      "09:00",
		Duration:  60,
		Notes:     strptr("integration practice"),
	}

	t.Run("create returns the joined record", func(t *testing.T) {
		require.NoError(t, s.CreateEvent(event))
		require.NotZero(t, event.ID)
		require.NotNil(t, event.SubjectName)
		assert.Equal(t, "Maths", *event.SubjectName)
		require.NotNil(t, event.SubjectColor)
		assert.Equal(t, "red", *event.SubjectColor)
		assert.False(t, event.Completed)
	})

	t.Run("listForDate includes it", func(t *testing.T) {
		events, err := s.ListEventsForDate("2024-06-10")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
		require.NotNil(t, events[0].Notes)
		assert.Equal(t, "integration practice", *events[0].Notes)
	})

	t.Run("toggle twice restores the original value", func(t *testing.T) {
		toggled, err := s.ToggleEventCompletion(event.ID)
		require.NoError(t, err)
		assert.True(t, toggled.Completed)

		toggled, err = s.ToggleEventCompletion(event.ID)
		require.NoError(t, err)
		assert.False(t, toggled.Completed)
	})

	t.Run("partial update moves the session", func(t *testing.T) {
		updated, err := s.UpdateEvent(event.ID, store.EventPatch{
			Time:     strptr("14:30"),
			Duration: intptr(45),
		})
		require.NoError(t, err)
		assert.Equal(t, "14:30", updated.Time)
		assert.Equal(t, 45, updated.Duration)
		assert.Equal(t, "2024-06-10", updated.Date, "date unchanged")
	})

	t.Run("delete excludes it from later reads", func(t *testing.T) {
		require.NoError(t, s.DeleteEvent(event.ID))
		events, err := s.ListEventsForDate("2024-06-10")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		assert.ErrorIs(t, s.DeleteEvent(event.ID), store.ErrNotFound)
	})
}

func TestEventOrderingAndRange(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	maths := mustCreateSubject(t, s, "Maths", "red")

	seed := []models.RevisionEvent{
		{SubjectID: maths.ID, Date: "2024-06-12", Time: "09:00", Duration: 30},
		{SubjectID: maths.ID, Date: "2024-06-10", Time: "18:00", Duration: 30},
		{SubjectID: maths.ID, Date: "2024-06-10", Time: "08:00", Duration: 30},
		{SubjectID: maths.ID, Date: "2024-06-20", Time: "10:00", Duration: 30},
	}
	for i := range seed {
		require.NoError(t, s.CreateEvent(&seed[i]))
	}

	t.Run("range is inclusive and ordered by date then time", func(t *testing.T) {
		events, err := s.ListEventsForRange("2024-06-09", "2024-06-15")
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "08:00", events[0].Time)
		assert.Equal(t, "18:00", events[1].Time)
		assert.Equal(t, "2024-06-12", events[2].Date)
	})

	t.Run("empty window is an empty slice", func(t *testing.T) {
		events, err := s.ListEventsForRange("2024-07-01", "2024-07-07")
		require.NoError(t, err)
		require.NotNil(t, events)
		assert.Empty(t, events)
	})
}

func TestDanglingSubjectReference(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	ghost := mustCreateSubject(t, s, "Latin", "purple")
	event := &models.RevisionEvent{SubjectID: ghost.ID, Date: "2024-06-10", Time: "09:00", Duration: 60}
	require.NoError(t, s.CreateEvent(event))

	require.NoError(t, s.DeleteSubject(ghost.ID))

	events, err := s.ListEventsForDate("2024-06-10")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].SubjectName, "join yields NULL for the dangling ref")

	name, color := events[0].DisplaySubject()
	assert.Equal(t, models.UnknownSubjectName, name)
	assert.Equal(t, models.DefaultColor, color)
}

func TestExamQueries(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	maths := mustCreateSubject(t, s, "Maths", "red")

	seed := []models.Exam{
		{SubjectID: maths.ID, Name: "Paper 1", Date: "2024-06-05", Time: "09:00", Duration: 90},
		{SubjectID: maths.ID, Name: "Paper 2", Date: "2024-06-15", Time: "13:00", Duration: 120},
		{SubjectID: maths.ID, Name: "Paper 3", Date: "2024-06-15", Time: "09:00", Duration: 90},
	}
	for i := range seed {
		require.NoError(t, s.CreateExam(&seed[i]))
		require.NotNil(t, seed[i].SubjectName)
	}

	t.Run("upcoming view filters and sorts", func(t *testing.T) {
		exams, err := s.ListUpcomingExams("2024-06-10")
		require.NoError(t, err)
		require.Len(t, exams, 2)
		assert.Equal(t, "Paper 3", exams[0].Name, "same date orders by time")
		assert.Equal(t, "Paper 2", exams[1].Name)
	})

	t.Run("same-day exam is included in upcoming", func(t *testing.T) {
		exams, err := s.ListUpcomingExams("2024-06-15")
		require.NoError(t, err)
		assert.Len(t, exams, 2)
	})

	t.Run("listForDate joins subject", func(t *testing.T) {
		exams, err := s.ListExamsForDate("2024-06-05")
		require.NoError(t, err)
		require.Len(t, exams, 1)
		require.NotNil(t, exams[0].SubjectName)
		assert.Equal(t, "Maths", *exams[0].SubjectName)
	})
}

func TestFetchRevisionStats(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	maths := mustCreateSubject(t, s, "Maths", "red")
	bio := mustCreateSubject(t, s, "Biology", "green")

	seed := []models.RevisionEvent{
		{SubjectID: maths.ID, Date: "2024-06-10", Time: "09:00", Duration: 60},
		{SubjectID: maths.ID, Date: "2024-06-11", Time: "10:00", Duration: 30},
		{SubjectID: bio.ID, Date: "2024-06-12", Time: "18:00", Duration: 45},
	}
	for i := range seed {
		require.NoError(t, s.CreateEvent(&seed[i]))
	}
	_, err := s.ToggleEventCompletion(seed[0].ID)
	require.NoError(t, err)

	stats, err := s.FetchRevisionStats("2024-06-09", "2024-06-15")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Biology", stats[0].SubjectName)
	assert.EqualValues(t, 45, stats[0].PlannedMinutes)
	assert.EqualValues(t, 0, stats[0].CompletedMinutes)

	assert.Equal(t, "Maths", stats[1].SubjectName)
	assert.EqualValues(t, 2, stats[1].Sessions)
	assert.EqualValues(t, 90, stats[1].PlannedMinutes)
	assert.EqualValues(t, 60, stats[1].CompletedMinutes)
}
