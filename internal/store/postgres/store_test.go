package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/plugg/internal/models"
)

// setupTestDB connects to the Postgres pointed at by PLUGG_TEST_POSTGRES_DSN
// and applies migrations. Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	dsn := os.Getenv("PLUGG_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PLUGG_TEST_POSTGRES_DSN not set, skipping postgres store tests")
	}

	s, err := NewPostgresStore(dsn, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	// Tests share a database, so start from a clean slate.
	for _, table := range []string{"revision_events", "exams", "subjects"} {
		_, err := s.DB.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE")
		require.NoError(t, err, "Failed to truncate %s", table)
	}

	cleanup := func() {
		require.NoError(t, s.Close())
	}

	return s, cleanup
}

func strptr(v string) *string { return &v }

func TestEndToEndLifecycle(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	subject := &models.Subject{Name: "Maths", Color: "red"}
	require.NoError(t, s.CreateSubject(subject))

	t.Run("subject appears in list", func(t *testing.T) {
		subjects, err := s.ListSubjects()
		require.NoError(t, err)
		require.Len(t, subjects, 1)
		assert.Equal(t, "Maths", subjects[0].Name)
	})

	event := &models.RevisionEvent{
		SubjectID: subject.ID,
		Date:      "2024-06-10",
		Time:      "09:00",
		Duration:  60,
	}
	require.NoError(t, s.CreateEvent(event))

	t.Run("event is joined with its subject", func(t *testing.T) {
		events, err := s.ListEventsForDate("2024-06-10")
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.NotNil(t, events[0].SubjectName)
		assert.Equal(t, "Maths", *events[0].SubjectName)
		require.NotNil(t, events[0].SubjectColor)
		assert.Equal(t, "red", *events[0].SubjectColor)
	})

	t.Run("toggle flips completion", func(t *testing.T) {
		toggled, err := s.ToggleEventCompletion(event.ID)
		require.NoError(t, err)
		assert.True(t, toggled.Completed)
	})

	t.Run("delete removes from later reads", func(t *testing.T) {
		require.NoError(t, s.DeleteEvent(event.ID))
		events, err := s.ListEventsForDate("2024-06-10")
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestUpcomingExamsAndStats(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	subject := &models.Subject{Name: "Chemistry", Color: "teal"}
	require.NoError(t, s.CreateSubject(subject))

	exams := []models.Exam{
		{SubjectID: subject.ID, Name: "Past paper", Date: "2024-06-01", Time: "09:00", Duration: 90},
		{SubjectID: subject.ID, Name: "Final", Date: "2024-06-20", Time: "09:00", Duration: 120},
	}
	for i := range exams {
		require.NoError(t, s.CreateExam(&exams[i]))
	}

	t.Run("upcoming view excludes the past", func(t *testing.T) {
		upcoming, err := s.ListUpcomingExams("2024-06-10")
		require.NoError(t, err)
		require.Len(t, upcoming, 1)
		assert.Equal(t, "Final", upcoming[0].Name)
	})

	events := []models.RevisionEvent{
		{SubjectID: subject.ID, Date: "2024-06-10", Time: "09:00", Duration: 60, Notes: strptr("organic chemistry")},
		{SubjectID: subject.ID, Date: "2024-06-11", Time: "19:00", Duration: 30},
	}
	for i := range events {
		require.NoError(t, s.CreateEvent(&events[i]))
	}
	_, err := s.ToggleEventCompletion(events[1].ID)
	require.NoError(t, err)

	t.Run("stats rollup counts completed minutes with FILTER", func(t *testing.T) {
		stats, err := s.FetchRevisionStats("2024-06-09", "2024-06-15")
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, "Chemistry", stats[0].SubjectName)
		assert.EqualValues(t, 2, stats[0].Sessions)
		assert.EqualValues(t, 90, stats[0].PlannedMinutes)
		assert.EqualValues(t, 30, stats[0].CompletedMinutes)
	})
}
