// Package calendar is the view-model behind every planner surface: it
// caches subjects and exams in full, events for the visible week only,
// and derives groupings on demand. Mutations are confirm-then-apply:
// the local cache changes only after the store call succeeds.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/plugg/internal/models"
	"github.com/shrimpsizemoose/plugg/internal/schedule"
	"github.com/shrimpsizemoose/plugg/internal/store"
)

// ErrValidation marks a command rejected before any store call was made.
var ErrValidation = errors.New("validation failed")

// GroupedEvents partitions a day's sessions by time of day.
type GroupedEvents struct {
	Morning   []models.RevisionEvent
	Afternoon []models.RevisionEvent
	Night     []models.RevisionEvent
}

// Calendar assumes a single logical writer: its caches are only touched
// by its own command handlers and load completions.
type Calendar struct {
	store store.PlannerStore
	now   func() time.Time

	subjects []models.Subject
	events   []models.RevisionEvent
	exams    []models.Exam

	week     []time.Time
	selected time.Time

	loading       bool
	eventsLoading bool
}

func New(s store.PlannerStore) *Calendar {
	return newWithClock(s, time.Now)
}

func newWithClock(s store.PlannerStore, now func() time.Time) *Calendar {
	today := now()
	return &Calendar{
		store:    s,
		now:      now,
		week:     schedule.WeekDays(today),
		selected: today,
		loading:  true,
	}
}

// Load fetches subjects and exams, then the current week's events.
// A failure in one slice degrades that slice to empty and does not
// block the others.
func (c *Calendar) Load() {
	c.loading = true

	subjects, err := c.store.ListSubjects()
	if err != nil {
		logger.Error.Printf("Failed to load subjects: %v", err)
		subjects = []models.Subject{}
	}
	c.subjects = subjects

	exams, err := c.store.ListExams()
	if err != nil {
		logger.Error.Printf("Failed to load exams: %v", err)
		exams = []models.Exam{}
	}
	c.exams = exams

	c.loading = false

	c.refreshEvents()
}

// refreshEvents replaces the entire events cache with the current
// week's window. Stale-window events are discarded, never merged.
func (c *Calendar) refreshEvents() {
	c.eventsLoading = true

	start := schedule.DateKey(c.week[0])
	end := schedule.DateKey(c.week[6])
	events, err := c.store.ListEventsForRange(start, end)
	if err != nil {
		logger.Error.Printf("Failed to load events for week %s..%s: %v", start, end, err)
		events = []models.RevisionEvent{}
	}
	c.events = events

	c.eventsLoading = false
}

func (c *Calendar) Loading() bool       { return c.loading }
func (c *Calendar) EventsLoading() bool { return c.eventsLoading }

func (c *Calendar) Week() []time.Time {
	week := make([]time.Time, len(c.week))
	copy(week, c.week)
	return week
}

func (c *Calendar) WeekLabel() string {
	return schedule.WeekRangeLabel(c.week)
}

func (c *Calendar) Selected() time.Time { return c.selected }

func (c *Calendar) SelectDate(day time.Time) {
	c.selected = day
}

// GoToWeek recomputes the 7-day window around anchor and refetches
// events for it.
func (c *Calendar) GoToWeek(anchor time.Time) {
	c.week = schedule.WeekDays(anchor)
	c.refreshEvents()
}

func (c *Calendar) NextWeek() {
	c.GoToWeek(schedule.NextWeekAnchor(c.week[0]))
}

func (c *Calendar) PrevWeek() {
	c.GoToWeek(schedule.PrevWeekAnchor(c.week[0]))
}

func (c *Calendar) Subjects() []models.Subject {
	return c.subjects
}

// AddSubject creates a subject and appends it to the cache. An empty
// color falls back to the default palette token.
func (c *Calendar) AddSubject(name, color string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", ErrValidation)
	}
	if color == "" {
		color = models.DefaultColor
	}

	subject := &models.Subject{Name: name, Color: color}
	if err := subject.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := c.store.CreateSubject(subject); err != nil {
		logger.Error.Printf("Failed to add subject: %v", err)
		return nil, err
	}

	c.subjects = append(c.subjects, *subject)
	return subject, nil
}

func (c *Calendar) UpdateSubject(id int64, patch store.SubjectPatch) (*models.Subject, error) {
	updated, err := c.store.UpdateSubject(id, patch)
	if err != nil {
		logger.Error.Printf("Failed to update subject %d: %v", id, err)
		return nil, err
	}

	for i := range c.subjects {
		if c.subjects[i].ID == id {
			c.subjects[i] = *updated
			break
		}
	}
	return updated, nil
}

// DeleteSubject removes a subject. Events and exams referencing it are
// kept and render with the unknown-subject sentinel.
func (c *Calendar) DeleteSubject(id int64) error {
	if err := c.store.DeleteSubject(id); err != nil {
		logger.Error.Printf("Failed to delete subject %d: %v", id, err)
		return err
	}

	kept := c.subjects[:0]
	for _, s := range c.subjects {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	c.subjects = kept
	return nil
}

// AddEvent schedules a revision session on the given day.
func (c *Calendar) AddEvent(subjectID int64, day time.Time, hhmm string, duration int, notes string) (*models.RevisionEvent, error) {
	if subjectID == 0 {
		return nil, fmt.Errorf("%w: subject is required", ErrValidation)
	}

	event := &models.RevisionEvent{
		SubjectID: subjectID,
		Date:      schedule.DateKey(day),
		Time:      hhmm,
		Duration:  duration,
	}
	if notes != "" {
		event.Notes = &notes
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := c.store.CreateEvent(event); err != nil {
		logger.Error.Printf("Failed to add event: %v", err)
		return nil, err
	}

	c.events = append(c.events, *event)
	return event, nil
}

func (c *Calendar) ToggleEventCompletion(id int64) (*models.RevisionEvent, error) {
	updated, err := c.store.ToggleEventCompletion(id)
	if err != nil {
		logger.Error.Printf("Failed to toggle event %d: %v", id, err)
		return nil, err
	}

	for i := range c.events {
		if c.events[i].ID == id {
			c.events[i] = *updated
			break
		}
	}
	return updated, nil
}

func (c *Calendar) DeleteEvent(id int64) error {
	if err := c.store.DeleteEvent(id); err != nil {
		logger.Error.Printf("Failed to delete event %d: %v", id, err)
		return err
	}

	kept := c.events[:0]
	for _, e := range c.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.events = kept
	return nil
}

func (c *Calendar) AddExam(subjectID int64, name string, day time.Time, hhmm string, duration int) (*models.Exam, error) {
	if subjectID == 0 {
		return nil, fmt.Errorf("%w: subject is required", ErrValidation)
	}

	exam := &models.Exam{
		SubjectID: subjectID,
		Name:      strings.TrimSpace(name),
		Date:      schedule.DateKey(day),
		Time:      hhmm,
		Duration:  duration,
	}
	if err := exam.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := c.store.CreateExam(exam); err != nil {
		logger.Error.Printf("Failed to add exam: %v", err)
		return nil, err
	}

	c.exams = append(c.exams, *exam)
	return exam, nil
}

func (c *Calendar) DeleteExam(id int64) error {
	if err := c.store.DeleteExam(id); err != nil {
		logger.Error.Printf("Failed to delete exam %d: %v", id, err)
		return err
	}

	kept := c.exams[:0]
	for _, x := range c.exams {
		if x.ID != id {
			kept = append(kept, x)
		}
	}
	c.exams = kept
	return nil
}

// EventsForDay filters the week cache down to one calendar day.
func (c *Calendar) EventsForDay(day time.Time) []models.RevisionEvent {
	key := schedule.DateKey(day)
	var out []models.RevisionEvent
	for _, e := range c.events {
		if e.Date == key {
			out = append(out, e)
		}
	}
	return out
}

func (c *Calendar) EventsForSelectedDate() []models.RevisionEvent {
	return c.EventsForDay(c.selected)
}

func (c *Calendar) HasEvents(day time.Time) bool {
	return len(c.EventsForDay(day)) > 0
}

// GroupedByTimeOfDay partitions the selected day's events into the
// three buckets. Every event lands in exactly one bucket.
func (c *Calendar) GroupedByTimeOfDay() GroupedEvents {
	var grouped GroupedEvents
	for _, e := range c.EventsForSelectedDate() {
		switch schedule.BucketFor(e.Time) {
		case schedule.BucketMorning:
			grouped.Morning = append(grouped.Morning, e)
		case schedule.BucketAfternoon:
			grouped.Afternoon = append(grouped.Afternoon, e)
		default:
			grouped.Night = append(grouped.Night, e)
		}
	}
	return grouped
}

// ExamsForDay returns the day's exams with their countdown stamped.
func (c *Calendar) ExamsForDay(day time.Time) []models.Exam {
	key := schedule.DateKey(day)
	var out []models.Exam
	for _, x := range c.exams {
		if x.Date == key {
			out = append(out, c.stampCountdown(x))
		}
	}
	return out
}

// NextExam derives the nearest exam dated today or later from the
// loaded cache. The result can lag the store's upcoming view when the
// cache is stale across a midnight boundary.
func (c *Calendar) NextExam() *models.Exam {
	today := schedule.DateKey(c.now())

	var next *models.Exam
	for i := range c.exams {
		x := c.exams[i]
		if x.Date < today {
			continue
		}
		if next == nil || x.Date < next.Date || (x.Date == next.Date && x.Time < next.Time) {
			next = &x
		}
	}
	if next == nil {
		return nil
	}

	stamped := c.stampCountdown(*next)
	return &stamped
}

func (c *Calendar) stampCountdown(x models.Exam) models.Exam {
	if target, err := time.ParseInLocation(schedule.DateLayout, x.Date, c.now().Location()); err == nil {
		x.DaysRemaining = schedule.DaysUntilAt(target, c.now())
	}
	return x
}

// SubjectName resolves a subject id against the cache, falling back to
// the unknown-subject sentinel.
func (c *Calendar) SubjectName(id int64) string {
	for _, s := range c.subjects {
		if s.ID == id {
			return s.Name
		}
	}
	return models.UnknownSubjectName
}

func (c *Calendar) SubjectColor(id int64) string {
	for _, s := range c.subjects {
		if s.ID == id {
			return s.Color
		}
	}
	return models.DefaultColor
}
