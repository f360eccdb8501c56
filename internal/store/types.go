package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

type DBConfig struct {
	DSN  string
	Type DatabaseType
}

// SubjectPatch carries a partial subject update; nil fields are left untouched.
type SubjectPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type EventPatch struct {
	SubjectID *int64  `json:"subject_id"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Duration  *int    `json:"duration"`
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"`
}

type ExamPatch struct {
	SubjectID *int64  `json:"subject_id"`
	Name      *string `json:"name"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Duration  *int    `json:"duration"`
}

// RevisionStat is a per-subject rollup of revision activity within a
// date range, used by the sheet exporter.
type RevisionStat struct {
	SubjectName      string `db:"subject_name"`
	Sessions         int64  `db:"sessions"`
	PlannedMinutes   int64  `db:"planned_minutes"`
	CompletedMinutes int64  `db:"completed_minutes"`
}
