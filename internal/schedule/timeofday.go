package schedule

import (
	"strconv"
	"strings"
)

// Bucket is a coarse time-of-day category for grouping sessions.
type Bucket string

const (
	BucketMorning   Bucket = "morning"
	BucketAfternoon Bucket = "afternoon"
	BucketNight     Bucket = "night"
)

// Buckets in display order.
var Buckets = []Bucket{BucketMorning, BucketAfternoon, BucketNight}

// BucketFor classifies an HH:MM time by its hour: before 12 is morning,
// 12 to 17 is afternoon, 18 onward is night. An unparseable hour
// classifies as night.
func BucketFor(hhmm string) Bucket {
	hourPart, _, _ := strings.Cut(hhmm, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return BucketNight
	}

	switch {
	case hour < 12:
		return BucketMorning
	case hour < 18:
		return BucketAfternoon
	default:
		return BucketNight
	}
}

func (b Bucket) Label() string {
	switch b {
	case BucketMorning:
		return "🌄 Morning"
	case BucketAfternoon:
		return "☀️ Afternoon"
	case BucketNight:
		return "🌙 Night"
	}
	return ""
}
