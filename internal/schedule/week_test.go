package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekDays(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		want   []time.Time
	}{
		{
			name:   "mid month wednesday",
			anchor: date(2024, time.June, 12),
			want: []time.Time{
				date(2024, time.June, 9), date(2024, time.June, 10), date(2024, time.June, 11),
				date(2024, time.June, 12), date(2024, time.June, 13), date(2024, time.June, 14),
				date(2024, time.June, 15),
			},
		},
		{
			name:   "month boundary",
			anchor: date(2024, time.March, 1),
			want: []time.Time{
				date(2024, time.February, 25), date(2024, time.February, 26), date(2024, time.February, 27),
				date(2024, time.February, 28), date(2024, time.February, 29), date(2024, time.March, 1),
				date(2024, time.March, 2),
			},
		},
		{
			name:   "year boundary",
			anchor: date(2025, time.January, 1),
			want: []time.Time{
				date(2024, time.December, 29), date(2024, time.December, 30), date(2024, time.December, 31),
				date(2025, time.January, 1), date(2025, time.January, 2), date(2025, time.January, 3),
				date(2025, time.January, 4),
			},
		},
		{
			name:   "anchor already sunday",
			anchor: date(2024, time.June, 9),
			want: []time.Time{
				date(2024, time.June, 9), date(2024, time.June, 10), date(2024, time.June, 11),
				date(2024, time.June, 12), date(2024, time.June, 13), date(2024, time.June, 14),
				date(2024, time.June, 15),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekDays(tt.anchor)
			require.Len(t, got, 7)
			assert.Equal(t, time.Sunday, got[0].Weekday())
			assert.Equal(t, time.Saturday, got[6].Weekday())
			for i := range got {
				assert.True(t, got[i].Equal(tt.want[i]),
					"day %d: want %s got %s", i, tt.want[i], got[i])
			}
		})
	}
}

func TestWeekDaysConsecutive(t *testing.T) {
	// Any anchor time-of-day yields the same window of consecutive days
	anchor := time.Date(2024, time.March, 1, 23, 45, 0, 0, time.UTC)
	week := WeekDays(anchor)

	for i := 1; i < 7; i++ {
		assert.True(t, week[i].Equal(week[i-1].AddDate(0, 0, 1)),
			"day %d is not the day after day %d", i, i-1)
	}
}

func TestWeekNavigationRoundTrip(t *testing.T) {
	anchor := date(2024, time.June, 12)
	week := WeekDays(anchor)

	forwardBack := WeekDays(PrevWeekAnchor(NextWeekAnchor(week[0])))
	require.Len(t, forwardBack, 7)
	for i := range week {
		assert.True(t, week[i].Equal(forwardBack[i]))
	}
}

func TestWeekRangeLabel(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		want   string
	}{
		{"same month", date(2025, time.January, 8), "Jan 5 - 11, 2025"},
		{"straddles months", date(2024, time.March, 1), "Feb 25 - Mar 2, 2024"},
		{"straddles years", date(2025, time.January, 1), "Dec 29 - Jan 4, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekRangeLabel(WeekDays(tt.anchor)))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"today", date(2024, time.June, 10), 0},
		{"tomorrow", date(2024, time.June, 11), 1},
		{"yesterday", date(2024, time.June, 9), -1},
		{"next month", date(2024, time.July, 10), 30},
		{"target later in the day still counts as today", time.Date(2024, time.June, 10, 23, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilAt(tt.target, now))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 min", FormatDuration(45))
	assert.Equal(t, "2 hr", FormatDuration(120))
	assert.Equal(t, "1 hr 30 min", FormatDuration(90))
	assert.Equal(t, "0 min", FormatDuration(0))
}
