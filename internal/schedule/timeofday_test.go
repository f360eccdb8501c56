package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		time string
		want Bucket
	}{
		{"00:00", BucketMorning},
		{"08:30", BucketMorning},
		{"11:59", BucketMorning},
		{"12:00", BucketAfternoon},
		{"17:59", BucketAfternoon},
		{"18:00", BucketNight},
		{"23:59", BucketNight},
		// Malformed times deliberately classify as night
		{"", BucketNight},
		{"noon", BucketNight},
		{"??:30", BucketNight},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketFor(tt.time))
		})
	}
}

func TestBucketLabels(t *testing.T) {
	for _, b := range Buckets {
		assert.NotEmpty(t, b.Label())
	}
}
