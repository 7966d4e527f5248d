package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationDays(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2024-02-15", "2024-02-15", 1},
		{"2024-02-15", "2024-02-17", 3},
		{"2024-02-28", "2024-03-01", 3}, // leap year
		{"2023-12-30", "2024-01-02", 4}, // across year boundary
		{"2024-02-17", "2024-02-15", 0}, // inverted range
		{"not-a-date", "2024-02-15", 0},
		{"2024-02-15", "", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DurationDays(tc.from, tc.to), "%s..%s", tc.from, tc.to)
	}
}
