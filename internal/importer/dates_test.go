package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-02-15", "2024-02-15", true},
		{"15/02/2024", "2024-02-15", true},
		{"15-02-2024", "2024-02-15", true},
		{"2024/02/15", "2024-02-15", true},
		{"15.02.2024", "2024-02-15", true},
		{"2024-02-15 00:00:00", "2024-02-15", true},
		{" 2024-02-15 ", "2024-02-15", true},
		{"someday", "", false},
		{"", "", false},
		{"2024-13-40", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalDate(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
