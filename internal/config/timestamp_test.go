// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want uint32
	}{
		{"0:00", 0},
		{"1:30", 90_000},
		{"01:05.5", 65_500},
		{"2:03.25", 123_250},
		{"0:00.001", 1},
		{"0:10.12345", 10_123},
		{"90:00", 5_400_000},
		{"42", 42_000},
		{"7.5", 7_500},
		{" 1:00 ", 60_000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "1:xx", "x:10", "1:75", "0:60", "-1:00", "1:00.x", "99999999:00"} {
		if _, err := ParseTimestamp(in); !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("ParseTimestamp(%q) error = %v, want ErrInvalidTimestamp", in, err)
		}
	}
}
