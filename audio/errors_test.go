// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDstSize, "dst size must be multiple of channels"},
		{ErrInvalidRate, "sample rate must be positive"},
		{ErrNoChannels, "channel count must be positive"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}

		// Wrapped errors still match.
		wrapped := fmt.Errorf("resampler: %w", tt.err)
		if !errors.Is(wrapped, tt.err) {
			t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.err)
		}
	}

	if errors.Is(ErrInvalidRate, ErrNoChannels) {
		t.Error("distinct errors compare equal")
	}
}
