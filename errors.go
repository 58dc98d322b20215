// SPDX-License-Identifier: EPL-2.0

package dsdplay

import "errors"

var (
	// ErrMonoDoP is returned when a mono downmix is requested together with
	// DSD over PCM, whose words cannot be mixed.
	ErrMonoDoP = errors.New("mono downmix is not possible with DoP output")

	// ErrInvalidRateLimit indicates a negative rate limit.
	ErrInvalidRateLimit = errors.New("rate limit must not be negative")
)
