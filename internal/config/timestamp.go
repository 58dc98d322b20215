// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp converts "mm:ss", "mm:ss.fff" or a plain number of seconds
// to milliseconds. Minutes are not limited to 59.
func ParseTimestamp(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}

	var minutes uint64
	m, secPart, hasMinutes := strings.Cut(s, ":")
	if hasMinutes {
		v, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: minutes %q", ErrInvalidTimestamp, m)
		}
		minutes = v
	} else {
		secPart = s
	}

	whole, frac, _ := strings.Cut(secPart, ".")
	secs, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: seconds %q", ErrInvalidTimestamp, whole)
	}
	if hasMinutes && secs >= 60 {
		return 0, fmt.Errorf("%w: %d seconds", ErrInvalidTimestamp, secs)
	}

	var ms uint64
	if frac != "" {
		if len(frac) > 3 {
			frac = frac[:3]
		}
		v, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: fraction %q", ErrInvalidTimestamp, frac)
		}
		for range 3 - len(frac) {
			v *= 10
		}
		ms = v
	}

	total := (minutes*60+secs)*1000 + ms
	if total > 1<<32-1 {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidTimestamp, s)
	}
	return uint32(total), nil
}
