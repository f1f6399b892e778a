package cache

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidTTL reports a malformed validity duration. A bad duration is a
// caller bug, not an environment condition.
var ErrInvalidTTL = errors.New("invalid cache TTL")

// ttlUnitSeconds maps the accepted duration suffixes to seconds.
var ttlUnitSeconds = map[byte]int64{ //nolint:gochecknoglobals // Static lookup table
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
}

// parseValid converts a duration string like "2s", "10m", "1h" or "7d"
// into seconds. One-second granularity is all the cache provides.
func parseValid(valid string) (int64, error) {
	if len(valid) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, valid)
	}

	unit, ok := ttlUnitSeconds[valid[len(valid)-1]]
	if !ok {
		return 0, fmt.Errorf("%w: %q (unit must be one of s, m, h, d)", ErrInvalidTTL, valid)
	}

	magnitude, err := strconv.ParseInt(valid[:len(valid)-1], 10, 64)
	if err != nil || magnitude < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, valid)
	}

	return magnitude * unit, nil
}
