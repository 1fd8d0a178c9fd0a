// Package timecode converts between textual HH:MM:SS[.mmm] timestamps and
// numeric seconds-since-start offsets.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp indicates a timestamp that does not follow HH:MM:SS[.mmm].
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ToSeconds converts a timestamp string (HH:MM:SS or HH:MM:SS.mmm) to seconds.
// Milliseconds default to 0 when the fractional part is absent.
func ToSeconds(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}

	secParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}

	milliseconds := 0
	if len(secParts) == 2 {
		milliseconds, err = strconv.Atoi(secParts[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
		}
	}

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(milliseconds)/1000, nil
}
