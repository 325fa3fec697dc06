package notion

import (
	"fmt"
	"strings"
	"time"
)

// Layouts for date-time tokens without an explicit offset. Notion emits
// fractional seconds on page timestamps but not on user-entered dates.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ResolveDate parses a Notion date token into an instant plus an all-day
// flag. Tokens with a time component resolve to a timed instant: an
// explicit offset (including "Z") wins, otherwise the token is naive and
// fallback supplies the zone. Date-only tokens resolve to local midnight
// in fallback and are flagged all-day.
//
// A malformed token is an error; the policy for a bad date (skip the
// record, fail the batch) belongs to the caller.
func ResolveDate(token string, fallback *time.Location) (time.Time, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false, fmt.Errorf("empty date token")
	}
	if fallback == nil {
		fallback = time.UTC
	}

	if strings.Contains(token, "T") {
		if t, err := time.Parse(time.RFC3339, token); err == nil {
			return t, false, nil
		}
		for _, layout := range naiveLayouts {
			if t, err := time.ParseInLocation(layout, token, fallback); err == nil {
				return t, false, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("unrecognized date-time token %q", token)
	}

	t, err := time.ParseInLocation("2006-01-02", token, fallback)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("unrecognized date token %q", token)
	}
	return t, true, nil
}
