package timefmt

import (
	"fmt"
	"time"

	"urlclient/internal/domain"
)

const (
	DisplayLayout = "Jan 2, 2006, 03:04:05 PM"
	InvalidDate   = "Invalid Date"
	UnknownTime   = "Unknown"
)

// FormatDateTime renders ts in the zone it was received in.
func FormatDateTime(ts domain.Timestamp) string {
	if !ts.Valid() {
		return InvalidDate
	}
	return ts.Format(DisplayLayout)
}

// IsExpired reports whether ts lies before now. Unparseable times never
// count as expired.
func IsExpired(ts domain.Timestamp, now time.Time) bool {
	if !ts.Valid() {
		return false
	}
	return ts.Before(now)
}

func RelativeTime(ts domain.Timestamp, now time.Time) string {
	if !ts.Valid() {
		return UnknownTime
	}

	seconds := int64(now.Sub(ts.Time) / time.Second)
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	default:
		return plural(seconds/86400, "day")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
