// Package schedule implements the date arithmetic and cascade planning that
// drive project schedules. Everything in this package is pure: callers fetch
// phase records, plan against in-memory copies, then persist the result.
package schedule

import (
	"time"
)

// DateLayout is the wire format for all schedule dates (no time component).
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date as ISO YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsBusinessDay reports whether t falls on a weekday. Only Saturday and
// Sunday are excluded; holidays are not modeled.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddBusinessDays advances d by n business days, skipping weekends. The start
// date itself is never counted; n <= 0 returns d unchanged.
func AddBusinessDays(d time.Time, n int) time.Time {
	for added := 0; added < n; {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			added++
		}
	}
	return d
}

// BusinessDaysBetween returns the signed number of business-day steps from
// `from` to `to`: the count of weekdays after `from` up to and including `to`.
// Equal dates yield 0; the result is negative when to precedes from. This is
// the shift magnitude used for audit and alert severity, not for placement.
func BusinessDaysBetween(from, to time.Time) int {
	if to.Before(from) {
		return -BusinessDaysBetween(to, from)
	}
	count := 0
	for cur := from.AddDate(0, 0, 1); !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		if IsBusinessDay(cur) {
			count++
		}
	}
	return count
}
