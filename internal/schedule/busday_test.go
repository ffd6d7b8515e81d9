package schedule_test

import (
	"testing"
	"time"

	"qualityflow-backend/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := schedule.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAddBusinessDays(t *testing.T) {
	testCases := []struct {
		name     string
		start    string
		days     int
		expected string
	}{
		{"Zero days returns start unchanged", "2024-01-01", 0, "2024-01-01"},
		{"Zero days on a weekend returns start unchanged", "2024-01-06", 0, "2024-01-06"},
		{"Negative days returns start unchanged", "2024-01-01", -3, "2024-01-01"},
		{"One day from Monday", "2024-01-01", 1, "2024-01-02"},
		{"One day from Friday skips the weekend", "2024-01-05", 1, "2024-01-08"},
		{"One day from Saturday lands on Monday", "2024-01-06", 1, "2024-01-08"},
		{"Five days from Monday is next Monday", "2024-01-01", 5, "2024-01-08"},
		{"Ten days from Monday spans two weekends", "2024-01-01", 10, "2024-01-15"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.AddBusinessDays(date(t, tc.start), tc.days)
			assert.Equal(t, tc.expected, schedule.FormatDate(got))
		})
	}
}

func TestAddBusinessDaysLandsOnWeekday(t *testing.T) {
	// Walk every weekday start across several weeks and check the result is
	// never a weekend for n >= 1.
	start := date(t, "2024-01-01")
	for offset := 0; offset < 14; offset++ {
		d := start.AddDate(0, 0, offset)
		for n := 1; n <= 10; n++ {
			got := schedule.AddBusinessDays(d, n)
			assert.True(t, schedule.IsBusinessDay(got),
				"AddBusinessDays(%s, %d) = %s falls on a weekend",
				schedule.FormatDate(d), n, schedule.FormatDate(got))
		}
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	testCases := []struct {
		name     string
		from     string
		to       string
		expected int
	}{
		{"Equal dates", "2024-01-08", "2024-01-08", 0},
		{"Friday to next Monday", "2024-01-05", "2024-01-08", 1},
		{"Monday to Friday same week", "2024-01-01", "2024-01-05", 4},
		{"Monday to next Monday", "2024-01-01", "2024-01-08", 5},
		{"Friday to Saturday counts nothing", "2024-01-05", "2024-01-06", 0},
		{"Reverse span is negative", "2024-01-08", "2024-01-05", -1},
		{"Three business days over a weekend", "2024-01-05", "2024-01-10", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.BusinessDaysBetween(date(t, tc.from), date(t, tc.to))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, schedule.IsBusinessDay(date(t, "2024-01-01")))  // Monday
	assert.True(t, schedule.IsBusinessDay(date(t, "2024-01-05")))  // Friday
	assert.False(t, schedule.IsBusinessDay(date(t, "2024-01-06"))) // Saturday
	assert.False(t, schedule.IsBusinessDay(date(t, "2024-01-07"))) // Sunday
}
