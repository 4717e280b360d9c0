package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// 2025-06-02 is a Monday
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	for i, want := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} {
		require.Equal(t, want, WeekdayOf(monday.AddDate(0, 0, i)))
	}
}

func TestWeekStartAndEnd(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		require.Equal(t, monday, WeekStart(day), "day %s", day.Format(DateLayout))
		require.Equal(t, sunday, WeekEnd(day), "day %s", day.Format(DateLayout))
	}
}

func TestWeekStartTruncatesTime(t *testing.T) {
	late := time.Date(2025, 6, 4, 23, 59, 59, 0, time.UTC)
	require.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), WeekStart(late))
}

func TestWeekdayString(t *testing.T) {
	require.Equal(t, "Monday", Monday.String())
	require.Equal(t, "Sunday", Sunday.String())
	require.Equal(t, "Invalid", Weekday(0).String())
	require.Equal(t, "Invalid", Weekday(8).String())
}

func TestWeekdayIsValid(t *testing.T) {
	require.True(t, Monday.IsValid())
	require.True(t, Sunday.IsValid())
	require.False(t, Weekday(0).IsValid())
	require.False(t, Weekday(8).IsValid())
}
