package storagetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ist = 5*time.Hour + 30*time.Minute

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "+05:30", want: ist},
		{in: "+0530", want: ist},
		{in: "-04:00", want: -4 * time.Hour},
		{in: "+03", want: 3 * time.Hour},
		{in: "Z", want: 0},
		{in: "", want: 0},
		{in: "05:30", wantErr: true},
		{in: "+25:00", wantErr: true},
		{in: "+05:75", wantErr: true},
		{in: "+5:3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOffset(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	n := New(ist)

	got, err := n.Normalize("2024-01-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 16:00:00", n.Format(got))

	// zoned input is converted to UTC first
	got, err = n.Normalize("2024-01-15T10:30:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 10:30:00", n.Format(got))

	// sub-second precision is dropped
	got, err = n.Normalize("2024-01-15T23:59:59.987Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16 05:29:59", n.Format(got))

	got, err = n.Normalize("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 05:30:00", n.Format(got))

	_, err = n.Normalize("not a date")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = n.Normalize("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRestore(t *testing.T) {
	n := New(ist)

	stored, err := n.Normalize("2024-01-15T20:00:00Z")
	require.NoError(t, err)

	// a rendered storage value comes back unchanged, however often it is sent
	again, err := n.Restore(n.Format(stored))
	require.NoError(t, err)
	assert.Equal(t, stored, again)
	again, err = n.Restore(n.Format(again))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16 01:30:00", n.Format(again))

	got, err := n.Restore("2024-01-15T20:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16 01:30:00", n.Format(got))

	_, err = n.Restore("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWindows(t *testing.T) {
	n := New(ist)
	// 2024-01-17 20:00 UTC is Thursday 2024-01-18 01:30 in storage terms
	now := time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)

	today := n.Day(now)
	assert.Equal(t, time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), today.Start)
	assert.Equal(t, time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC), today.End)

	yesterday := n.PreviousDay(now)
	assert.Equal(t, time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), yesterday.Start)
	assert.Equal(t, today.Start, yesterday.End)

	week := n.Week(now)
	assert.Equal(t, time.Monday, week.Start.Weekday())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), week.End)

	month := n.Month(now)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), month.Start)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), month.End)

	year := n.Year(now)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), year.Start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), year.End)
}

func TestWeekOnSunday(t *testing.T) {
	n := New(0)
	sunday := time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC)

	week := n.Week(sunday)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), week.Start)
	assert.True(t, week.Contains(sunday))
}

func TestTodayYesterdayMembership(t *testing.T) {
	n := New(ist)
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	createdToday := n.ToStorage(now)
	createdYesterday := n.ToStorage(now.Add(-24 * time.Hour))

	assert.True(t, n.Day(now).Contains(createdToday))
	assert.False(t, n.Day(now).Contains(createdYesterday))
	assert.True(t, n.PreviousDay(now).Contains(createdYesterday))
	assert.False(t, n.PreviousDay(now).Contains(createdToday))
}

func TestDayRange(t *testing.T) {
	n := New(ist)
	start, err := ParseDay("2024-01-01")
	require.NoError(t, err)
	end, err := ParseDay("2024-01-31")
	require.NoError(t, err)

	w := DayRange(start, end)
	assert.True(t, w.Contains(time.Date(2024, 1, 31, 23, 59, 59, 999_000_000, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(start))

	shifted := n.StorageRange(w)
	assert.Equal(t, time.Date(2024, 1, 1, 5, 30, 0, 0, time.UTC), shifted.Start)
	assert.Equal(t, time.Date(2024, 2, 1, 5, 30, 0, 0, time.UTC), shifted.End)

	_, err = ParseDay("01/02/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
