package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: TimeOfDay{0, 0}},
		{name: "morning", input: "09:30", want: TimeOfDay{9, 30}},
		{name: "last minute of day", input: "23:59", want: TimeOfDay{23, 59}},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "missing zero padding", input: "9:30", wantErr: true},
		{name: "space padded hour", input: " 9:30", wantErr: true},
		{name: "not a time", input: "banana", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:05", "12:00", "19:45", "23:59"} {
		parsed, err := ParseTimeOfDay(s)
		require.NoError(t, err)
		assert.Equal(t, s, parsed.String())
	}
}

func TestParseDateStamp(t *testing.T) {
	d, err := ParseDateStamp("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", d.String())

	_, err = ParseDateStamp("06/01/2025")
	require.Error(t, err)
	_, err = ParseDateStamp("2025-13-01")
	require.Error(t, err)
}

func TestNewIntervalRejectsDegenerate(t *testing.T) {
	_, err := NewInterval(MustTimeOfDay("10:00"), MustTimeOfDay("10:00"))
	require.Error(t, err)

	_, err = NewInterval(MustTimeOfDay("11:00"), MustTimeOfDay("10:00"))
	require.Error(t, err)

	iv, err := NewInterval(MustTimeOfDay("10:00"), MustTimeOfDay("10:01"))
	require.NoError(t, err)
	assert.Equal(t, 1, iv.DurationMinutes())
}

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := ParseInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestOverlapsSymmetry(t *testing.T) {
	pairs := []struct {
		a, b Interval
	}{
		{mustInterval(t, "09:00", "10:00"), mustInterval(t, "09:30", "11:00")},
		{mustInterval(t, "09:00", "10:00"), mustInterval(t, "10:00", "11:00")},
		{mustInterval(t, "09:00", "12:00"), mustInterval(t, "10:00", "11:00")},
		{mustInterval(t, "08:00", "09:00"), mustInterval(t, "13:00", "14:00")},
	}
	for _, p := range pairs {
		assert.Equal(t, p.a.Overlaps(p.b), p.b.Overlaps(p.a), "overlap must be symmetric for %s / %s", p.a, p.b)
	}
}

func TestOverlapsBackToBackIsLegal(t *testing.T) {
	a := mustInterval(t, "09:00", "10:00")
	b := mustInterval(t, "10:00", "11:00")
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestOverlapsSelf(t *testing.T) {
	a := mustInterval(t, "09:00", "10:00")
	assert.True(t, a.Overlaps(a))
}

func TestOverlapsContainment(t *testing.T) {
	outer := mustInterval(t, "09:00", "17:00")
	inner := mustInterval(t, "12:00", "13:00")
	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}
