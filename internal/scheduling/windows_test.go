package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindows(t *testing.T) {
	windows, err := ParseWindows([]string{"08:00-20:00"})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "08:00", windows[0].Start.String())
	assert.Equal(t, "20:00", windows[0].End.String())

	windows, err = ParseWindows([]string{"09:00-12:00", "13:00-17:00", "18:00-21:00"})
	require.NoError(t, err)
	assert.Len(t, windows, 3)

	var cerr *ConfigurationError
	_, err = ParseWindows(nil)
	require.ErrorAs(t, err, &cerr)
	_, err = ParseWindows([]string{"08:00"})
	require.ErrorAs(t, err, &cerr)
	_, err = ParseWindows([]string{"20:00-08:00"})
	require.ErrorAs(t, err, &cerr)
	_, err = ParseWindows([]string{"8am-8pm"})
	require.ErrorAs(t, err, &cerr)
}
