package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceDate_SlashFormats(t *testing.T) {
	d := CoerceDate("3/21/2025")
	require.True(t, d.Parsed)
	assert.Equal(t, 2025, d.Time.Year())
	assert.Equal(t, time.March, d.Time.Month())
	assert.Equal(t, 21, d.Time.Day())

	d = CoerceDate("2/10/25")
	require.True(t, d.Parsed)
	assert.Equal(t, 2025, d.Time.Year())
	assert.Equal(t, time.February, d.Time.Month())
	assert.Equal(t, 10, d.Time.Day())
}

func TestCoerceDate_ISO(t *testing.T) {
	d := CoerceDate("2025-03-10")
	require.True(t, d.Parsed)
	assert.Equal(t, "2025-03-10", d.String())
}

func TestCoerceDate_Unparseable(t *testing.T) {
	d := CoerceDate("sometime next week")
	assert.False(t, d.Parsed)
	assert.Equal(t, "sometime next week", d.String())
}

func TestCoerceDate_Empty(t *testing.T) {
	d := CoerceDate("")
	assert.False(t, d.Parsed)
	assert.Equal(t, "", d.String())
}

func TestCoerceTime_Formats(t *testing.T) {
	tv := CoerceTime("11:00:00 AM")
	require.True(t, tv.Parsed)
	assert.Equal(t, "11:00:00", tv.String())

	tv = CoerceTime("11:00")
	require.True(t, tv.Parsed)
	assert.Equal(t, "11:00:00", tv.String())

	tv = CoerceTime("2:00 PM")
	require.True(t, tv.Parsed)
	assert.Equal(t, "14:00:00", tv.String())

	tv = CoerceTime("13:30:00")
	require.True(t, tv.Parsed)
	assert.Equal(t, "13:30:00", tv.String())
}

func TestCoerceTime_StrayMeridiem(t *testing.T) {
	// 24-hour clock with a trailing meridiem shows up in real rosters.
	tv := CoerceTime("1:00:00 PM")
	require.True(t, tv.Parsed)
	assert.Equal(t, "13:00:00", tv.String())
}

func TestCoerceTime_Unparseable(t *testing.T) {
	tv := CoerceTime("25:99")
	assert.False(t, tv.Parsed)
	assert.Equal(t, "25:99", tv.String())
}
