package shift

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"8:05", 485},
		{"23:59", 1439},
		{" 12:30 ", 750},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got.Minutes(), c.in)
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "24:00", "12:60", "ab:cd", "12", "12:5", "-1:00", "12:00:00", "1200"} {
		_, err := ParseTimeOfDay(in)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, in)
	}
}

func TestTimeOfDay_StringIsZeroPadded(t *testing.T) {
	assert.Equal(t, "00:15", TimeOfDay(15).String())
	assert.Equal(t, "07:05", MustParseTimeOfDay("7:05").String())
	assert.Equal(t, "23:59", TimeOfDay(1439).String())
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		tod := TimeOfDay(m)
		parsed, err := ParseTimeOfDay(tod.String())
		require.NoError(t, err)
		require.Equal(t, tod, parsed)
	}
}

func TestTimeOfDay_AddWraps(t *testing.T) {
	assert.Equal(t, "00:15", MustParseTimeOfDay("23:30").Add(45).String())
	assert.Equal(t, "07:00", MustParseTimeOfDay("06:00").Add(1500).String())
	assert.Equal(t, "06:00", MustParseTimeOfDay("06:00").Add(MinutesPerDay*3).String())
	assert.Equal(t, "23:50", MustParseTimeOfDay("00:10").Add(-20).String())
}

func TestTimeOfDay_MinutesUntil(t *testing.T) {
	assert.Equal(t, 480, MustParseTimeOfDay("08:00").MinutesUntil(MustParseTimeOfDay("16:00")))
	assert.Equal(t, 480, MustParseTimeOfDay("22:00").MinutesUntil(MustParseTimeOfDay("06:00")))
	assert.Equal(t, MinutesPerDay, MustParseTimeOfDay("08:00").MinutesUntil(MustParseTimeOfDay("08:00")))
}

func TestTimeOfDay_JSON(t *testing.T) {
	var payload struct {
		At TimeOfDay `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"06:45"}`), &payload))
	assert.Equal(t, 405, payload.At.Minutes())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"06:45"}`, string(out))

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"at":"25:00"}`), &payload), ErrInvalidTimeFormat)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"at":630}`), &payload), ErrInvalidTimeFormat)
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("08:10:00"))
	assert.Equal(t, "08:10", tod.String())

	require.NoError(t, tod.Scan([]byte("22:00:00.000000")))
	assert.Equal(t, "22:00", tod.String())

	require.NoError(t, tod.Scan(int64(6*time.Hour/time.Microsecond)))
	assert.Equal(t, "06:00", tod.String())

	require.NoError(t, tod.Scan(time.Date(2000, 1, 1, 13, 45, 30, 0, time.UTC)))
	assert.Equal(t, "13:45", tod.String())

	assert.Error(t, tod.Scan(nil))
	assert.Error(t, tod.Scan(3.5))
}
