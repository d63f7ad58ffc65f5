package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want number
	}{
		{"json number", `14`, 14},
		{"numeric string", `"120.5"`, 120.5},
		{"padded string", `" 4 "`, 4},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"negative", `-3`, -3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n number
			require.NoError(t, json.Unmarshal([]byte(tc.in), &n))
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestNumber_UnmarshalJSON_Rejects(t *testing.T) {
	for _, in := range []string{
		`"NaN"`,
		`"nan"`,
		`"Inf"`,
		`"-Infinity"`,
		`"1e300"`,
		`"1e400"`,
		`1e300`,
		`"2147483648"`,
		`-2147483649`,
		`"abc"`,
		`true`,
	} {
		t.Run(in, func(t *testing.T) {
			var n number
			assert.Error(t, json.Unmarshal([]byte(in), &n))
		})
	}
}

func TestNumber_IntAtBounds(t *testing.T) {
	var n number
	require.NoError(t, json.Unmarshal([]byte(`"2147483647"`), &n))
	assert.Equal(t, 2147483647, n.Int())
}

func TestDate_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2024-07-01"`, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{`"2024-07-01T15:30"`, time.Date(2024, 7, 1, 15, 30, 0, 0, time.UTC)},
		{`"2024-07-01T15:30:00Z"`, time.Date(2024, 7, 1, 15, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var d date
			require.NoError(t, json.Unmarshal([]byte(tc.in), &d))
			assert.True(t, tc.want.Equal(d.Time()))
		})
	}

	var d date
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240701`), &d))
}
