package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{raw: "debug", want: zerolog.DebugLevel, ok: true},
		{raw: " WARN ", want: zerolog.WarnLevel, ok: true},
		{raw: "warning", want: zerolog.WarnLevel, ok: true},
		{raw: "off", want: zerolog.Disabled, ok: true},
		{raw: "", ok: false},
		{raw: "verbose", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := parseLevel(tc.raw)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for raw, want := range map[string]bool{"1": true, "true": true, "FALSE": false, "0": false} {
		got, ok := parseBool(raw)
		require.True(t, ok, raw)
		require.Equal(t, want, got, raw)
	}
	_, ok := parseBool("")
	require.False(t, ok)
	_, ok = parseBool("maybe")
	require.False(t, ok)
}

func TestProfileDefaults(t *testing.T) {
	runtime := defaultConfig(ProfileRuntime)
	require.Equal(t, zerolog.InfoLevel, runtime.Level)
	require.True(t, runtime.Timestamp)

	test := defaultConfig(ProfileTest)
	require.Equal(t, zerolog.DebugLevel, test.Level)
	require.False(t, test.Timestamp)
}
