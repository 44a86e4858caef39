package internal

import (
	"testing"

	"github.com/mahlburgc/lorabridge/internal/radio"
	"github.com/stretchr/testify/require"
)

func TestParseParamsDefaults(t *testing.T) {
	params, err := parseParams(nil)
	require.NoError(t, err)
	require.Equal(t, defaultParams, params)
}

func TestParseParamsOverrides(t *testing.T) {
	data := []byte(`
# private channel of the field kit
frequency = 433000000
spreading_factor = 9
sync_word = 42
`)
	params, err := parseParams(data)
	require.NoError(t, err)

	require.Equal(t, radio.Params{
		Frequency:       433000000,
		SpreadingFactor: 9,
		Bandwidth:       defaultParams.Bandwidth,
		CodingRate:      defaultParams.CodingRate,
		SyncWord:        42,
	}, params)
}

func TestParseParamsRejectsGarbage(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"missing equals", "frequency 433000000"},
		{"unknown key", "channel=3"},
		{"non numeric value", "frequency=high"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseParams([]byte(tc.data))
			require.Error(t, err)
		})
	}
}
