package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int64
		ok       bool
	}{
		{name: "typical", raw: "930s", expected: 930, ok: true},
		{name: "zero", raw: "0s", expected: 0, ok: true},
		{name: "large", raw: "86400s", expected: 86400, ok: true},
		{name: "letters", raw: "abc", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "suffix only", raw: "s", ok: false},
		{name: "missing suffix", raw: "930", ok: false},
		{name: "negative", raw: "-10s", ok: false},
		{name: "fractional", raw: "1.5s", ok: false},
		{name: "embedded garbage", raw: "12s34s", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDurationSeconds(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseInstantUnixMilli(t *testing.T) {
	ms, ok := ParseInstantUnixMilli("2026-05-01T09:00:00Z")
	require.True(t, ok)
	assert.Equal(t, int64(1777626000000), ms)

	_, ok = ParseInstantUnixMilli("not a timestamp")
	assert.False(t, ok)

	_, ok = ParseInstantUnixMilli("")
	assert.False(t, ok)
}

func TestFormatInstantRoundTrip(t *testing.T) {
	original := "2026-05-01T09:00:00Z"
	ms, ok := ParseInstantUnixMilli(original)
	require.True(t, ok)
	assert.Equal(t, original, FormatInstantUnixMilli(ms))
}

func TestEstimateDepartureUnixMilli(t *testing.T) {
	duration := int64(1200)

	estimate, ok := EstimateDepartureUnixMilli("2026-05-01T09:00:00Z", &duration)
	require.True(t, ok)

	arrivalMs, _ := ParseInstantUnixMilli("2026-05-01T09:00:00Z")
	assert.Equal(t, duration*1000, arrivalMs-estimate, "arrival minus estimate equals the duration in ms")
}

func TestEstimateDepartureAbsentInputs(t *testing.T) {
	duration := int64(1200)

	_, ok := EstimateDepartureUnixMilli("2026-05-01T09:00:00Z", nil)
	assert.False(t, ok, "absent duration is absent, not zero")

	_, ok = EstimateDepartureUnixMilli("garbage", &duration)
	assert.False(t, ok, "malformed arrival must short-circuit, not compare")
}
