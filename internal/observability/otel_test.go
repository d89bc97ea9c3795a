package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOtelSampleRatio(t *testing.T) {
	cases := map[string]float64{"": 0.1, "bogus": 0.1, "0.5": 0.5, "-2": 0, "7": 1}
	for raw, want := range cases {
		t.Setenv("OTEL_SAMPLER_RATIO", raw)
		assert.Equal(t, want, otelSampleRatio(), "raw=%q", raw)
	}
}

func TestOtelHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "authorization=abc, x-team = study ,broken,=nokey")
	assert.Equal(t, map[string]string{"authorization": "abc", "x-team": "study"}, otelHeaders())

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	assert.Nil(t, otelHeaders())
}
