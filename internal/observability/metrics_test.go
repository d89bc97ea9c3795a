package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ApiInflightInc()
	m.IncMerge("ok")
	m.IncExport("png", true)
	m.IncRecallQuestion(false)
	require.NoError(t, m.WritePrometheus(&bytes.Buffer{}))
}

func TestWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/documents/:id/merge", "200", 30*time.Millisecond)
	m.IncMerge("ok")
	m.IncMerge("insufficient_data")
	m.IncExport("mermaid", false)
	m.IncExport("mermaid", true)

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, `sv_api_requests_total{method="POST",route="/api/documents/:id/merge",status="200"} 1.000000`)
	assert.Contains(t, out, `sv_api_request_duration_seconds_bucket{method="POST",route="/api/documents/:id/merge",status="200",le="0.05"} 1`)
	assert.Contains(t, out, `sv_api_request_duration_seconds_bucket{method="POST",route="/api/documents/:id/merge",status="200",le="0.025"} 0`)
	assert.Contains(t, out, `sv_workspace_merges_total{outcome="insufficient_data"} 1.000000`)
	assert.Contains(t, out, `sv_graph_exports_total{format="mermaid",cache="hit"} 1.000000`)
	assert.True(t, strings.Index(out, `cache="hit"`) < strings.Index(out, `cache="miss"`), "series are sorted")
}

func TestLabelEscaping(t *testing.T) {
	assert.Equal(t, `{k="a\"b\\c\nd"}`, labelString([]string{"k"}, []string{"a\"b\\c\nd"}))
	assert.Equal(t, `{a="x",b="unknown"}`, labelString([]string{"a", "b"}, []string{"x"}))
	assert.Equal(t, `{le="1"}`, withLe("", "1"))
}
