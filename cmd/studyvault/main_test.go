package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "recall", "graph", "merge-candidates", "merge"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestGraphRequiresDocumentID(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"graph"})
	require.Error(t, root.Execute())
}

func TestParseDocumentID(t *testing.T) {
	_, err := parseDocumentID("nope")
	assert.Error(t, err)

	id, err := parseDocumentID(" 6f1c1f0e-4a57-4d8f-9d39-2f1b6b9a8c11 ")
	require.NoError(t, err)
	assert.Equal(t, "6f1c1f0e-4a57-4d8f-9d39-2f1b6b9a8c11", id.String())
}
