package engine

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftfile-labs/craftfile/internal/buildfile"
)

// TestLoad_EndToEnd drives the loader through the reference delegate the
// way the CLI does.
func TestLoad_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.craftfile")
	require.NoError(t, os.WriteFile(path, []byte(`
client:
  name: basic
  version: 1
  requires: ">=1.0.0"
tools:
  cc:
    desc: C compiler
targets:
  all: [out/app]
nodes:
  out/app:
    kind: file
tasks:
  link:
    tool: cc
    inputs: [main.o]
    outputs: [out/app]
  all:
    tool: phony
    inputs: [out/app]
`), 0644))

	delegate := NewDelegate(slog.New(slog.DiscardHandler), "1.2.3")
	bf := buildfile.New(path, delegate)
	require.True(t, bf.Load(), "diagnostics: %v", delegate.Diagnostics())
	assert.Empty(t, delegate.Diagnostics())

	require.NotNil(t, delegate.Client())
	assert.Equal(t, "basic", delegate.Client().Name)

	assert.Equal(t, []string{"cc", "phony"}, bf.ToolNames())
	assert.Equal(t, []string{"out/app", "main.o"}, bf.NodeNames())
	assert.Equal(t, []string{"link", "all"}, bf.TaskNames())
	assert.Equal(t, []string{"all"}, bf.TargetNames())

	node, found := bf.Node("out/app")
	require.True(t, found)
	assert.False(t, node.IsImplicit())

	task, found := bf.Task("all")
	require.True(t, found)
	et := task.(*Task)
	assert.Equal(t, "phony", et.ToolName())
	require.Len(t, et.Inputs(), 1)
	assert.Same(t, node, et.Inputs()[0])
}

func TestLoad_EndToEnd_RequirementUnsatisfied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.craftfile")
	require.NoError(t, os.WriteFile(path, []byte(`
client:
  name: basic
  version: 1
  requires: ">=2.0.0"
`), 0644))

	delegate := NewDelegate(slog.New(slog.DiscardHandler), "1.2.3")
	bf := buildfile.New(path, delegate)
	require.False(t, bf.Load())

	diags := delegate.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, buildfile.KindSemantic, diags[0].Kind)
	assert.Equal(t, "unable to configure client", diags[0].Message)
}

func TestLoad_EndToEnd_PhonyAttributeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.craftfile")
	require.NoError(t, os.WriteFile(path, []byte(`
client:
  name: basic
  version: 1
tools:
  phony:
    nope: "1"
`), 0644))

	delegate := NewDelegate(slog.New(slog.DiscardHandler), "1.2.3")
	bf := buildfile.New(path, delegate)
	require.False(t, bf.Load())

	diags := delegate.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, buildfile.KindSemantic, diags[0].Kind)
	assert.Equal(t, "unable to configure tool 'phony'", diags[0].Message)
}
