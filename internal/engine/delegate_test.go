package engine

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftfile-labs/craftfile/internal/buildfile"
)

func testDelegate(version string) *Delegate {
	return NewDelegate(slog.New(slog.DiscardHandler), version)
}

func TestConfigureClient_Records(t *testing.T) {
	d := testDelegate("1.0.0")
	props := []buildfile.Property{{Key: "vendor", Value: "acme"}}

	require.True(t, d.ConfigureClient("basic", 3, props))

	c := d.Client()
	require.NotNil(t, c)
	assert.Equal(t, "basic", c.Name)
	assert.Equal(t, uint32(3), c.Version)
	assert.Equal(t, props, c.Properties)
}

func TestConfigureClient_Requires(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		requires string
		want     bool
	}{
		{"satisfied", "1.2.0", ">=1.0.0", true},
		{"satisfied range", "1.2.0", ">=1.0.0 <2.0.0", true},
		{"unsatisfied", "0.9.0", ">=1.0.0", false},
		{"v prefix tolerated", "v1.2.0", ">=1.0.0", true},
		{"bad constraint", "1.2.0", "not-a-constraint", false},
		{"non-semver engine version", "dev", ">=1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDelegate(tt.version)
			got := d.ConfigureClient("x", 1, []buildfile.Property{
				{Key: RequiresProperty, Value: tt.requires},
			})
			assert.Equal(t, tt.want, got)
			if !tt.want {
				assert.Nil(t, d.Client(), "rejected client must not be recorded")
			}
		})
	}
}

func TestError_RecordsDiagnostics(t *testing.T) {
	d := testDelegate("1.0.0")
	diag := buildfile.Diagnostic{
		Filename: "build.craftfile",
		Kind:     buildfile.KindSchema,
		Message:  "unexpected trailing top-level section",
	}
	d.Error(diag)

	require.Len(t, d.Diagnostics(), 1)
	assert.Equal(t, diag, d.Diagnostics()[0])
}

func TestLookupTool_Generic(t *testing.T) {
	d := testDelegate("1.0.0")
	tool, ok := d.LookupTool("cc")
	require.True(t, ok)
	assert.Equal(t, "cc", tool.Name())

	assert.True(t, tool.ConfigureAttribute("desc", "C compiler"))
	task := tool.CreateTask("link")
	assert.Equal(t, "link", task.Name())
	assert.Equal(t, "cc", task.(*Task).ToolName())
}

func TestLookupTool_Phony(t *testing.T) {
	d := testDelegate("1.0.0")
	tool, ok := d.LookupTool("phony")
	require.True(t, ok)
	require.IsType(t, &PhonyTool{}, tool)

	assert.False(t, tool.ConfigureAttribute("anything", "x"),
		"phony tool must reject attributes")
	task := tool.CreateTask("all")
	assert.Equal(t, "phony", task.(*Task).ToolName())
}

func TestLookupNode(t *testing.T) {
	d := testDelegate("1.0.0")
	n := d.LookupNode("a.txt", true)
	assert.Equal(t, "a.txt", n.Name())
	assert.True(t, n.IsImplicit())

	m := d.LookupNode("b.txt", false)
	assert.False(t, m.IsImplicit())
}

func TestAttributes_OrderAndOverwrite(t *testing.T) {
	tool := NewTool("cc")
	tool.ConfigureAttribute("a", "1")
	tool.ConfigureAttribute("b", "2")
	tool.ConfigureAttribute("a", "3")

	assert.Equal(t, []buildfile.Property{
		{Key: "a", Value: "3"},
		{Key: "b", Value: "2"},
	}, tool.Attributes())
}

func TestTask_RecordsNodeLists(t *testing.T) {
	task := NewTool("cc").CreateTask("link").(*Task)
	in := []buildfile.Node{NewNode("a.o", true), NewNode("b.o", true)}
	out := []buildfile.Node{NewNode("app", true)}

	task.ConfigureInputs(in)
	task.ConfigureOutputs(out)

	assert.Equal(t, in, task.Inputs())
	assert.Equal(t, out, task.Outputs())
}
