package engine

import (
	"github.com/craftfile-labs/craftfile/internal/buildfile"
)

// attrMap stores string attributes preserving first-set key order.
// Re-setting a key overwrites its value in place.
type attrMap struct {
	keys   []string
	values map[string]string
}

func (m *attrMap) set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *attrMap) list() []buildfile.Property {
	out := make([]buildfile.Property, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, buildfile.Property{Key: k, Value: m.values[k]})
	}
	return out
}

// Tool is a generic tool that accepts any attribute and produces generic
// tasks. Configuration accumulates across repeated declarations of the
// same tool name.
type Tool struct {
	name  string
	attrs attrMap
}

// NewTool creates a generic tool with the given name.
func NewTool(name string) *Tool {
	return &Tool{name: name}
}

// Name returns the tool's name.
func (t *Tool) Name() string { return t.name }

// ConfigureAttribute records the attribute. It never rejects.
func (t *Tool) ConfigureAttribute(key, value string) bool {
	t.attrs.set(key, value)
	return true
}

// CreateTask creates a generic task bound to this tool.
func (t *Tool) CreateTask(name string) buildfile.Task {
	return &Task{name: name, toolName: t.name}
}

// Attributes returns the accumulated attributes in first-set order.
func (t *Tool) Attributes() []buildfile.Property { return t.attrs.list() }

// PhonyTool is the built-in virtual grouping tool. It carries no
// attributes and rejects any that a build description tries to set.
type PhonyTool struct {
	Tool
}

// NewPhonyTool creates the phony tool.
func NewPhonyTool() *PhonyTool {
	return &PhonyTool{Tool{name: "phony"}}
}

// ConfigureAttribute rejects every attribute; phony tasks have none.
func (t *PhonyTool) ConfigureAttribute(key, value string) bool {
	return false
}

// Node is a generic build node that records its attributes.
type Node struct {
	name     string
	implicit bool
	attrs    attrMap
}

// NewNode creates a node. The implicit flag is fixed for the node's
// lifetime.
func NewNode(name string, isImplicit bool) *Node {
	return &Node{name: name, implicit: isImplicit}
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// IsImplicit reports whether the node was first introduced by a task
// reference.
func (n *Node) IsImplicit() bool { return n.implicit }

// ConfigureAttribute records the attribute. It never rejects.
func (n *Node) ConfigureAttribute(key, value string) bool {
	n.attrs.set(key, value)
	return true
}

// Attributes returns the accumulated attributes in first-set order.
func (n *Node) Attributes() []buildfile.Property { return n.attrs.list() }

// Task is a generic task that records its tool, node lists, and
// attributes.
type Task struct {
	name     string
	toolName string
	inputs   []buildfile.Node
	outputs  []buildfile.Node
	attrs    attrMap
}

// Name returns the task's name.
func (t *Task) Name() string { return t.name }

// ToolName returns the name of the tool that created the task.
func (t *Task) ToolName() string { return t.toolName }

// ConfigureAttribute records the attribute. It never rejects.
func (t *Task) ConfigureAttribute(key, value string) bool {
	t.attrs.set(key, value)
	return true
}

// ConfigureInputs records the ordered input node list.
func (t *Task) ConfigureInputs(nodes []buildfile.Node) { t.inputs = nodes }

// ConfigureOutputs records the ordered output node list.
func (t *Task) ConfigureOutputs(nodes []buildfile.Node) { t.outputs = nodes }

// Inputs returns the ordered input nodes.
func (t *Task) Inputs() []buildfile.Node { return t.inputs }

// Outputs returns the ordered output nodes.
func (t *Task) Outputs() []buildfile.Node { return t.outputs }

// Attributes returns the accumulated attributes in first-set order.
func (t *Task) Attributes() []buildfile.Property { return t.attrs.list() }
