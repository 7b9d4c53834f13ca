package buildfile

// Property is a single key/value pair from the client section. Pairs are
// kept in document order and are not deduplicated.
type Property struct {
	Key   string
	Value string
}

// Tool is a named factory for tasks. The concrete implementation is
// supplied by the host through Delegate.LookupTool; the loader only drives
// the operations below.
type Tool interface {
	// Name returns the tool's name as declared in the build description.
	Name() string

	// ConfigureAttribute applies one attribute pair. Configuration is
	// cumulative across declarations; returning false aborts the load.
	ConfigureAttribute(key, value string) bool

	// CreateTask creates a new task with the given name. The concrete task
	// variant is up to the tool.
	CreateTask(name string) Task
}

// Node is a named build input or output, either a file or a virtual
// artifact. Nodes referenced from several sites within one document share
// a single identity.
type Node interface {
	// Name returns the node's name.
	Name() string

	// IsImplicit reports whether the node was first introduced by a task
	// input/output reference rather than an explicit 'nodes' declaration.
	// The flag is fixed at creation time.
	IsImplicit() bool

	// ConfigureAttribute applies one attribute pair; returning false
	// aborts the load.
	ConfigureAttribute(key, value string) bool
}

// Task is a named unit of work created by exactly one tool. It records
// which nodes it relates to but does not own them.
type Task interface {
	// Name returns the task's name.
	Name() string

	// ConfigureAttribute applies one attribute pair; returning false
	// aborts the load.
	ConfigureAttribute(key, value string) bool

	// ConfigureInputs supplies the ordered list of input nodes.
	ConfigureInputs(nodes []Node)

	// ConfigureOutputs supplies the ordered list of output nodes.
	ConfigureOutputs(nodes []Node)
}

// Target is a named grouping of node names. The names are not resolved to
// Node objects here; resolution belongs to the execution engine.
type Target struct {
	name      string
	nodeNames []string
}

// NewTarget creates an empty target with the given name.
func NewTarget(name string) *Target {
	return &Target{name: name}
}

// Name returns the target's name.
func (t *Target) Name() string { return t.name }

// NodeNames returns the ordered list of node names the target groups.
func (t *Target) NodeNames() []string { return t.nodeNames }

func (t *Target) addNodeName(name string) {
	t.nodeNames = append(t.nodeNames, name)
}

// Delegate is the extension point through which the host supplies concrete
// entity implementations and receives diagnostics and notifications. All
// calls are synchronous and happen in strict document order during Load.
type Delegate interface {
	// Error reports a diagnostic for an aborting failure. It is called
	// exactly once per failed load.
	Error(d Diagnostic)

	// ConfigureClient receives the parsed client section. Returning false
	// fails the load.
	ConfigureClient(name string, version uint32, properties []Property) bool

	// LookupTool creates the tool for the given name. Returning false
	// means the tool type is unknown and fails the load. Ownership of the
	// returned instance transfers to the tool registry.
	LookupTool(name string) (Tool, bool)

	// LookupNode creates the node for the given name. It must not fail.
	LookupNode(name string, isImplicit bool) Node

	// LoadedTarget is an advisory notification fired after a target's node
	// list is fully built, before the target enters the registry.
	LoadedTarget(name string, target *Target)

	// LoadedTask is an advisory notification fired after a task is fully
	// configured, before the task enters the registry.
	LoadedTask(name string, task Task)
}
