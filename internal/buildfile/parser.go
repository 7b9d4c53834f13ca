package buildfile

import (
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// parser walks one document's syntax tree and populates the registries.
// It is single-use: the first violation reports a diagnostic through the
// delegate and halts the walk with no rollback.
type parser struct {
	filename string
	delegate Delegate

	tools   *registry[Tool]
	nodes   *registry[Node]
	tasks   *registry[Task]
	targets *registry[*Target]
}

func newParser(filename string, delegate Delegate) *parser {
	return &parser{
		filename: filename,
		delegate: delegate,
		tools:    newRegistry[Tool](),
		nodes:    newRegistry[Node](),
		tasks:    newRegistry[Task](),
		targets:  newRegistry[*Target](),
	}
}

func (p *parser) error(kind Kind, message string) {
	p.delegate.Error(Diagnostic{Filename: p.filename, Kind: kind, Message: message})
}

// isScalar reports whether the node is a non-null string leaf. YAML nulls
// decode as scalar nodes tagged !!null and are rejected like any other
// unsupported kind.
func isScalar(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag != "!!null"
}

func isScalarString(n *yaml.Node, value string) bool {
	return isScalar(n) && n.Value == value
}

// getOrCreateTool returns the registered tool for name, asking the
// delegate to create it on first use. A tool the delegate cannot create is
// a schema error.
func (p *parser) getOrCreateTool(name string) (Tool, bool) {
	if tool, ok := p.tools.get(name); ok {
		return tool, true
	}
	tool, ok := p.delegate.LookupTool(name)
	if !ok {
		p.error(KindSchema, "invalid tool type in 'tools' map")
		return nil, false
	}
	p.tools.insert(name, tool)
	return tool, true
}

// getOrCreateNode returns the registered node for name, asking the
// delegate to create it on first use. Node creation cannot fail; the
// isImplicit flag only matters on the creating reference.
func (p *parser) getOrCreateNode(name string, isImplicit bool) Node {
	if node, ok := p.nodes.get(name); ok {
		return node
	}
	node := p.delegate.LookupNode(name, isImplicit)
	p.nodes.insert(name, node)
	return node
}

// section binds a top-level key to its parser. The root walk consumes
// sections by cursor position, so the order of the table is normative.
type section struct {
	key   string
	parse func(entries []*yaml.Node) bool
}

// parseRoot validates the top-level mapping with a single forward cursor
// over its entries: the mandatory client section first, then each optional
// section in fixed order, then nothing.
func (p *parser) parseRoot(root *yaml.Node) bool {
	if root.Kind != yaml.MappingNode {
		p.error(KindStructure, "unexpected top-level node")
		return false
	}
	entries := root.Content

	// The first entry must be the client section.
	if len(entries) == 0 || !isScalarString(entries[0], "client") {
		p.error(KindSchema, "expected initial mapping key 'client'")
		return false
	}
	if entries[1].Kind != yaml.MappingNode {
		p.error(KindStructure, "unexpected 'client' value (expected map)")
		return false
	}
	if !p.parseClientMapping(entries[1].Content) {
		return false
	}
	cursor := 2

	sections := []section{
		{"tools", p.parseToolsMapping},
		{"targets", p.parseTargetsMapping},
		{"nodes", p.parseNodesMapping},
		{"tasks", p.parseTasksMapping},
	}
	for _, s := range sections {
		if cursor >= len(entries) || !isScalarString(entries[cursor], s.key) {
			continue // section absent
		}
		if entries[cursor+1].Kind != yaml.MappingNode {
			p.error(KindStructure, fmt.Sprintf("unexpected '%s' value (expected map)", s.key))
			return false
		}
		if !s.parse(entries[cursor+1].Content) {
			return false
		}
		cursor += 2
	}

	// A misordered section is indistinguishable from an unrecognized one
	// at this point; both are trailing entries.
	if cursor < len(entries) {
		p.error(KindSchema, "unexpected trailing top-level section")
		return false
	}
	return true
}

func (p *parser) parseClientMapping(entries []*yaml.Node) bool {
	var name string
	var version uint32
	var properties []Property

	for i := 0; i < len(entries); i += 2 {
		key, value := entries[i], entries[i+1]
		if !isScalar(key) {
			p.error(KindStructure, "invalid key type in 'client' map")
			return false
		}
		if !isScalar(value) {
			p.error(KindStructure, "invalid value type in 'client' map")
			return false
		}

		switch key.Value {
		case "name":
			name = value.Value
		case "version":
			v, err := strconv.ParseUint(value.Value, 10, 32)
			if err != nil {
				p.error(KindSchema, "invalid version number in 'client' map")
				return false
			}
			version = uint32(v)
		default:
			properties = append(properties, Property{Key: key.Value, Value: value.Value})
		}
	}

	if !p.delegate.ConfigureClient(name, version, properties) {
		p.error(KindSemantic, "unable to configure client")
		return false
	}
	return true
}

func (p *parser) parseToolsMapping(entries []*yaml.Node) bool {
	for i := 0; i < len(entries); i += 2 {
		key, value := entries[i], entries[i+1]
		if !isScalar(key) {
			p.error(KindStructure, "invalid key type in 'tools' map")
			return false
		}
		if value.Kind != yaml.MappingNode {
			p.error(KindStructure, "invalid value type in 'tools' map")
			return false
		}

		tool, ok := p.getOrCreateTool(key.Value)
		if !ok {
			return false
		}

		attrs := value.Content
		for j := 0; j < len(attrs); j += 2 {
			attrKey, attrValue := attrs[j], attrs[j+1]
			if !isScalar(attrKey) {
				p.error(KindStructure, "invalid key type in 'tools' map")
				return false
			}
			if !isScalar(attrValue) {
				p.error(KindStructure, "invalid value type in 'tools' map")
				return false
			}
			if !tool.ConfigureAttribute(attrKey.Value, attrValue.Value) {
				p.error(KindSemantic, fmt.Sprintf("unable to configure tool '%s'", key.Value))
				return false
			}
		}
	}
	return true
}

func (p *parser) parseTargetsMapping(entries []*yaml.Node) bool {
	for i := 0; i < len(entries); i += 2 {
		key, value := entries[i], entries[i+1]
		if !isScalar(key) {
			p.error(KindStructure, "invalid key type in 'targets' map")
			return false
		}
		if value.Kind != yaml.SequenceNode {
			p.error(KindStructure, "invalid value type in 'targets' map")
			return false
		}

		target := NewTarget(key.Value)
		for _, item := range value.Content {
			if !isScalar(item) {
				p.error(KindStructure, "invalid node type in 'targets' map")
				return false
			}
			target.addNodeName(item.Value)
		}

		// Advisory notification before the registry insert; a repeated
		// name replaces the prior entry.
		p.delegate.LoadedTarget(key.Value, target)
		p.targets.insert(key.Value, target)
	}
	return true
}

func (p *parser) parseNodesMapping(entries []*yaml.Node) bool {
	for i := 0; i < len(entries); i += 2 {
		key, value := entries[i], entries[i+1]
		if !isScalar(key) {
			p.error(KindStructure, "invalid key type in 'nodes' map")
			return false
		}
		if value.Kind != yaml.MappingNode {
			p.error(KindStructure, "invalid value type in 'nodes' map")
			return false
		}

		// An explicit declaration; the node may already exist implicitly,
		// in which case its attributes accumulate on the one instance.
		node := p.getOrCreateNode(key.Value, false)

		attrs := value.Content
		for j := 0; j < len(attrs); j += 2 {
			attrKey, attrValue := attrs[j], attrs[j+1]
			if !isScalar(attrKey) {
				p.error(KindStructure, "invalid key type in 'nodes' map")
				return false
			}
			if !isScalar(attrValue) {
				p.error(KindStructure, "invalid value type in 'nodes' map")
				return false
			}
			if !node.ConfigureAttribute(attrKey.Value, attrValue.Value) {
				p.error(KindSemantic, fmt.Sprintf("unable to configure node '%s'", key.Value))
				return false
			}
		}
	}
	return true
}

// parseNodeList resolves a sequence of scalar node names to shared node
// identities, creating missing nodes as implicit.
func (p *parser) parseNodeList(items []*yaml.Node, context string) ([]Node, bool) {
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		if !isScalar(item) {
			p.error(KindStructure, fmt.Sprintf("invalid node type in '%s' task key", context))
			return nil, false
		}
		nodes = append(nodes, p.getOrCreateNode(item.Value, true))
	}
	return nodes, true
}

func (p *parser) parseTasksMapping(entries []*yaml.Node) bool {
	for i := 0; i < len(entries); i += 2 {
		key, value := entries[i], entries[i+1]
		if !isScalar(key) {
			p.error(KindStructure, "invalid key type in 'tasks' map")
			return false
		}
		if value.Kind != yaml.MappingNode {
			p.error(KindStructure, "invalid value type in 'tasks' map")
			return false
		}

		name := key.Value
		attrs := value.Content

		// The first attribute must name the tool.
		if len(attrs) == 0 {
			p.error(KindSchema, "missing 'tool' key in 'task' map")
			return false
		}
		if !isScalarString(attrs[0], "tool") {
			p.error(KindSchema, "expected 'tool' initial key in 'tasks' map")
			return false
		}
		if !isScalar(attrs[1]) {
			p.error(KindStructure, "invalid 'tool' value type in 'tasks' map")
			return false
		}

		// The tool need not have been declared in 'tools'; it is created
		// on demand through the same path.
		tool, ok := p.getOrCreateTool(attrs[1].Value)
		if !ok {
			return false
		}
		task := tool.CreateTask(name)

		for j := 2; j < len(attrs); j += 2 {
			attrKey, attrValue := attrs[j], attrs[j+1]

			switch {
			case isScalarString(attrKey, "inputs"):
				if attrValue.Kind != yaml.SequenceNode {
					p.error(KindStructure, "invalid value type for 'inputs' task key")
					return false
				}
				nodes, ok := p.parseNodeList(attrValue.Content, "inputs")
				if !ok {
					return false
				}
				task.ConfigureInputs(nodes)

			case isScalarString(attrKey, "outputs"):
				if attrValue.Kind != yaml.SequenceNode {
					p.error(KindStructure, "invalid value type for 'outputs' task key")
					return false
				}
				nodes, ok := p.parseNodeList(attrValue.Content, "outputs")
				if !ok {
					return false
				}
				task.ConfigureOutputs(nodes)

			default:
				if !isScalar(attrKey) {
					p.error(KindStructure, "invalid key type in 'tasks' map")
					return false
				}
				if !isScalar(attrValue) {
					p.error(KindStructure, "invalid value type in 'tasks' map")
					return false
				}
				if !task.ConfigureAttribute(attrKey.Value, attrValue.Value) {
					p.error(KindSemantic, fmt.Sprintf("unable to configure task '%s'", name))
					return false
				}
			}
		}

		// Advisory notification before the registry insert; a repeated
		// name replaces the prior entry.
		p.delegate.LoadedTask(name, task)
		p.tasks.insert(name, task)
	}
	return true
}
