package buildfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// BuildFile is the façade the host constructs to load one build
// description. It owns the parser state and the four entity registries for
// the lifetime of the loaded description.
//
// A BuildFile is single-use and not safe for concurrent access. After a
// failed Load the registries hold whatever was constructed before the
// failure; the host may inspect them for diagnostics but must not treat
// them as a consistent description.
type BuildFile struct {
	filename string
	delegate Delegate
	parser   *parser
}

// New creates a build file for the named main input and the host delegate.
// Nothing is read until Load is called.
func New(filename string, delegate Delegate) *BuildFile {
	return &BuildFile{
		filename: filename,
		delegate: delegate,
		parser:   newParser(filename, delegate),
	}
}

// Delegate returns the delegate the build file was configured with.
func (bf *BuildFile) Delegate() Delegate { return bf.delegate }

// Load reads the main input file, parses its single YAML document, and
// populates the registries. It returns false on the first violation, after
// reporting exactly one diagnostic through the delegate.
func (bf *BuildFile) Load() bool {
	data, err := os.ReadFile(bf.filename)
	if err != nil {
		msg := err.Error()
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			msg = pathErr.Err.Error()
		}
		bf.parser.error(KindIO, fmt.Sprintf("unable to open '%s' (%s)", bf.filename, msg))
		return false
	}

	// The stream must contain exactly one document; only the first is
	// ever parsed, and a trailing document is diagnosed after it.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			bf.parser.error(KindStream, "missing document in stream")
		} else {
			bf.parser.error(KindStream, fmt.Sprintf("unable to parse '%s' (%v)", bf.filename, err))
		}
		return false
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			bf.parser.error(KindStream, "missing document in stream")
			return false
		}
		root = doc.Content[0]
	}

	if !bf.parser.parseRoot(root) {
		return false
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		bf.parser.error(KindStream, "unexpected additional document in stream")
		return false
	}
	return true
}

// ToolNames returns the names of all registered tools in declaration order.
func (bf *BuildFile) ToolNames() []string { return bf.parser.tools.Names() }

// Tool returns the registered tool with the given name.
func (bf *BuildFile) Tool(name string) (Tool, bool) { return bf.parser.tools.get(name) }

// NodeNames returns the names of all registered nodes in declaration order.
func (bf *BuildFile) NodeNames() []string { return bf.parser.nodes.Names() }

// Node returns the registered node with the given name.
func (bf *BuildFile) Node(name string) (Node, bool) { return bf.parser.nodes.get(name) }

// TaskNames returns the names of all registered tasks in declaration order.
func (bf *BuildFile) TaskNames() []string { return bf.parser.tasks.Names() }

// Task returns the registered task with the given name.
func (bf *BuildFile) Task(name string) (Task, bool) { return bf.parser.tasks.get(name) }

// TargetNames returns the names of all registered targets in declaration order.
func (bf *BuildFile) TargetNames() []string { return bf.parser.targets.Names() }

// Target returns the registered target with the given name.
func (bf *BuildFile) Target(name string) (*Target, bool) { return bf.parser.targets.get(name) }
