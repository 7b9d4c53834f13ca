package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/craftfile-labs/craftfile/internal/buildfile"
	"github.com/craftfile-labs/craftfile/internal/config"
	"github.com/craftfile-labs/craftfile/internal/engine"
)

var loadJSON bool

func init() {
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "Print the loaded entity graph as JSON")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a build description and print its entity graph",
	Long: `Load parses a build description through the reference engine delegate and
prints the resulting tools, nodes, tasks, and targets in declaration order.
On the first violation it prints the diagnostic and exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

// attributed is implemented by the engine entities that record their
// attribute pairs.
type attributed interface {
	Attributes() []buildfile.Property
}

func runLoad(cmd *cobra.Command, args []string) error {
	filename := args[0]

	version := config.Get(config.KeyEngineVersion)
	if version == "" {
		version = buildVersion
	}

	logger := newLogger(cmd.ErrOrStderr())
	delegate := engine.NewDelegate(logger, version)

	bf := buildfile.New(filename, delegate)
	if !bf.Load() {
		diags := delegate.Diagnostics()
		if len(diags) > 0 {
			d := diags[0]
			return fmt.Errorf("%s: %s error: %s", d.Filename, d.Kind, d.Message)
		}
		return fmt.Errorf("loading %s failed", filename)
	}

	if loadJSON {
		return printGraphJSON(cmd.OutOrStdout(), delegate, bf)
	}
	printGraph(cmd.OutOrStdout(), delegate, bf)
	return nil
}

func printGraph(w io.Writer, delegate *engine.Delegate, bf *buildfile.BuildFile) {
	if c := delegate.Client(); c != nil {
		fmt.Fprintf(w, "client: %s (version %d)\n", c.Name, c.Version)
		for _, p := range c.Properties {
			fmt.Fprintf(w, "  %s: %s\n", p.Key, p.Value)
		}
	}

	fmt.Fprintf(w, "tools (%d):\n", len(bf.ToolNames()))
	for _, name := range bf.ToolNames() {
		fmt.Fprintf(w, "  %s\n", name)
		tool, _ := bf.Tool(name)
		printAttributes(w, tool)
	}

	fmt.Fprintf(w, "nodes (%d):\n", len(bf.NodeNames()))
	for _, name := range bf.NodeNames() {
		node, _ := bf.Node(name)
		marker := ""
		if node.IsImplicit() {
			marker = " (implicit)"
		}
		fmt.Fprintf(w, "  %s%s\n", name, marker)
		printAttributes(w, node)
	}

	fmt.Fprintf(w, "tasks (%d):\n", len(bf.TaskNames()))
	for _, name := range bf.TaskNames() {
		task, _ := bf.Task(name)
		fmt.Fprintf(w, "  %s\n", name)
		if et, ok := task.(*engine.Task); ok {
			fmt.Fprintf(w, "    tool: %s\n", et.ToolName())
			fmt.Fprintf(w, "    inputs: %s\n", nodeNameList(et.Inputs()))
			fmt.Fprintf(w, "    outputs: %s\n", nodeNameList(et.Outputs()))
		}
		printAttributes(w, task)
	}

	fmt.Fprintf(w, "targets (%d):\n", len(bf.TargetNames()))
	for _, name := range bf.TargetNames() {
		target, _ := bf.Target(name)
		fmt.Fprintf(w, "  %s: %v\n", name, target.NodeNames())
	}
}

func printAttributes(w io.Writer, entity any) {
	a, ok := entity.(attributed)
	if !ok {
		return
	}
	for _, p := range a.Attributes() {
		fmt.Fprintf(w, "    %s: %s\n", p.Key, p.Value)
	}
}

func nodeNameList(nodes []buildfile.Node) string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name()
	}
	out, _ := json.Marshal(names)
	return string(out)
}

// graphJSON is the machine-readable shape of a loaded description.
type graphJSON struct {
	Client  *clientJSON           `json:"client,omitempty"`
	Tools   map[string]entityJSON `json:"tools"`
	Nodes   map[string]nodeJSON   `json:"nodes"`
	Tasks   map[string]taskJSON   `json:"tasks"`
	Targets map[string][]string   `json:"targets"`
}

type clientJSON struct {
	Name       string            `json:"name"`
	Version    uint32            `json:"version"`
	Properties map[string]string `json:"properties,omitempty"`
}

type entityJSON struct {
	Attributes map[string]string `json:"attributes,omitempty"`
}

type nodeJSON struct {
	Implicit   bool              `json:"implicit"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type taskJSON struct {
	Tool       string            `json:"tool"`
	Inputs     []string          `json:"inputs"`
	Outputs    []string          `json:"outputs"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func attributeMap(entity any) map[string]string {
	a, ok := entity.(attributed)
	if !ok {
		return nil
	}
	props := a.Attributes()
	if len(props) == 0 {
		return nil
	}
	m := make(map[string]string, len(props))
	for _, p := range props {
		m[p.Key] = p.Value
	}
	return m
}

func printGraphJSON(w io.Writer, delegate *engine.Delegate, bf *buildfile.BuildFile) error {
	g := graphJSON{
		Tools:   make(map[string]entityJSON),
		Nodes:   make(map[string]nodeJSON),
		Tasks:   make(map[string]taskJSON),
		Targets: make(map[string][]string),
	}

	if c := delegate.Client(); c != nil {
		props := make(map[string]string, len(c.Properties))
		for _, p := range c.Properties {
			props[p.Key] = p.Value
		}
		g.Client = &clientJSON{Name: c.Name, Version: c.Version, Properties: props}
	}

	for _, name := range bf.ToolNames() {
		tool, _ := bf.Tool(name)
		g.Tools[name] = entityJSON{Attributes: attributeMap(tool)}
	}
	for _, name := range bf.NodeNames() {
		node, _ := bf.Node(name)
		g.Nodes[name] = nodeJSON{Implicit: node.IsImplicit(), Attributes: attributeMap(node)}
	}
	for _, name := range bf.TaskNames() {
		task, _ := bf.Task(name)
		tj := taskJSON{Attributes: attributeMap(task)}
		if et, ok := task.(*engine.Task); ok {
			tj.Tool = et.ToolName()
			for _, n := range et.Inputs() {
				tj.Inputs = append(tj.Inputs, n.Name())
			}
			for _, n := range et.Outputs() {
				tj.Outputs = append(tj.Outputs, n.Name())
			}
		}
		g.Tasks[name] = tj
	}
	for _, name := range bf.TargetNames() {
		target, _ := bf.Target(name)
		g.Targets[name] = target.NodeNames()
	}

	out, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling entity graph: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
