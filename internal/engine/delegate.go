package engine

import (
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/craftfile-labs/craftfile/internal/buildfile"
)

// RequiresProperty is the client property holding a semver constraint the
// engine version must satisfy, e.g. "requires: >=1.2.0".
const RequiresProperty = "requires"

// Client holds the parsed client section of a loaded build description.
type Client struct {
	Name       string
	Version    uint32
	Properties []buildfile.Property
}

// Delegate is the reference buildfile.Delegate. It supplies generic tools
// and nodes, records diagnostics for later inspection, and logs the
// advisory notifications.
type Delegate struct {
	logger  *slog.Logger
	version string

	client      *Client
	diagnostics []buildfile.Diagnostic
}

// NewDelegate creates a delegate logging to logger and advertising the
// given engine version for client compatibility checks.
func NewDelegate(logger *slog.Logger, version string) *Delegate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Delegate{logger: logger, version: version}
}

// Error records the diagnostic and logs it.
func (d *Delegate) Error(diag buildfile.Diagnostic) {
	d.diagnostics = append(d.diagnostics, diag)
	d.logger.Error("build description error",
		"file", diag.Filename, "kind", diag.Kind.String(), "message", diag.Message)
}

// Diagnostics returns the diagnostics recorded so far, oldest first. A
// successful load leaves it empty.
func (d *Delegate) Diagnostics() []buildfile.Diagnostic { return d.diagnostics }

// Client returns the parsed client section, or nil if ConfigureClient was
// never reached.
func (d *Delegate) Client() *Client { return d.client }

// ConfigureClient records the client section. If a "requires" property is
// present it is parsed as a semver constraint and checked against the
// engine version; an unparseable or unsatisfied constraint fails the load.
func (d *Delegate) ConfigureClient(name string, version uint32, properties []buildfile.Property) bool {
	for _, p := range properties {
		if p.Key != RequiresProperty {
			continue
		}
		if !d.checkRequirement(p.Value) {
			return false
		}
	}
	d.client = &Client{Name: name, Version: version, Properties: properties}
	d.logger.Debug("configured client", "name", name, "version", version,
		"properties", len(properties))
	return true
}

func (d *Delegate) checkRequirement(constraint string) bool {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		d.logger.Warn("invalid engine requirement", "requires", constraint, "error", err)
		return false
	}
	v, err := semver.NewVersion(strings.TrimPrefix(d.version, "v"))
	if err != nil {
		d.logger.Warn("engine version is not semver", "version", d.version, "error", err)
		return false
	}
	if !c.Check(v) {
		d.logger.Warn("engine version does not satisfy client requirement",
			"version", d.version, "requires", constraint)
		return false
	}
	return true
}

// LookupTool returns the tool implementation for the given name. The
// "phony" name maps to the built-in virtual grouping tool; every other
// name gets a generic recording tool.
func (d *Delegate) LookupTool(name string) (buildfile.Tool, bool) {
	if name == "phony" {
		return NewPhonyTool(), true
	}
	return NewTool(name), true
}

// LookupNode returns a generic recording node.
func (d *Delegate) LookupNode(name string, isImplicit bool) buildfile.Node {
	return NewNode(name, isImplicit)
}

// LoadedTarget logs the notification.
func (d *Delegate) LoadedTarget(name string, target *buildfile.Target) {
	d.logger.Debug("loaded target", "name", name, "nodes", len(target.NodeNames()))
}

// LoadedTask logs the notification.
func (d *Delegate) LoadedTask(name string, task buildfile.Task) {
	d.logger.Debug("loaded task", "name", name)
}
