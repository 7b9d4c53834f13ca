// Package engine provides the reference implementation of the buildfile
// delegate contract: generic tools, nodes, and tasks that record their
// configuration for inspection, plus client compatibility checking. The
// CLI loads build descriptions through this delegate; a real execution
// engine would supply its own.
package engine
