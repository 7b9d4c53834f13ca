package cli

import (
	"github.com/spf13/cobra"

	"github.com/craftfile-labs/craftfile/internal/branding"
	"github.com/craftfile-labs/craftfile/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` loads declarative build descriptions into the entity graph
(tools, nodes, tasks, targets) consumed by a build-execution engine, and
reports the first schema violation precisely.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
