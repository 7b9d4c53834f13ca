package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftfile-labs/craftfile/internal/buildfile"
)

func init() {
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Check a build description against the shape schema",
	Long: `Lint validates a build description against the embedded JSON Schema and
reports every shape violation it finds. The schema covers value shapes
only; section ordering and the tasks' first-key rule are enforced by
'load'.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	filename := args[0]

	result, err := buildfile.ValidateFile(filename)
	if err != nil {
		return fmt.Errorf("validating %s: %w", filename, err)
	}

	if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", filename)
		return nil
	}

	for _, issue := range result.Issues {
		path := issue.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s (%s)\n", filename, path, issue.Message, issue.Keyword)
	}
	return fmt.Errorf("%d issue(s) found in %s", len(result.Issues), filename)
}
