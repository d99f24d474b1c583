package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modlens/modlens/cmd/config"
)

// NewLoadCmd creates the `modlens load` command. It validates a results
// file, applies any persisted issue state, and reports what an explorer
// session would see.
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <results-file>",
		Short: "Validate an analysis results file and show effective counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.OpenRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			proj, err := config.OpenProject(reg)
			if err != nil {
				return err
			}
			if err := proj.LoadResultsFile(args[0]); err != nil {
				return err
			}

			results := proj.Results()
			resolved := 0
			for _, file := range results.Files() {
				if _, ok := reg.WorkspaceFor(file); ok {
					resolved++
				}
			}

			fmt.Printf("Loaded %s: %d classifications, %d hints across %d files (%d in registered workspaces)\n",
				args[0], len(results.Classifications), len(results.Hints), len(results.Files()), resolved)
			return nil
		},
	}

	return cmd
}
