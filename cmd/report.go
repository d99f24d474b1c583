package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modlens/modlens/cmd/config"
)

// NewReportCmd creates the `modlens report` command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <results-file>",
		Short: "Print a per-file summary of an analysis results file",
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

			fmt.Print(proj.Report())
			return nil
		},
	}

	return cmd
}
