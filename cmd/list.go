package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modlens/modlens/cmd/config"
	"github.com/modlens/modlens/pkg/analysis"
)

// NewListCmd creates the `modlens list` command.
func NewListCmd() *cobra.Command {
	var (
		listJSON     bool
		listKind     string
		listSeverity string
		showSkipped  bool
	)

	cmd := &cobra.Command{
		Use:     "list <results-file>",
		Short:   "List the findings in an analysis results file",
		Aliases: []string{"ls"},
		Long: `List the findings in an analysis results file.

Examples:
  modlens list results.yaml                  # All findings
  modlens list results.yaml --kind hint      # Only hints
  modlens list results.yaml --severity high  # Only high severity`,
		Args: cobra.ExactArgs(1),
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

			var issues []*analysis.Issue
			var skipped []*analysis.Issue
			for _, iss := range append(append([]*analysis.Issue{}, results.Classifications...), results.Hints...) {
				if listKind != "" && string(iss.Kind) != listKind {
					continue
				}
				if listSeverity != "" && iss.Severity.String() != listSeverity {
					continue
				}
				if _, ok := reg.WorkspaceFor(iss.File); !ok {
					skipped = append(skipped, iss)
					continue
				}
				issues = append(issues, iss)
			}

			if listJSON {
				out := struct {
					Issues  []*analysis.Issue `json:"issues"`
					Skipped []*analysis.Issue `json:"skipped,omitempty"`
				}{Issues: issues}
				if showSkipped {
					out.Skipped = skipped
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal issues: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(issues) == 0 {
				fmt.Println("No findings matched.")
			} else {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tKIND\tSEVERITY\tFILE\tTITLE")
				for _, iss := range issues {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						iss.ID, iss.Kind, iss.Severity, iss.File, iss.Title)
				}
				w.Flush()
			}

			if showSkipped && len(skipped) > 0 {
				fmt.Printf("\n%d findings outside registered workspaces:\n", len(skipped))
				for _, iss := range skipped {
					fmt.Printf("  %s (%s)\n", iss.File, iss.ID)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&listKind, "kind", "", "Filter by kind (classification, hint)")
	cmd.Flags().StringVar(&listSeverity, "severity", "", "Filter by severity (low, medium, high, critical)")
	cmd.Flags().BoolVar(&showSkipped, "show-skipped", false, "Also show findings outside registered workspaces")

	return cmd
}
