package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modlens/modlens/cmd/config"
	"github.com/modlens/modlens/internal/tui/explorer"
	"github.com/modlens/modlens/pkg/restree"
)

// NewTuiCmd creates the `modlens tui` command.
func NewTuiCmd() *cobra.Command {
	var (
		resultsFile string
		flat        bool
	)

	cmd := &cobra.Command{
		Use:   "tui [results-file]",
		Short: "Launch an interactive explorer for analysis results",
		Long: `Launch an interactive Terminal User Interface for browsing analysis
results as a workspace file tree. Issues can be deleted or marked complete;
both survive result reloads.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			if len(args) == 1 {
				resultsFile = args[0]
			}
			if resultsFile == "" {
				resultsFile = viper.GetString("results_file")
			}

			logger := config.NewLogger()

			reg, err := config.OpenRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			proj, err := config.OpenProject(reg)
			if err != nil {
				return err
			}

			opts := restree.Options{
				GroupByFile:     viper.GetBool("group_by_file") && !flat,
				GroupIssueKinds: viper.GetBool("group_issue_kinds"),
			}
			ascii := viper.GetBool("ascii") || os.Getenv("TERM") == "dumb"

			model := explorer.New(proj, reg, opts, logger, ascii)
			proj.OnResultsLoaded(model.Config().HandleResultsLoaded)
			proj.OnChanged(model.Config().HandleChanged)

			p := tea.NewProgram(model, tea.WithAltScreen())

			// Route deferred tree callbacks back onto the program's loop so
			// all mutation stays on the update goroutine.
			model.Config().SetScheduler(func(d time.Duration, fn func()) {
				time.AfterFunc(d, func() {
					p.Send(explorer.DeferredMsg{Fn: fn})
				})
			})

			if resultsFile != "" {
				if err := proj.LoadResultsFile(resultsFile); err != nil {
					return fmt.Errorf("load results: %w", err)
				}
			}

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&resultsFile, "results", "r", "", "Analysis results file to load")
	cmd.Flags().BoolVar(&flat, "flat", false, "List issues flat instead of grouped by file")

	return cmd
}
