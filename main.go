package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/modlens/modlens/cmd"
	"github.com/modlens/modlens/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modlens",
		Short: "Explore modernization analysis results as a workspace file tree",
		Long: `modlens loads code-modernization analysis results (classifications and
hints per source file), resolves each file to a registered workspace, and
presents the findings as a collapsible file/folder tree.`,
		SilenceUsage: true,
	}

	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.AddCommand(cmd.NewTuiCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewReportCmd())
	rootCmd.AddCommand(cmd.NewLoadCmd())
	rootCmd.AddCommand(cmd.NewWorkspaceCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
