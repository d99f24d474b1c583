package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modlens/modlens/cmd/config"
	"github.com/modlens/modlens/pkg/workspace"
)

// NewWorkspaceCmd creates the `modlens workspace` command group.
func NewWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Short:   "Manage registered workspace roots",
		Aliases: []string{"ws"},
	}

	cmd.AddCommand(newWorkspaceAddCmd())
	cmd.AddCommand(newWorkspaceListCmd())
	cmd.AddCommand(newWorkspaceRemoveCmd())
	cmd.AddCommand(newWorkspaceDetectCmd())

	return cmd
}

func newWorkspaceAddCmd() *cobra.Command {
	var wsType string

	cmd := &cobra.Command{
		Use:   "add <path> [name]",
		Short: "Register a workspace root",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.OpenRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			name := filepath.Base(path)
			if len(args) == 2 {
				name = args[1]
			}

			ws := &workspace.Workspace{
				Name: name,
				Path: path,
				Type: workspace.Type(wsType),
			}
			if err := reg.Add(ws); err != nil {
				return fmt.Errorf("add workspace: %w", err)
			}

			fmt.Printf("Registered workspace %q at %s\n", name, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&wsType, "type", string(workspace.TypeDirectory), "Workspace type (git-repo, monorepo, directory)")

	return cmd
}

func newWorkspaceListCmd() *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered workspaces",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.OpenRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			workspaces, err := reg.List()
			if err != nil {
				return fmt.Errorf("list workspaces: %w", err)
			}

			if listJSON {
				data, err := json.MarshalIndent(workspaces, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal workspaces: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(workspaces) == 0 {
				fmt.Println("No workspaces registered. Use 'modlens workspace add <path>'.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tPATH")
			for _, ws := range workspaces {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ws.Name, ws.Type, ws.Path)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	return cmd
}

func newWorkspaceRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Remove a registered workspace",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.OpenRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Remove(args[0]); err != nil {
				return fmt.Errorf("remove workspace: %w", err)
			}
			fmt.Printf("Removed workspace %q\n", args[0])
			return nil
		},
	}
}

func newWorkspaceDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect (and auto-register) the workspace for the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.OpenRegistry()
			if err != nil {
				return err
			}
			defer reg.Close()

			ws, err := reg.DetectCurrent()
			if err != nil {
				return err
			}
			fmt.Printf("Workspace %q (%s) at %s\n", ws.Name, ws.Type, ws.Path)
			return nil
		},
	}
}
