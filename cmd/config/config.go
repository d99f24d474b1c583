package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modlens/modlens/pkg/project"
	"github.com/modlens/modlens/pkg/workspace"
)

var cfgFile string

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "modlens")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MODLENS")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "modlens"))
	viper.SetDefault("project", "default")
	viper.SetDefault("group_by_file", true)
	viper.SetDefault("group_issue_kinds", false)
	viper.SetDefault("ascii", false)

	// Missing config file is fine; defaults and env cover local use.
	_ = viper.ReadInConfig()
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/modlens/config.yaml)")
	cmd.PersistentFlags().StringP("project", "P", "", "Project (configuration) name")
	_ = viper.BindPFlag("project", cmd.PersistentFlags().Lookup("project"))
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
}

// NewLogger builds the shared logger. It stays quiet unless there are
// issues, the TUI owns stdout.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// OpenRegistry opens the workspace registry in the configured data dir.
func OpenRegistry() (*workspace.Registry, error) {
	reg, err := workspace.NewRegistry(viper.GetString("data_dir"))
	if err != nil {
		return nil, fmt.Errorf("open workspace registry: %w", err)
	}
	return reg, nil
}

// OpenProject builds the configured project backed by the registry's
// database, so issue state and workspaces share one file.
func OpenProject(reg *workspace.Registry) (*project.Project, error) {
	store, err := project.NewStore(reg.DB())
	if err != nil {
		return nil, fmt.Errorf("open issue state store: %w", err)
	}
	return project.NewProject(viper.GetString("project"), store), nil
}
