package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contask/contask/configs"
	"github.com/contask/contask/internal/config"
	"github.com/contask/contask/internal/errors"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter contask.yaml",
		Long: `Create a starter contask.yaml command table in the watched
directory. Edit it to list the commands to run on change.`,
		Example: `  # Create contask.yaml in the current directory
  contask init

  # Create it in another project
  contask init -d ~/src/project

  # Overwrite an existing command table
  contask init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing contask.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	path := filepath.Join(directory, config.ConfigFileName)

	if config.Exists(directory) && !force {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("%s already exists", path), nil).
			WithSuggestion("pass --force to overwrite it")
	}

	if err := os.WriteFile(path, []byte(configs.CommandTableTemplate), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit the command table, then run 'contask' to start watching.")
	return nil
}
