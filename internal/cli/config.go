package cli

import (
	"fmt"

	"github.com/Davincible/rscodec/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the rscodec configuration and session",
		Long: `Show or reset the configuration file.

The file lives at $RSCODEC_CONFIG, $XDG_CONFIG_HOME/rscodec/config.json or
~/.config/rscodec/config.json and is created with defaults on first use.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cm, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), cm.GetConfig())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration and session file paths",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cm, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "config:  %s\n", cm.Path())
				fmt.Fprintf(cmd.OutOrStdout(), "session: %s\n", cm.SessionPath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Overwrite the configuration with defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				// an existing file may be invalid, so it is not loaded
				cm, err := config.NewDefaultConfigManager()
				if err != nil {
					return err
				}
				if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
					color.NoColor = true
				}
				if err := cm.SaveConfig(); err != nil {
					return err
				}
				green.Fprintf(cmd.OutOrStdout(), "✓ Wrote default configuration to %s\n", cm.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear-session",
			Short: "Delete the saved session codeword",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cm, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				store := sessionStore(cm)
				if !store.Exists() {
					fmt.Fprintln(cmd.OutOrStdout(), "No saved session")
					return nil
				}
				if err := store.Delete(); err != nil {
					return fmt.Errorf("failed to delete session: %w", err)
				}
				green.Fprintf(cmd.OutOrStdout(), "✓ Deleted session %s\n", store.Path())
				return nil
			},
		},
	)

	return cmd
}
