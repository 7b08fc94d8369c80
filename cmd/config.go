package cmd

import (
	"fmt"

	"coursectl/pkg/config"
	"coursectl/pkg/exporter"
	"coursectl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage coursectl configuration",
	Long:  "View or edit your local defaults (section count, table class, output format) stored in ~/.coursectl.json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed := false

		if cmd.Flags().Changed("sections") {
			sections, _ := cmd.Flags().GetInt("sections")
			if sections < 0 {
				return fmt.Errorf("sections must not be negative, got %d", sections)
			}
			cfg.Sections = sections
			changed = true
		}
		if cmd.Flags().Changed("table-class") {
			cfg.TableClass, _ = cmd.Flags().GetString("table-class")
			changed = true
		}
		if cmd.Flags().Changed("format") {
			name, _ := cmd.Flags().GetString("format")
			format, err := exporter.ParseFormat(name)
			if err != nil {
				return err
			}
			cfg.Format = string(format)
			changed = true
		}
		if cmd.Flags().Changed("accent") {
			cfg.AccentColor, _ = cmd.Flags().GetString("accent")
			changed = true
		}

		if changed {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✅ Saved: %d sections, table class %q, format %s\n", cfg.Sections, cfg.TableClass, cfg.Format)
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().IntP("sections", "s", 0, "Default number of sections per course")
	configCmd.Flags().String("table-class", "", "Default class attribute of the enrollment table")
	configCmd.Flags().StringP("format", "f", "", "Default output format (json, yaml, csv)")
	configCmd.Flags().String("accent", "", "Accent color for the TUI (lipgloss color, e.g. 99 or #7D56F4)")
}
