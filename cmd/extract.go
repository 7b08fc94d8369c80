package cmd

import (
	"fmt"

	"coursectl/pkg/config"
	"coursectl/pkg/exporter"
	"coursectl/pkg/extractor"
	"coursectl/pkg/portal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

var extractCmd = &cobra.Command{
	Use:   "extract [page.html]",
	Short: "Extract enrolled courses from a saved portal page",
	Long: `Read the admissions info page saved from the student portal, find the
enrollment table and print every enrolled course once per section.

The page is read from standard input when no file (or "-") is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}

		sections := cfg.Sections
		if cmd.Flags().Changed("sections") {
			sections, _ = cmd.Flags().GetInt("sections")
		}
		tableClass := cfg.TableClass
		if cmd.Flags().Changed("table-class") {
			tableClass, _ = cmd.Flags().GetString("table-class")
		}
		formatName := cfg.Format
		if cmd.Flags().Changed("format") {
			formatName, _ = cmd.Flags().GetString("format")
		}
		tableIndex, _ := cmd.Flags().GetInt("table-index")
		output, _ := cmd.Flags().GetString("output")
		strict, _ := cmd.Flags().GetBool("strict")
		quiet, _ := cmd.Flags().GetBool("quiet")

		format, err := exporter.ParseFormat(formatName)
		if err != nil {
			return err
		}

		table, err := portal.OpenTable(path, cmd.InOrStdin(), portal.Options{Class: tableClass, Index: tableIndex})
		if err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()

		ex := &extractor.Extractor{}
		if !quiet {
			ex.OnNoMatch = func(f extractor.Failure) {
				fmt.Fprintln(stderr, warnStyle.Render(fmt.Sprintf("failed to match row %d: %s", f.Row, f.Text)))
			}
		}

		res, err := ex.ExtractFrom(table, sections)
		if err != nil {
			return err
		}

		if output == "" || output == "-" {
			if err := exporter.Write(cmd.OutOrStdout(), res.Records, format); err != nil {
				return err
			}
		} else {
			if err := exporter.WriteFile(output, res.Records, format); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(stderr, "Extracted %d course sections to %s\n", len(res.Records), output)
			}
		}

		if strict && len(res.Failures) > 0 {
			return fmt.Errorf("%d of %d rows failed to match", len(res.Failures), table.Len()-1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntP("sections", "s", config.DefaultSections, "Number of sections to emit per course")
	extractCmd.Flags().String("table-class", portal.DefaultTableClass, "Class attribute of the enrollment table")
	extractCmd.Flags().Int("table-index", 0, "Which table carrying the class to read (0 is the first)")
	extractCmd.Flags().StringP("format", "f", config.DefaultFormat, "Output format (json, yaml, csv)")
	extractCmd.Flags().StringP("output", "o", "", "Output file path (default stdout)")
	extractCmd.Flags().Bool("strict", false, "Exit with an error if any row fails to match")
	extractCmd.Flags().BoolP("quiet", "q", false, "Do not report rows that fail to match")
}
