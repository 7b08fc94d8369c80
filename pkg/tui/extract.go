package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"coursectl/pkg/config"
	"coursectl/pkg/exporter"
	"coursectl/pkg/extractor"
	"coursectl/pkg/portal"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

const otherFile = "__other__"

// parseSections validates the section count typed into the form
func parseSections(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a whole number")
	}
	if n < 0 {
		return 0, fmt.Errorf("section count must not be negative")
	}
	return n, nil
}

// defaultOutputName derives "courses.json" style names from the chosen format
func defaultOutputName(format exporter.Format) string {
	return "courses." + string(format)
}

// RunExtractTUI runs the interactive flow for turning a saved portal page into a course list
func RunExtractTUI() error {
	fmt.Println(accentStyle.Render("Welcome to the coursectl Extractor!"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var path string

	if len(cfg.RecentFiles) > 0 {
		var fileOptions []huh.Option[string]
		for _, f := range cfg.RecentFiles {
			fileOptions = append(fileOptions, huh.NewOption(f, f))
		}
		fileOptions = append(fileOptions, huh.NewOption("📂 Another file...", otherFile))

		recentForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Which saved portal page?").
					Options(fileOptions...).
					Value(&path),
			),
		).WithTheme(GetTheme())

		if err := recentForm.Run(); err != nil {
			return err
		}
	}

	if path == "" || path == otherFile {
		path = ""
		pathForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Path to the saved admissions info page").
					Description("Save the page from your browser (Ctrl+S) and enter its location.").
					Placeholder("~/Downloads/admissions.html").
					Value(&path).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("path cannot be empty")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := pathForm.Run(); err != nil {
			return err
		}
	}
	path = expandHome(strings.TrimSpace(path))

	sectionsStr := strconv.Itoa(cfg.Sections)
	formatName := cfg.Format
	if _, err := exporter.ParseFormat(formatName); err != nil {
		formatName = string(exporter.FormatJSON)
	}

	var formatOptions []huh.Option[string]
	for _, f := range exporter.Formats {
		formatOptions = append(formatOptions, huh.NewOption(strings.ToUpper(string(f)), string(f)))
	}

	optionsForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sections per course").
				Description("Every enrolled course is listed once per section.").
				Value(&sectionsStr).
				Validate(func(s string) error {
					_, err := parseSections(s)
					return err
				}),

			huh.NewSelect[string]().
				Title("Output format").
				Options(formatOptions...).
				Value(&formatName),
		),
	).WithTheme(GetTheme())

	if err := optionsForm.Run(); err != nil {
		return err
	}

	sections, _ := parseSections(sectionsStr)
	format, _ := exporter.ParseFormat(formatName)

	outputFile := defaultOutputName(format)
	outputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := outputForm.Run(); err != nil {
		return err
	}

	var res extractor.Result
	var extractErr error

	_ = spinner.New().
		Title("Reading the enrollment table...").
		Action(func() {
			var table *portal.Table
			table, extractErr = portal.OpenTable(path, nil, portal.Options{Class: cfg.TableClass})
			if extractErr != nil {
				return
			}
			res, extractErr = extractor.ExtractFrom(table, sections)
		}).
		Run()

	if extractErr != nil {
		return extractErr
	}

	for _, f := range res.Failures {
		fmt.Println(warnStyle.Render(fmt.Sprintf("failed to match row %d: %s", f.Row, f.Text)))
	}

	if len(res.Records) == 0 {
		fmt.Println(errorStyle.Render("No enrolled courses found in that page!"))
		return nil
	}

	if err := exporter.WriteFile(outputFile, res.Records, format); err != nil {
		return err
	}

	config.RememberFile(cfg, path)
	if err := config.Save(cfg); err != nil {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("Could not remember %s: %v", path, err)))
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d course sections to %s", len(res.Records), outputFile)))
	if len(res.Failures) > 0 {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%d rows were skipped.", len(res.Failures))))
	}

	return nil
}

// expandHome resolves a leading "~/" since the path is typed, not shell expanded
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
