package tui

import (
	"fmt"
	"strconv"
	"strings"

	"coursectl/pkg/config"
	"coursectl/pkg/exporter"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Default Sections per Course", "sections"),
						huh.NewOption("Set Enrollment Table Class", "table"),
						huh.NewOption("Set Default Output Format", "format"),
						huh.NewOption("Forget Recent Pages", "forget"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "sections":
			err = runSetSectionsTUI(cfg)
		case "table":
			err = runSetTableClassTUI(cfg)
		case "format":
			err = runSetFormatTUI(cfg)
		case "forget":
			cfg.RecentFiles = nil
			err = config.Save(cfg)
			if err == nil {
				fmt.Println(accentStyle.Render("\n✅ Recent pages cleared.\n"))
			}
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.coursectl.json) ---"))
			fmt.Printf("Sections per Course: %d\n", cfg.Sections)
			fmt.Printf("Table Class: %s\n", cfg.TableClass)
			fmt.Printf("Output Format: %s\n", cfg.Format)
			fmt.Printf("Recent Pages: %d\n", len(cfg.RecentFiles))
			fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

func runSetSectionsTUI(cfg *config.AppConfig) error {
	input := strconv.Itoa(cfg.Sections)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("How many sections should each course be expanded into?").
				Value(&input).
				Validate(func(s string) error {
					_, err := parseSections(s)
					return err
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Sections, _ = parseSections(input)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Courses will be expanded into %d sections.\n", cfg.Sections)))
	return nil
}

func runSetTableClassTUI(cfg *config.AppConfig) error {
	input := cfg.TableClass

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Class attribute of the enrollment table").
				Description(fmt.Sprintf("Leave empty to use %q.", config.DefaultTableClass)).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		input = config.DefaultTableClass
	}
	cfg.TableClass = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Reading tables with class: %s\n", input)))
	return nil
}

func runSetFormatTUI(cfg *config.AppConfig) error {
	selected := cfg.Format

	var options []huh.Option[string]
	for _, f := range exporter.Formats {
		options = append(options, huh.NewOption(strings.ToUpper(string(f)), string(f)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select the default output format").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Format = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Default output format changed to: %s\n", selected)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for coursectl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Registrar Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(GetCustomTheme(cfg.AccentColor).Focused.Title.Render("\n✅ The theme color is now saved.\n"))
	return nil
}

func validateHex(s string) error {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
