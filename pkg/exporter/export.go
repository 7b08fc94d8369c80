package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"coursectl/pkg/extractor"

	"go.yaml.in/yaml/v3"
)

// Format is an output encoding for course records
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists the supported formats in the order they are offered to users
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV}

// indent is four spaces per level, as consumers of the course list expect
const indent = "    "

// ParseFormat resolves a user-supplied format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		return FormatYAML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}

	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown format %q (supported: %s)", s, strings.Join(names, ", "))
}

// Write serializes the records to w in the given format
func Write(w io.Writer, records []extractor.Record, format Format) error {
	if records == nil {
		records = []extractor.Record{}
	}

	switch format {
	case FormatJSON, "":
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile serializes the records into a new file at path. A failed Close is
// reported, since buffered data may not have reached the disk.
func WriteFile(path string, records []extractor.Record, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(file, records, format); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, records []extractor.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	// Titles like "Calculus & Analysis" are kept readable
	enc.SetEscapeHTML(false)

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, records []extractor.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(len(indent))

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func writeCSV(w io.Writer, records []extractor.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"code", "name"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Code, r.Name}); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
