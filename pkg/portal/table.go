package portal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTableClass is the class of the enrollment table on the admissions info page.
const DefaultTableClass = "admissionsinfo_table"

// ErrTableNotFound is returned when no table carries the requested class at the requested index.
var ErrTableNotFound = errors.New("enrollment table not found")

// Options selects which table of the page to read.
type Options struct {
	Class string // Defaults to DefaultTableClass
	Index int    // Position among the tables carrying Class, 0 is the first
}

// Table is the text content of one HTML table, one entry per <tr>, header first.
type Table struct {
	rows []string
}

// Rows returns the row texts in document order.
func (t *Table) Rows() []string {
	return t.rows
}

// Len returns the number of rows, header included.
func (t *Table) Len() int {
	return len(t.rows)
}

// ParseTable parses a saved portal page and returns the rows of the selected table.
func ParseTable(r io.Reader, opts Options) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	class := opts.Class
	if class == "" {
		class = DefaultTableClass
	}

	// Class matching follows getElementsByClassName, so any element with the class counts.
	tables := doc.Find("." + escapeClass(class))
	if opts.Index < 0 || opts.Index >= tables.Length() {
		return nil, fmt.Errorf("%w: class %q index %d (%d found)", ErrTableNotFound, class, opts.Index, tables.Length())
	}

	var rows []string

	// Nested rows are included, the way getElementsByTagName("tr") sees them
	tables.Eq(opts.Index).Find("tr").Each(func(i int, sel *goquery.Selection) {
		rows = append(rows, rowText(sel))
	})

	return &Table{rows: rows}, nil
}

// OpenTable reads the page at path, or stdin when path is "-" or empty.
func OpenTable(path string, stdin io.Reader, opts Options) (*Table, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			return nil, fmt.Errorf("no page path given and no input to read from")
		}
		return ParseTable(stdin, opts)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer file.Close()

	return ParseTable(file, opts)
}

// rowText renders a row the way a browser's innerText does for a plain table:
// whitespace inside each cell collapsed, cells separated by tabs.
func rowText(row *goquery.Selection) string {
	cells := row.ChildrenFiltered("td, th")
	if cells.Length() == 0 {
		return collapseSpace(row.Text())
	}

	parts := make([]string, 0, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		parts = append(parts, collapseSpace(cell.Text()))
	})
	return strings.Join(parts, "\t")
}

// collapseSpace trims and collapses runs of HTML whitespace. Non-breaking spaces are kept.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isHTMLSpace), " ")
}

func isHTMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// escapeClass escapes characters that would otherwise end a CSS class selector.
func escapeClass(class string) string {
	var b strings.Builder
	for _, r := range class {
		switch {
		case r == '-' || r == '_',
			r >= '0' && r <= '9',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r > 0x7f:
			b.WriteRune(r)
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
