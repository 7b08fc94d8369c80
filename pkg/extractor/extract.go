package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidSections is returned for a negative section count.
var ErrInvalidSections = errors.New("section count must not be negative")

// coursePattern matches "CSC10105 - Intro to Systems Enrolled" and captures the
// course identifier and the title preceding the first "Enrolled".
// Separator whitespace also covers \v, Zs, U+2028, U+2029 and U+FEFF as a
// browser does, and the title never crosses a line terminator.
var coursePattern = regexp.MustCompile(
	`([A-Z]{3,4}\d{5})` + wideSpace + `*-` + wideSpace + `*([^\r\n\x{2028}\x{2029}]+?)Enrolled`,
)

const wideSpace = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var rowStripper = strings.NewReplacer("\t", "", "\n", "")

// Normalize removes every tab and newline from a row's text.
func Normalize(text string) string {
	return rowStripper.Replace(text)
}

// Match reports the course identifier and title found in already normalized row text.
func Match(text string) (id, title string, ok bool) {
	m := coursePattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// SectionCode formats the code of one section of a course, e.g. "CSC10105 - Sec 3".
func SectionCode(id string, section int) string {
	return fmt.Sprintf("%s - Sec %d", id, section)
}

// Extractor turns table rows into course records.
type Extractor struct {
	// OnNoMatch, if set, is called once for every row that fails to match, in row order.
	OnNoMatch func(Failure)
}

// Extract skips the header row and expands every matching row into one record
// per section. Rows that do not match are reported in Result.Failures and
// never abort the extraction.
func (e *Extractor) Extract(rows []string, sections int) (Result, error) {
	if sections < 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidSections, sections)
	}

	res := Result{Records: []Record{}}

	for i := 1; i < len(rows); i++ {
		content := Normalize(rows[i])

		id, title, ok := Match(content)
		if !ok {
			f := Failure{Row: i, Text: content}
			res.Failures = append(res.Failures, f)
			if e != nil && e.OnNoMatch != nil {
				e.OnNoMatch(f)
			}
			continue
		}

		for sec := 1; sec <= sections; sec++ {
			res.Records = append(res.Records, Record{
				Code: SectionCode(id, sec),
				Name: title,
			})
		}
	}

	return res, nil
}

// ExtractFrom runs Extract over the rows of src.
func (e *Extractor) ExtractFrom(src RowSource, sections int) (Result, error) {
	return e.Extract(src.Rows(), sections)
}

// Extract is a convenience wrapper around an Extractor without hooks.
func Extract(rows []string, sections int) (Result, error) {
	return (&Extractor{}).Extract(rows, sections)
}

// ExtractFrom is a convenience wrapper around an Extractor without hooks.
func ExtractFrom(src RowSource, sections int) (Result, error) {
	return (&Extractor{}).ExtractFrom(src, sections)
}
