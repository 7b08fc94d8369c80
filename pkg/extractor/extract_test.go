package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRows []string

func (s staticRows) Rows() []string { return s }

func TestExtract_PaddedRowKeepsTitleSpace(t *testing.T) {
	rows := []string{
		"Header",
		"  CSC10105 - Intro to Systems Enrolled  ",
		"garbage text",
	}

	res, err := Extract(rows, 2)
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{Code: "CSC10105 - Sec 1", Name: "Intro to Systems "},
		{Code: "CSC10105 - Sec 2", Name: "Intro to Systems "},
	}, res.Records)
	assert.Equal(t, []Failure{{Row: 2, Text: "garbage text"}}, res.Failures)
}

func TestExtract_TwoLetterSixDigitIDIsNotACourse(t *testing.T) {
	rows := []string{
		"Header",
		"  CS101005 - Intro to Systems Enrolled  ",
		"garbage text",
	}

	res, err := Extract(rows, 2)
	require.NoError(t, err)

	assert.Empty(t, res.Records)
	assert.Equal(t, []Failure{
		{Row: 1, Text: "  CS101005 - Intro to Systems Enrolled  "},
		{Row: 2, Text: "garbage text"},
	}, res.Failures)
}

func TestExtract_SkipsHeaderEvenWhenItMatches(t *testing.T) {
	rows := []string{
		"MATH10000 - Header Lookalike Enrolled",
		"ENGL20001 - Academic Writing Enrolled",
	}

	res, err := Extract(rows, 1)
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "ENGL20001 - Sec 1", res.Records[0].Code)
	assert.Equal(t, "Academic Writing ", res.Records[0].Name)
	assert.Empty(t, res.Failures)
}

func TestExtract_StripsTabsAndNewlines(t *testing.T) {
	rows := []string{
		"Course\tStatus",
		"SOFE\n30500\t-\tSoftware\nDesign\tEnrolled\n",
	}

	res, err := Extract(rows, 1)
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, Record{Code: "SOFE30500 - Sec 1", Name: "SoftwareDesign"}, res.Records[0])
}

func TestExtract_RowAndSectionOrder(t *testing.T) {
	rows := []string{
		"Header",
		"BIOL10100 - Biology I Enrolled",
		"not a course",
		"CHEM20200 -Organic ChemistryEnrolled",
		"BIOL10100 - Biology I Enrolled",
	}

	res, err := Extract(rows, 3)
	require.NoError(t, err)

	codes := make([]string, 0, len(res.Records))
	for _, r := range res.Records {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{
		"BIOL10100 - Sec 1", "BIOL10100 - Sec 2", "BIOL10100 - Sec 3",
		"CHEM20200 - Sec 1", "CHEM20200 - Sec 2", "CHEM20200 - Sec 3",
		"BIOL10100 - Sec 1", "BIOL10100 - Sec 2", "BIOL10100 - Sec 3",
	}, codes)
	assert.Equal(t, "Organic Chemistry", res.Records[3].Name)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 2, res.Failures[0].Row)
}

func TestExtract_OutputLengthIsSectionsTimesMatches(t *testing.T) {
	rows := []string{"Header", "ABC12345 - A Enrolled", "nope", "WXYZ54321 - B Enrolled", "ABCD1234 - short id Enrolled"}

	for _, sections := range []int{0, 1, 2, 4, 7} {
		res, err := Extract(rows, sections)
		require.NoError(t, err)
		assert.Len(t, res.Records, sections*2, "sections=%d", sections)
		assert.Len(t, res.Failures, 2, "sections=%d", sections)
	}
}

func TestExtract_ZeroSectionsYieldsEmptyNonNil(t *testing.T) {
	res, err := Extract([]string{"Header", "ABC12345 - A Enrolled"}, 0)
	require.NoError(t, err)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.Failures)
}

func TestExtract_NegativeSections(t *testing.T) {
	_, err := Extract([]string{"Header", "ABC12345 - A Enrolled"}, -1)
	require.ErrorIs(t, err, ErrInvalidSections)
}

func TestExtract_EmptyAndHeaderOnlyInput(t *testing.T) {
	for _, rows := range [][]string{nil, {}, {"Header"}} {
		res, err := Extract(rows, 4)
		require.NoError(t, err)
		assert.Empty(t, res.Records)
		assert.Empty(t, res.Failures)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	rows := []string{"Header", "ABC12345 - A Enrolled", "junk", "DEF67890 - B Enrolled"}

	first, err := Extract(rows, 2)
	require.NoError(t, err)
	second, err := Extract(rows, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractor_OnNoMatchCalledPerFailure(t *testing.T) {
	var got []Failure
	e := &Extractor{OnNoMatch: func(f Failure) { got = append(got, f) }}

	res, err := e.ExtractFrom(staticRows{"Header", "first bad", "ABC12345 - A Enrolled", "second bad"}, 1)
	require.NoError(t, err)

	assert.Equal(t, res.Failures, got)
	assert.Equal(t, []Failure{{Row: 1, Text: "first bad"}, {Row: 3, Text: "second bad"}}, got)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		id    string
		title string
		ok    bool
	}{
		{"three letters", "CSC10100 - Programming Enrolled", "CSC10100", "Programming ", true},
		{"four letters no spaces", "MATH10100-CalculusEnrolled", "MATH10100", "Calculus", true},
		{"surrounding text", "Status: ENGR10100 - Statics Enrolled 2024", "ENGR10100", "Statics ", true},
		{"nbsp separator", "ENGR10100\u00a0-\u00a0Statics Enrolled", "ENGR10100", "Statics ", true},
		{"title stops at next enrolled", "ABC12345 - Enrolled Studies Enrolled", "ABC12345", "Enrolled Studies ", true},
		{"missing enrolled", "ABC12345 - Dropped Course Withdrawn", "", "", false},
		{"lowercase id", "abc12345 - Lower Enrolled", "", "", false},
		{"two letters", "AB12345 - Short Enrolled", "", "", false},
		{"four digits", "ABCD1234 - Short Enrolled", "", "", false},
		{"six digits", "ABC123456 - Long Enrolled", "", "", false},
		{"blank title keeps space", "ABC12345 - Enrolled", "ABC12345", " ", true},
		{"no hyphen", "ABC12345 Title Enrolled", "", "", false},
		{"vertical tab separator", "ABC12345\v-\vTitle Enrolled", "ABC12345", "Title ", true},
		{"line separator around hyphen", "ABC12345\u2028-\ufeffTitle Enrolled", "ABC12345", "Title ", true},
		{"carriage return breaks title", "ABC12345 - Intro\rSystems Enrolled", "", "", false},
		{"paragraph separator breaks title", "ABC12345 - Intro\u2029Systems Enrolled", "", "", false},
		{"title after carriage return", "XYZ\rABC12345 - Systems Enrolled", "ABC12345", "Systems ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, title, ok := Match(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.title, title)
		})
	}
}
