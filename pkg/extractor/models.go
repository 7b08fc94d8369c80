package extractor

// Record is one section entry of a course, in the shape the event bot accepts
// for course uploads.
type Record struct {
	Code string `json:"code" yaml:"code"` // "CSC10105 - Sec 1"
	Name string `json:"name" yaml:"name"` // Title as captured, trailing spaces included
}

// Failure describes a row whose text did not look like "<ID> - <title>Enrolled".
type Failure struct {
	Row  int    // Index in the input rows, header is 0
	Text string // Normalized row text
}

// Result holds the records of one extraction in row order, then section order.
type Result struct {
	Records  []Record
	Failures []Failure
}

// RowSource exposes the ordered text of each row of a table, header first.
type RowSource interface {
	Rows() []string
}
