package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side identifies which ledger a record set came from
type Side string

const (
	// SideVendor is the vendor-supplied statement
	SideVendor Side = "vendor"
	// SideBooks is the internal bookkeeping export
	SideBooks Side = "books"
)

// String returns the string representation of Side
func (s Side) String() string {
	return string(s)
}

// IsValid checks if the side is valid
func (s Side) IsValid() bool {
	return s == SideVendor || s == SideBooks
}

// Opposite returns the other side
func (s Side) Opposite() Side {
	if s == SideVendor {
		return SideBooks
	}
	return SideVendor
}

// RawRecord is one row of an ingested file, keyed by column name. Values are
// kept as strings exactly as the ingestion collaborator delivered them;
// normalization happens later.
type RawRecord map[string]string

// RecordSet is a complete raw record set for one side: the header list in
// original left-to-right order plus every data row.
type RecordSet struct {
	Side    Side
	Source  string
	Headers []string
	Records []RawRecord
}

// NewRecordSet creates an empty RecordSet for the given side
func NewRecordSet(side Side, source string, headers []string) *RecordSet {
	return &RecordSet{
		Side:    side,
		Source:  source,
		Headers: headers,
		Records: make([]RawRecord, 0),
	}
}

// Append adds a raw record built from a field slice aligned with Headers.
// Short rows leave the trailing columns empty.
func (rs *RecordSet) Append(fields []string) {
	record := make(RawRecord, len(rs.Headers))
	for i, header := range rs.Headers {
		if i < len(fields) {
			record[header] = fields[i]
		} else {
			record[header] = ""
		}
	}
	rs.Records = append(rs.Records, record)
}

// Len returns the number of data rows in the set
func (rs *RecordSet) Len() int {
	return len(rs.Records)
}

// Record is a normalized record: a canonical key and an amount rounded to
// two places. One Record per input row that survived normalization.
type Record struct {
	Key    string
	Amount decimal.Decimal
}

// String returns a string representation of the Record
func (r *Record) String() string {
	return fmt.Sprintf("Record{Key: %s, Amount: %s}", r.Key, r.Amount.StringFixed(2))
}

// Status classifies a reconciliation row
type Status string

const (
	// StatusMatched means both sides agree within tolerance
	StatusMatched Status = "MATCHED"
	// StatusAmountMismatch means both sides have the key but amounts diverge
	StatusAmountMismatch Status = "AMOUNT_MISMATCH"
	// StatusMissingInVendor means the key exists only in the books
	StatusMissingInVendor Status = "MISSING_IN_VENDOR"
	// StatusMissingInBooks means the key exists only in the vendor statement
	StatusMissingInBooks Status = "MISSING_IN_BOOKS"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusMatched, StatusAmountMismatch, StatusMissingInVendor, StatusMissingInBooks:
		return true
	default:
		return false
	}
}

// Display returns the human-readable status label used in reports
func (s Status) Display() string {
	switch s {
	case StatusMatched:
		return "Matched"
	case StatusAmountMismatch:
		return "Amount Mismatch"
	case StatusMissingInVendor:
		return "Missing in Vendor"
	case StatusMissingInBooks:
		return "Missing in Books"
	default:
		return string(s)
	}
}

// IsException reports whether the status needs operator attention
func (s Status) IsException() bool {
	return s != StatusMatched
}

// Suggestion is a non-binding fuzzy-match candidate attached to an
// unmatched row. It never changes the row's status.
type Suggestion struct {
	CandidateKey string `json:"candidate_key"`
	Score        int    `json:"score"`
}

// String returns the report representation of the Suggestion
func (sg *Suggestion) String() string {
	return fmt.Sprintf("%s (%d%%)", sg.CandidateKey, sg.Score)
}

// Row is one line of the reconciliation result: one per canonical key present
// on either side. Missing-side amounts stay nil rather than defaulting to a
// value that could be confused with a real zero transaction.
type Row struct {
	Key          string
	VendorAmount *decimal.Decimal
	BooksAmount  *decimal.Decimal
	Variance     decimal.Decimal
	Status       Status
	Suggestion   *Suggestion
}

// HasVendor reports whether the vendor side carries this key
func (r *Row) HasVendor() bool {
	return r.VendorAmount != nil
}

// HasBooks reports whether the books side carries this key
func (r *Row) HasBooks() bool {
	return r.BooksAmount != nil
}

// String returns a string representation of the Row
func (r *Row) String() string {
	return fmt.Sprintf("Row{Key: %s, Vendor: %s, Books: %s, Variance: %s, Status: %s}",
		r.Key, FormatOptional(r.VendorAmount), FormatOptional(r.BooksAmount),
		r.Variance.StringFixed(2), r.Status)
}

// FormatOptional renders an optional amount for display, blank when absent
func FormatOptional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// WarningCode identifies a non-fatal data-quality finding
type WarningCode string

const (
	// WarnAmountParse marks a cell that could not be parsed and defaulted to zero
	WarnAmountParse WarningCode = "amount_parse_failure"
	// WarnEmptyKey marks a row whose identifier normalized to the empty string
	WarnEmptyKey WarningCode = "empty_key"
	// WarnDuplicateKey marks a key seen more than once within one side
	WarnDuplicateKey WarningCode = "duplicate_key"
	// WarnDroppedLine marks an extracted text line that did not match the grammar
	WarnDroppedLine WarningCode = "dropped_line"
)

// Warning records a lossy or suspicious event observed during a run. The
// contractual behavior (zero default, row exclusion, last-write-wins) is
// unchanged; warnings only make the loss visible.
type Warning struct {
	Code    WarningCode `json:"code"`
	Side    Side        `json:"side"`
	Line    int         `json:"line,omitempty"`
	Value   string      `json:"value,omitempty"`
	Message string      `json:"message"`
}

// String returns a log-friendly representation of the Warning
func (w Warning) String() string {
	parts := []string{string(w.Code), string(w.Side)}
	if w.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", w.Line))
	}
	parts = append(parts, w.Message)
	return strings.Join(parts, ": ")
}
