package ingest

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/errors"
)

// Line-grammar ingestion for statements that arrive as paginated documents.
// The PDF text extraction itself is an upstream collaborator; this parser
// receives the extracted lines and applies a positional grammar to pull
// (invoice number, face value) pairs out of them. The grammar is
// program-specific and replaceable; lines that do not match are dropped and
// surfaced as warnings.

// Header names produced by line-grammar ingestion. They deliberately contain
// stock identifier/amount keywords so schema resolution works unchanged.
const (
	LineInvoiceColumn = "invoice_number"
	LineAmountColumn  = "face_value"
)

// LineGrammar describes one positional line format. Pattern must expose the
// invoice number and amount through the named capture groups invoice and
// amount.
type LineGrammar struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultLineGrammar matches the documented carrier-statement layout:
// <carrier-id>-<branch>-<sequence> <charge-type> <date-fields>
// <currency-code> <amount> <amount>.
func DefaultLineGrammar() *LineGrammar {
	return &LineGrammar{
		Name: "carrier-statement",
		Pattern: regexp.MustCompile(
			`^\s*(?P<invoice>[A-Z0-9]+-[A-Z0-9]+-[A-Z0-9]+)\s+\S+\s+.*?\s+[A-Z]{3}\s+(?P<amount>[-(]?[0-9][0-9,.]*\)?)\s+[-(]?[0-9][0-9,.]*\)?\s*$`),
	}
}

// Validate checks that the grammar exposes both required capture groups
func (g *LineGrammar) Validate() error {
	if g.Pattern == nil {
		return errors.ConfigurationError(errors.CodeMissingConfig, "line_grammar_pattern", nil)
	}
	hasInvoice, hasAmount := false, false
	for _, name := range g.Pattern.SubexpNames() {
		switch name {
		case "invoice":
			hasInvoice = true
		case "amount":
			hasAmount = true
		}
	}
	if !hasInvoice || !hasAmount {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "line_grammar_pattern",
			"pattern must define 'invoice' and 'amount' capture groups")
	}
	return nil
}

// ParseLines applies the grammar to each line and collects the matches into
// a raw record set with invoice_number and face_value columns. Non-matching
// non-blank lines are dropped; each drop is reported as a warning so the
// loss is visible without failing the run.
func ParseLines(lines []string, side models.Side, source string, grammar *LineGrammar) (*models.RecordSet, []models.Warning, error) {
	if grammar == nil {
		grammar = DefaultLineGrammar()
	}
	if err := grammar.Validate(); err != nil {
		return nil, nil, err
	}

	invoiceIdx := grammar.Pattern.SubexpIndex("invoice")
	amountIdx := grammar.Pattern.SubexpIndex("amount")

	set := models.NewRecordSet(side, source, []string{LineInvoiceColumn, LineAmountColumn})
	var warnings []models.Warning

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		match := grammar.Pattern.FindStringSubmatch(line)
		if match == nil {
			warnings = append(warnings, models.Warning{
				Code:    models.WarnDroppedLine,
				Side:    side,
				Line:    i + 1,
				Value:   truncate(line, 60),
				Message: "line does not match grammar " + grammar.Name + ", dropped",
			})
			continue
		}

		set.Append([]string{match[invoiceIdx], match[amountIdx]})
	}

	return set, warnings, nil
}

// ReadLines splits r into lines and parses them with the grammar
func ReadLines(r io.Reader, side models.Side, source string, grammar *LineGrammar) (*models.RecordSet, []models.Warning, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.FileError(errors.CodeFileCorrupted, source, err)
	}

	return ParseLines(lines, side, source, grammar)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
