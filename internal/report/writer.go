package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/errors"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatXLSX    OutputFormat = "xlsx"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV, FormatXLSX:
		return true
	default:
		return false
	}
}

// Config holds configuration options for report generation
type Config struct {
	Format          OutputFormat `json:"format"`
	CSVDelimiter    rune         `json:"csv_delimiter"`
	IncludeWarnings bool         `json:"include_warnings"`
}

// DefaultConfig returns a default report configuration
func DefaultConfig() *Config {
	return &Config{
		Format:          FormatConsole,
		CSVDelimiter:    ',',
		IncludeWarnings: true,
	}
}

// Validate validates the report configuration
func (c *Config) Validate() error {
	if !c.Format.IsValid() {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "output_format", string(c.Format))
	}
	return nil
}

// Generator renders reports in the configured format
type Generator struct {
	config *Config
}

// NewGenerator creates a report generator with the specified configuration
func NewGenerator(config *Config) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Generator{config: config}, nil
}

// Write renders the report to the writer in the configured format
func (g *Generator) Write(report *Report, w io.Writer) error {
	if report == nil {
		return errors.InternalError(errors.CodeUnexpectedError, "report generation", fmt.Errorf("report cannot be nil"))
	}

	switch g.config.Format {
	case FormatConsole:
		return g.writeConsole(report, w)
	case FormatJSON:
		return g.writeJSON(report, w)
	case FormatCSV:
		return g.writeCSV(report, w)
	case FormatXLSX:
		return g.writeXLSX(report, w)
	default:
		return errors.ConfigurationError(errors.CodeInvalidConfig, "output_format", string(g.config.Format))
	}
}

// writeConsole renders a human-readable terminal report
func (g *Generator) writeConsole(report *Report, w io.Writer) error {
	var b strings.Builder

	b.WriteString("RECONCILIATION REPORT\n")
	b.WriteString(strings.Repeat("=", 70) + "\n\n")

	b.WriteString(fmt.Sprintf("Total items:    %d\n", report.Summary.TotalRows))
	b.WriteString(fmt.Sprintf("Matched:        %d\n", report.Summary.MatchedCount))
	b.WriteString(fmt.Sprintf("Issues found:   %d\n", report.Summary.ExceptionCount))
	b.WriteString(fmt.Sprintf("Suggested:      %d\n", report.Summary.SuggestedCount))
	b.WriteString(fmt.Sprintf("Net variance:   %s\n\n", report.Summary.NetVariance.StringFixed(2)))

	for _, status := range BucketOrder {
		rows := report.Buckets[status]
		if len(rows) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("%s (%d)\n", strings.ToUpper(status.Display()), len(rows)))
		b.WriteString(strings.Repeat("-", 70) + "\n")
		writeTextTable(&b, rows)
		b.WriteString("\n")
	}

	if len(report.Suggested) > 0 {
		b.WriteString(fmt.Sprintf("SUGGESTED MATCHES FOR REVIEW (%d)\n", len(report.Suggested)))
		b.WriteString(strings.Repeat("-", 70) + "\n")
		writeTextTable(&b, report.Suggested)
		b.WriteString("\n")
	}

	if g.config.IncludeWarnings && len(report.Warnings) > 0 {
		b.WriteString(fmt.Sprintf("WARNINGS (%d)\n", len(report.Warnings)))
		b.WriteString(strings.Repeat("-", 70) + "\n")
		for _, warning := range report.Warnings {
			b.WriteString("  " + warning.String() + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTextTable(b *strings.Builder, rows []*models.Row) {
	b.WriteString(fmt.Sprintf("%-20s %14s %14s %10s  %s\n",
		"Invoice/Key", "As-per-Vendor", "As-per-Books", "Variance", "Suggestion"))
	for _, row := range rows {
		values := RowValues(row)
		b.WriteString(fmt.Sprintf("%-20s %14s %14s %10s  %s\n",
			values[0], values[1], values[2], values[3], values[5]))
	}
}

// jsonRow is the JSON projection of one reconciliation row
type jsonRow struct {
	Key          string             `json:"key"`
	VendorAmount string             `json:"vendor_amount,omitempty"`
	BooksAmount  string             `json:"books_amount,omitempty"`
	Variance     string             `json:"variance"`
	Status       string             `json:"status"`
	Suggestion   *models.Suggestion `json:"suggestion,omitempty"`
}

// jsonReport is the JSON projection of the full report
type jsonReport struct {
	Summary  Summary          `json:"summary"`
	Rows     []jsonRow        `json:"rows"`
	Warnings []models.Warning `json:"warnings,omitempty"`
}

// writeJSON renders the report as indented JSON
func (g *Generator) writeJSON(report *Report, w io.Writer) error {
	out := jsonReport{
		Summary: report.Summary,
		Rows:    make([]jsonRow, 0, len(report.Rows)),
	}

	for _, row := range report.Rows {
		out.Rows = append(out.Rows, jsonRow{
			Key:          row.Key,
			VendorAmount: models.FormatOptional(row.VendorAmount),
			BooksAmount:  models.FormatOptional(row.BooksAmount),
			Variance:     row.Variance.StringFixed(2),
			Status:       row.Status.String(),
			Suggestion:   row.Suggestion,
		})
	}

	if g.config.IncludeWarnings {
		out.Warnings = report.Warnings
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeCSV renders all rows as a single flat CSV table
func (g *Generator) writeCSV(report *Report, w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = g.config.CSVDelimiter

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Rows {
		if err := writer.Write(RowValues(row)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
