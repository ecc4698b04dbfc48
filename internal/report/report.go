// Package report partitions reconciliation rows into status buckets and
// renders them for display and export.
//
// The reporter is a read-only projection: it never mutates row state. Output
// formats are console (terminal tables), JSON (programmatic), CSV
// (spreadsheet import) and XLSX (multi-sheet workbook, one sheet per bucket
// plus an unfiltered Full_Recon sheet).
package report

import (
	"github.com/shopspring/decimal"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/recon"
)

// Columns is the fixed column set every tabular rendering uses
var Columns = []string{"Invoice/Key", "As-per-Vendor", "As-per-Books", "Variance", "Status", "Suggestion"}

// Summary holds the aggregate counters for one run
type Summary struct {
	TotalRows       int             `json:"total_rows"`
	MatchedCount    int             `json:"matched"`
	MismatchCount   int             `json:"amount_mismatch"`
	MissingInVendor int             `json:"missing_in_vendor"`
	MissingInBooks  int             `json:"missing_in_books"`
	SuggestedCount  int             `json:"suggested"`
	ExceptionCount  int             `json:"exceptions"`
	NetVariance     decimal.Decimal `json:"net_variance"`
}

// Report is the bucketed projection of a reconciliation result
type Report struct {
	Rows      []*models.Row
	Buckets   map[models.Status][]*models.Row
	Suggested []*models.Row
	Summary   Summary
	Warnings  []models.Warning
}

// BucketOrder is the fixed rendering order for status buckets
var BucketOrder = []models.Status{
	models.StatusMatched,
	models.StatusAmountMismatch,
	models.StatusMissingInVendor,
	models.StatusMissingInBooks,
}

// Build partitions the result rows by status, collects the suggested subset
// and computes the aggregate counters. Rows are shared, not copied; the
// report must be treated as read-only.
func Build(result *recon.Result) *Report {
	report := &Report{
		Rows:    result.Rows,
		Buckets: make(map[models.Status][]*models.Row, len(BucketOrder)),
		Summary: Summary{
			TotalRows:   len(result.Rows),
			NetVariance: decimal.Zero,
		},
		Warnings: result.Warnings,
	}

	for _, row := range result.Rows {
		report.Buckets[row.Status] = append(report.Buckets[row.Status], row)
		report.Summary.NetVariance = report.Summary.NetVariance.Add(row.Variance)

		switch row.Status {
		case models.StatusMatched:
			report.Summary.MatchedCount++
		case models.StatusAmountMismatch:
			report.Summary.MismatchCount++
		case models.StatusMissingInVendor:
			report.Summary.MissingInVendor++
		case models.StatusMissingInBooks:
			report.Summary.MissingInBooks++
		}

		if row.Status.IsException() {
			report.Summary.ExceptionCount++
		}
		if row.Suggestion != nil {
			report.Suggested = append(report.Suggested, row)
			report.Summary.SuggestedCount++
		}
	}

	return report
}

// RowValues renders one row as the fixed column set
func RowValues(row *models.Row) []string {
	suggestion := ""
	if row.Suggestion != nil {
		suggestion = row.Suggestion.String()
	}

	return []string{
		row.Key,
		models.FormatOptional(row.VendorAmount),
		models.FormatOptional(row.BooksAmount),
		row.Variance.StringFixed(2),
		row.Status.Display(),
		suggestion,
	}
}
