package config

import (
	"github.com/shopspring/decimal"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/ingest"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/normalize"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/recon"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/report"
)

// CreateEngineConfig builds an engine configuration from the CLI flag values.
// absAmounts names the side whose amounts are read as absolute values: the
// default "books" matches internal ledgers that record signed debits, "none"
// keeps both sides signed.
func CreateEngineConfig(tolerance float64, absAmounts string, threshold int, suggestBothSides bool, minSuggestKeyLen int) *recon.Config {
	config := recon.DefaultConfig()

	// Apply CLI overrides
	config.Tolerance = decimal.NewFromFloat(tolerance)
	config.VendorAmounts = normalize.AmountOptions{ForceNonNegative: absAmounts == "vendor" || absAmounts == "both"}
	config.BooksAmounts = normalize.AmountOptions{ForceNonNegative: absAmounts == "books" || absAmounts == "both"}

	config.Suggest.Threshold = threshold
	config.Suggest.ForMissingInVendor = suggestBothSides
	config.Suggest.MinKeyLength = minSuggestKeyLen

	return config
}

// CreateCSVConfig returns the CSV reader configuration for CLI usage
func CreateCSVConfig() *ingest.CSVConfig {
	return ingest.DefaultCSVConfig()
}

// CreateReportConfig creates a report configuration for the specified output format
func CreateReportConfig(format report.OutputFormat) *report.Config {
	config := report.DefaultConfig()
	config.Format = format

	switch format {
	case report.FormatConsole:
		config.IncludeWarnings = true
	case report.FormatJSON:
		config.IncludeWarnings = true
	case report.FormatCSV, report.FormatXLSX:
		// Tabular exports carry row data only
		config.IncludeWarnings = false
	}

	return config
}
