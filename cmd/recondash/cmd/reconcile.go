package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Varun42-cyber/Reconcile-dashboard/cmd/recondash/config"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/ingest"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/recon"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the reconcile command
var (
	vendorFile    string
	booksFile     string
	vendorPDFText bool
	outputFormat  string
	outputFile    string

	threshold        int
	tolerance        float64
	absAmounts       string
	suggestBothSides bool
	minSuggestKeyLen int
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a vendor statement against internal books",
	Long: `Reconcile compares a vendor statement with internal book records to
identify matched invoices, amount mismatches, and entries missing on
either side.

This command requires:
- A vendor statement file (CSV or XLSX, or extracted statement text with --vendor-pdf-text)
- An internal books file (CSV or XLSX)

Column roles are inferred from the headers: the first column whose name
contains an identifier keyword (inv, num, id, ref, voucher) becomes the
invoice column, and the first containing an amount keyword (amt, val,
total, amount, due, price) becomes the amount column.

Examples:
  # Basic reconciliation
  recondash reconcile --vendor-file statement.csv --books-file ledger.csv

  # Spreadsheet inputs, multi-sheet workbook output
  recondash reconcile --vendor-file statement.xlsx --books-file ledger.xlsx \
    --output-format xlsx --output-file recon.xlsx

  # Extracted PDF statement text on the vendor side
  recondash reconcile --vendor-file statement.txt --vendor-pdf-text --books-file ledger.csv

  # Looser amount tolerance and stricter suggestions
  recondash reconcile --vendor-file statement.csv --books-file ledger.csv \
    --tolerance 0.10 --threshold 95

  # Suggest candidates for both unmatched sides
  recondash reconcile --vendor-file statement.csv --books-file ledger.csv --suggest-both-sides`,

	PreRunE: validateReconcileFlags,
	RunE:    runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	// Required flags
	reconcileCmd.Flags().StringVarP(&vendorFile, "vendor-file", "s", "", "path to the vendor statement file (required)")
	reconcileCmd.Flags().StringVarP(&booksFile, "books-file", "b", "", "path to the internal books file (required)")

	// Input interpretation flags
	reconcileCmd.Flags().BoolVar(&vendorPDFText, "vendor-pdf-text", false, "treat the vendor file as extracted statement text lines")

	// Output flags
	reconcileCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv, xlsx")
	reconcileCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Matching configuration flags
	reconcileCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 0.05, "absolute variance above which amounts mismatch")
	reconcileCmd.Flags().StringVar(&absAmounts, "abs-amounts", "books", "side whose amounts are read as non-negative: none, vendor, books, both")

	// Suggestion configuration flags
	reconcileCmd.Flags().IntVar(&threshold, "threshold", 90, "minimum similarity score (0-100) for suggestions")
	reconcileCmd.Flags().BoolVar(&suggestBothSides, "suggest-both-sides", false, "also suggest candidates for entries missing in vendor")
	reconcileCmd.Flags().IntVar(&minSuggestKeyLen, "min-suggest-key-len", 0, "skip suggestions for keys shorter than this")

	// Mark required flags
	reconcileCmd.MarkFlagRequired("vendor-file")
	reconcileCmd.MarkFlagRequired("books-file")

	// Bind flags to viper
	viper.BindPFlag("vendor-file", reconcileCmd.Flags().Lookup("vendor-file"))
	viper.BindPFlag("books-file", reconcileCmd.Flags().Lookup("books-file"))
	viper.BindPFlag("vendor-pdf-text", reconcileCmd.Flags().Lookup("vendor-pdf-text"))
	viper.BindPFlag("output-format", reconcileCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", reconcileCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("tolerance", reconcileCmd.Flags().Lookup("tolerance"))
	viper.BindPFlag("abs-amounts", reconcileCmd.Flags().Lookup("abs-amounts"))
	viper.BindPFlag("threshold", reconcileCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("suggest-both-sides", reconcileCmd.Flags().Lookup("suggest-both-sides"))
	viper.BindPFlag("min-suggest-key-len", reconcileCmd.Flags().Lookup("min-suggest-key-len"))
}

func validateReconcileFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	vendorFile = viper.GetString("vendor-file")
	booksFile = viper.GetString("books-file")
	vendorPDFText = viper.GetBool("vendor-pdf-text")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	tolerance = viper.GetFloat64("tolerance")
	absAmounts = viper.GetString("abs-amounts")
	threshold = viper.GetInt("threshold")
	suggestBothSides = viper.GetBool("suggest-both-sides")
	minSuggestKeyLen = viper.GetInt("min-suggest-key-len")

	// Validate required flags
	if vendorFile == "" {
		return fmt.Errorf("vendor-file is required")
	}
	if booksFile == "" {
		return fmt.Errorf("books-file is required")
	}

	// Validate file existence
	if err := validateFileExists(vendorFile, "vendor statement file"); err != nil {
		return err
	}
	if err := validateFileExists(booksFile, "books file"); err != nil {
		return err
	}

	// Validate output format
	if !report.OutputFormat(outputFormat).IsValid() {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv, xlsx", outputFormat)
	}

	// Validate amount sign convention
	if absAmounts == "" {
		absAmounts = "books"
	}
	switch absAmounts {
	case "none", "vendor", "books", "both":
	default:
		return fmt.Errorf("invalid abs-amounts side '%s'. Valid sides: none, vendor, books, both", absAmounts)
	}

	// Validate tolerances
	if tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative")
	}
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100")
	}
	if minSuggestKeyLen < 0 {
		return fmt.Errorf("min-suggest-key-len cannot be negative")
	}

	// Validate output file directory exists if specified
	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting reconciliation...\n")
		fmt.Fprintf(os.Stderr, "Vendor file: %s\n", vendorFile)
		fmt.Fprintf(os.Stderr, "Books file: %s\n", booksFile)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	// Load both sides
	vendorSet, ingestWarnings, err := loadVendorSide()
	if err != nil {
		return err
	}

	booksSet, err := loadRecordSet(booksFile, models.SideBooks)
	if err != nil {
		return err
	}

	// Create the engine
	engineConfig := config.CreateEngineConfig(tolerance, absAmounts, threshold, suggestBothSides, minSuggestKeyLen)
	engine, err := recon.NewEngine(engineConfig)
	if err != nil {
		return err
	}

	// Reconcile
	result, err := engine.Run(vendorSet, booksSet)
	if err != nil {
		return err
	}
	result.Warnings = append(ingestWarnings, result.Warnings...)

	// Generate report
	reportConfig := config.CreateReportConfig(report.OutputFormat(outputFormat))
	generator, err := report.NewGenerator(reportConfig)
	if err != nil {
		return err
	}

	// Determine output destination
	var output *os.File
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	built := report.Build(result)
	if err := generator.Write(built, output); err != nil {
		return err
	}

	// Show completion message
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nReconciliation completed successfully.\n")
		fmt.Fprintf(os.Stderr, "Vendor column mapping: identifier=%q amount=%q\n",
			result.Vendor.Mapping.IdentifierColumn, result.Vendor.Mapping.AmountColumn)
		fmt.Fprintf(os.Stderr, "Books column mapping: identifier=%q amount=%q\n",
			result.Books.Mapping.IdentifierColumn, result.Books.Mapping.AmountColumn)
		fmt.Fprintf(os.Stderr, "Processed %d vendor records and %d book records into %d rows.\n",
			result.Vendor.RawCount, result.Books.RawCount, built.Summary.TotalRows)
		fmt.Fprintf(os.Stderr, "Found %d matched, %d mismatched, %d missing in vendor, %d missing in books.\n",
			built.Summary.MatchedCount, built.Summary.MismatchCount,
			built.Summary.MissingInVendor, built.Summary.MissingInBooks)
		if built.Summary.SuggestedCount > 0 {
			fmt.Fprintf(os.Stderr, "Suggested %d candidate matches for review.\n", built.Summary.SuggestedCount)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintf(os.Stderr, "Collected %d warnings during processing.\n", len(result.Warnings))
		}
	}

	return nil
}

// loadVendorSide reads the vendor statement, honoring --vendor-pdf-text.
// Line parsing can drop unrecognized lines, so it also returns the ingest
// warnings for inclusion in the report.
func loadVendorSide() (*models.RecordSet, []models.Warning, error) {
	if vendorPDFText {
		f, err := os.Open(vendorFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open vendor statement text: %w", err)
		}
		defer f.Close()

		return ingest.ReadLines(f, models.SideVendor, vendorFile, nil)
	}

	set, err := loadRecordSet(vendorFile, models.SideVendor)
	return set, nil, err
}

// loadRecordSet picks the parser from the file extension: .xlsx and .xlsm
// go through the workbook reader, everything else is treated as CSV.
func loadRecordSet(path string, side models.Side) (*models.RecordSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ingest.ReadXLSXFile(path, side)
	default:
		return ingest.ReadCSVFile(path, side, config.CreateCSVConfig())
	}
}
