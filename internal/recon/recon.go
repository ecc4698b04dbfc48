// Package recon is the reconciliation core: it turns two raw record sets
// into a classified row set.
//
// A run is synchronous and stateless. The engine resolves each side's
// schema, normalizes keys and amounts, outer-joins on canonical key,
// classifies every row and attaches fuzzy suggestions to unmatched rows.
// Concurrent runs are safe as long as each run gets its own record sets;
// the configuration is treated as immutable for the duration of a run.
package recon

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/normalize"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/schema"
	"github.com/Varun42-cyber/Reconcile-dashboard/internal/suggest"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/logger"
)

// DefaultTolerance absorbs rounding noise from upstream currency display
// truncation. Variances at or below it are not mismatches.
var DefaultTolerance = decimal.NewFromFloat(0.05)

// Config holds the knobs for one reconciliation run
type Config struct {
	// Tolerance is the strict-greater-than mismatch boundary
	Tolerance decimal.Decimal

	// VendorAmounts and BooksAmounts set the sign convention per side
	VendorAmounts normalize.AmountOptions
	BooksAmounts  normalize.AmountOptions

	// Keywords drives schema resolution for both sides
	Keywords *schema.KeywordConfig

	// Suggest configures the fuzzy suggestion pass
	Suggest *suggest.Config
}

// DefaultConfig returns the stock engine configuration: 0.05 tolerance, raw
// vendor amounts, absolute-value books amounts (signed-debit convention),
// stock keywords and a 90 suggestion threshold.
func DefaultConfig() *Config {
	return &Config{
		Tolerance:    DefaultTolerance,
		BooksAmounts: normalize.AmountOptions{ForceNonNegative: true},
		Keywords:     schema.DefaultKeywordConfig(),
		Suggest:      suggest.DefaultConfig(),
	}
}

// Validate validates the engine configuration
func (c *Config) Validate() error {
	if c.Tolerance.IsNegative() {
		return fmt.Errorf("tolerance cannot be negative: %s", c.Tolerance)
	}
	if c.Keywords != nil {
		if err := c.Keywords.Validate(); err != nil {
			return err
		}
	}
	if c.Suggest != nil {
		if err := c.Suggest.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SideResult carries per-side bookkeeping from normalization
type SideResult struct {
	Mapping    *schema.Mapping
	Records    []models.Record
	Keys       []string // canonical keys in first-seen order, deduplicated
	RawCount   int
	Excluded   int // rows dropped for empty canonical keys
	Duplicates int // keys collapsed last-write-wins
}

// Result is the complete output of one reconciliation run
type Result struct {
	Rows     []*models.Row
	Vendor   *SideResult
	Books    *SideResult
	Warnings []models.Warning
}

// Engine performs reconciliation runs. One engine can serve many runs; it
// holds no per-run state.
type Engine struct {
	config *Config
	log    logger.Logger
}

// NewEngine creates an engine with the given configuration
func NewEngine(config *Config) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config: config,
		log:    logger.GetGlobalLogger().WithComponent("recon_engine"),
	}, nil
}

// Run reconciles a vendor record set against a books record set.
// Schema failures are fatal and name the offending side; everything else is
// absorbed into warnings on the result.
func (e *Engine) Run(vendor, books *models.RecordSet) (*Result, error) {
	vendorSide, vendorWarnings, err := e.normalizeSet(vendor, e.config.VendorAmounts)
	if err != nil {
		return nil, err
	}

	booksSide, booksWarnings, err := e.normalizeSet(books, e.config.BooksAmounts)
	if err != nil {
		return nil, err
	}

	rows := e.join(vendorSide, booksSide)
	suggest.Apply(rows, vendorSide.Keys, booksSide.Keys, e.config.Suggest)

	warnings := append(vendorWarnings, booksWarnings...)

	e.log.WithFields(logger.Fields{
		"vendor_records": vendorSide.RawCount,
		"books_records":  booksSide.RawCount,
		"rows":           len(rows),
		"warnings":       len(warnings),
	}).Info("Reconciliation run complete")

	return &Result{
		Rows:     rows,
		Vendor:   vendorSide,
		Books:    booksSide,
		Warnings: warnings,
	}, nil
}

// normalizeSet resolves the set's schema and produces canonical records.
// Empty-key rows are excluded rather than joined; unparseable amounts
// default to zero. Both are recorded as warnings.
func (e *Engine) normalizeSet(set *models.RecordSet, opts normalize.AmountOptions) (*SideResult, []models.Warning, error) {
	mapping, err := schema.Resolve(set.Headers, set.Side, e.config.Keywords)
	if err != nil {
		return nil, nil, err
	}

	side := &SideResult{
		Mapping:  mapping,
		Records:  make([]models.Record, 0, set.Len()),
		Keys:     make([]string, 0, set.Len()),
		RawCount: set.Len(),
	}

	var warnings []models.Warning
	seen := make(map[string]bool, set.Len())

	for i, raw := range set.Records {
		line := i + 1

		key := normalize.Identifier(raw[mapping.IdentifierColumn])
		if key == "" {
			side.Excluded++
			warnings = append(warnings, models.Warning{
				Code:    models.WarnEmptyKey,
				Side:    set.Side,
				Line:    line,
				Value:   raw[mapping.IdentifierColumn],
				Message: "identifier normalized to empty key, row excluded from matching",
			})
			continue
		}

		rawAmount := raw[mapping.AmountColumn]
		amount, ok := normalize.Amount(rawAmount, opts)
		if !ok {
			warnings = append(warnings, models.Warning{
				Code:    models.WarnAmountParse,
				Side:    set.Side,
				Line:    line,
				Value:   rawAmount,
				Message: "unparseable amount defaulted to 0",
			})
		}

		if seen[key] {
			side.Duplicates++
			warnings = append(warnings, models.Warning{
				Code:    models.WarnDuplicateKey,
				Side:    set.Side,
				Line:    line,
				Value:   key,
				Message: "duplicate canonical key, keeping most recent amount",
			})
		} else {
			seen[key] = true
			side.Keys = append(side.Keys, key)
		}

		side.Records = append(side.Records, models.Record{Key: key, Amount: amount})
	}

	return side, warnings, nil
}

// join performs the full outer join on canonical key. Row order is
// deterministic: vendor keys in first-seen order, then books-only keys in
// first-seen order. Within a side the last record for a repeated key wins.
func (e *Engine) join(vendor, books *SideResult) []*models.Row {
	vendorAmounts := collapse(vendor.Records)
	booksAmounts := collapse(books.Records)

	rows := make([]*models.Row, 0, len(vendor.Keys)+len(books.Keys))

	for _, key := range vendor.Keys {
		rows = append(rows, e.buildRow(key, vendorAmounts, booksAmounts))
	}
	for _, key := range books.Keys {
		if _, inVendor := vendorAmounts[key]; !inVendor {
			rows = append(rows, e.buildRow(key, vendorAmounts, booksAmounts))
		}
	}

	return rows
}

// collapse folds records into a key→amount map, last write winning
func collapse(records []models.Record) map[string]decimal.Decimal {
	amounts := make(map[string]decimal.Decimal, len(records))
	for _, r := range records {
		amounts[r.Key] = r.Amount
	}
	return amounts
}

func (e *Engine) buildRow(key string, vendorAmounts, booksAmounts map[string]decimal.Decimal) *models.Row {
	row := &models.Row{Key: key}

	if amount, ok := vendorAmounts[key]; ok {
		row.VendorAmount = &amount
	}
	if amount, ok := booksAmounts[key]; ok {
		row.BooksAmount = &amount
	}

	row.Variance = Variance(row.VendorAmount, row.BooksAmount)
	row.Status = Classify(row.VendorAmount, row.BooksAmount, row.Variance, e.config.Tolerance)
	return row
}

// Variance computes vendor minus books. A missing side contributes zero to
// the arithmetic only; missingness itself is classified separately.
func Variance(vendor, books *decimal.Decimal) decimal.Decimal {
	v := decimal.Zero
	if vendor != nil {
		v = *vendor
	}
	b := decimal.Zero
	if books != nil {
		b = *books
	}
	return v.Sub(b).Round(2)
}

// Classify assigns a status to a pair of optional amounts, in fixed priority
// order: vendor absent, books absent, variance strictly beyond tolerance,
// matched. Missingness drives the first two branches regardless of value, so
// a genuine zero-amount transaction never looks like a missing one.
func Classify(vendor, books *decimal.Decimal, variance, tolerance decimal.Decimal) models.Status {
	switch {
	case vendor == nil:
		return models.StatusMissingInVendor
	case books == nil:
		return models.StatusMissingInBooks
	case variance.Abs().GreaterThan(tolerance):
		return models.StatusAmountMismatch
	default:
		return models.StatusMatched
	}
}
