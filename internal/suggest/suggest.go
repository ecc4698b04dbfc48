// Package suggest attaches fuzzy-match suggestions to reconciliation rows
// whose key is missing on one side.
//
// A suggestion is advisory: it names the closest key on the opposite side and
// its similarity score, but never changes the row's status or resolves the
// row. Acceptance is a human decision.
package suggest

import (
	"math"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/errors"
)

// DefaultThreshold is the minimum similarity score for a suggestion
const DefaultThreshold = 90

// Config controls the suggestion engine
type Config struct {
	// Threshold is the minimum score (0-100) a candidate must reach
	Threshold int

	// ForMissingInVendor also runs the engine for rows missing on the vendor
	// side, against the vendor key pool. The canonical deployment only covers
	// MissingInBooks.
	ForMissingInVendor bool

	// MinKeyLength skips rows whose canonical key is shorter than this,
	// avoiding spurious suggestions for near-empty keys. Zero disables it.
	MinKeyLength int

	// SkipZeroAmount skips rows whose own (present-side) amount is zero
	SkipZeroAmount bool
}

// DefaultConfig returns the stock suggestion configuration
func DefaultConfig() *Config {
	return &Config{
		Threshold: DefaultThreshold,
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "suggest_threshold", c.Threshold)
	}
	if c.MinKeyLength < 0 {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "min_suggest_key_length", c.MinKeyLength)
	}
	return nil
}

// Score computes a similarity score in [0,100] between two keys: the edit
// distance, with substitutions counted as a delete plus an insert, taken as a
// share of the combined length of both keys. This is the classic token ratio:
// identical keys score 100, fully dissimilar keys 0, and a one-character typo
// between four-character keys 75.
func Score(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}

	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	score := int(math.Round(100 * (1 - float64(distance)/float64(total))))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Best returns the highest-scoring candidate for key, scanning the pool in
// order. Ties keep the earliest candidate so output is reproducible.
// ok is false when the pool is empty.
func Best(key string, pool []string) (candidate string, score int, ok bool) {
	if len(pool) == 0 {
		return "", 0, false
	}

	best := pool[0]
	bestScore := Score(key, pool[0])
	for _, c := range pool[1:] {
		if s := Score(key, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore, true
}

// Apply walks the reconciliation rows and attaches a Suggestion to every
// eligible missing-side row whose best candidate reaches the threshold.
// Rows are mutated in place; nothing else about them changes. Apply never
// fails: an empty pool or sub-threshold scores simply leave rows untouched.
func Apply(rows []*models.Row, vendorKeys, booksKeys []string, config *Config) {
	if config == nil {
		config = DefaultConfig()
	}

	for _, row := range rows {
		var pool []string
		var own *models.Row

		switch row.Status {
		case models.StatusMissingInBooks:
			pool = booksKeys
		case models.StatusMissingInVendor:
			if !config.ForMissingInVendor {
				continue
			}
			pool = vendorKeys
		default:
			continue
		}
		own = row

		if config.MinKeyLength > 0 && len(own.Key) < config.MinKeyLength {
			continue
		}
		if config.SkipZeroAmount && presentAmountIsZero(own) {
			continue
		}

		candidate, score, ok := Best(own.Key, pool)
		if !ok || score < config.Threshold {
			continue
		}

		row.Suggestion = &models.Suggestion{
			CandidateKey: candidate,
			Score:        score,
		}
	}
}

// presentAmountIsZero reports whether the side that does carry the row has a
// zero amount
func presentAmountIsZero(row *models.Row) bool {
	if row.HasVendor() {
		return row.VendorAmount.IsZero()
	}
	if row.HasBooks() {
		return row.BooksAmount.IsZero()
	}
	return true
}
