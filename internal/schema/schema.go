// Package schema infers which columns of a raw record set hold the
// transaction identifier and the amount.
//
// Real statements arrive with headers from differing institutions
// ("Invoice #", "Voucher Ref", "External document number"), so there is no
// fixed schema contract. Resolution is a substring scan of each header
// against an explicit keyword table: the first column, in original
// left-to-right order, whose folded name contains any keyword wins.
// No scoring, no second pass.
package schema

import (
	"strings"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/errors"
)

// KeywordConfig is the keyword table driving column resolution. Keywords are
// matched as substrings of the folded header name, in slice order per header.
type KeywordConfig struct {
	IdentifierKeywords []string
	AmountKeywords     []string
}

// DefaultKeywordConfig returns the stock keyword table
func DefaultKeywordConfig() *KeywordConfig {
	return &KeywordConfig{
		IdentifierKeywords: []string{
			"inv",
			"num",
			"id",
			"ref",
			"voucher",
			"external document number",
		},
		AmountKeywords: []string{
			"amt",
			"val",
			"total",
			"amount",
			"due",
			"price",
		},
	}
}

// Clone returns a copy of the keyword configuration
func (kc *KeywordConfig) Clone() *KeywordConfig {
	clone := &KeywordConfig{
		IdentifierKeywords: make([]string, len(kc.IdentifierKeywords)),
		AmountKeywords:     make([]string, len(kc.AmountKeywords)),
	}
	copy(clone.IdentifierKeywords, kc.IdentifierKeywords)
	copy(clone.AmountKeywords, kc.AmountKeywords)
	return clone
}

// Validate checks that both keyword lists are usable
func (kc *KeywordConfig) Validate() error {
	if len(kc.IdentifierKeywords) == 0 {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "identifier_keywords", "empty list")
	}
	if len(kc.AmountKeywords) == 0 {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "amount_keywords", "empty list")
	}
	return nil
}

// Mapping names the resolved columns of one record set
type Mapping struct {
	IdentifierColumn string
	AmountColumn     string
}

// FoldHeader canonicalizes a header name for keyword matching: case-folded,
// trimmed, internal whitespace runs collapsed to single spaces.
func FoldHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(header)), " ")
}

// Resolve picks the identifier and amount columns from a header list.
// It is a pure function over the headers: same input, same mapping.
// Resolution fails when either role has no matching column; the error names
// the side and the headers that were inspected so the operator knows which
// file to fix.
func Resolve(headers []string, side models.Side, config *KeywordConfig) (*Mapping, error) {
	if config == nil {
		config = DefaultKeywordConfig()
	}

	identifierColumn := firstMatch(headers, config.IdentifierKeywords)
	if identifierColumn == "" {
		return nil, errors.SchemaError(errors.CodeNoIdentifierColumn, side.String(), headers)
	}

	amountColumn := firstMatch(headers, config.AmountKeywords)
	if amountColumn == "" {
		return nil, errors.SchemaError(errors.CodeNoAmountColumn, side.String(), headers)
	}

	return &Mapping{
		IdentifierColumn: identifierColumn,
		AmountColumn:     amountColumn,
	}, nil
}

// firstMatch returns the first header, in original order, whose folded name
// contains any of the keywords. Empty string when nothing matches.
func firstMatch(headers []string, keywords []string) string {
	for _, header := range headers {
		folded := FoldHeader(header)
		for _, keyword := range keywords {
			if strings.Contains(folded, keyword) {
				return header
			}
		}
	}
	return ""
}
