// Package normalize converts raw identifier and amount cells into their
// canonical forms so records from differently-formatted files can be joined.
package normalize

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// currencyReplacer strips currency symbols and thousands separators before
// amount parsing
var currencyReplacer = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	",", "",
)

// Identifier canonicalizes a raw invoice/reference number: every character
// that is not a letter or digit is stripped, the remainder is uppercased,
// and the leading prefix of letters and zeros is dropped so the key starts
// at the first significant digit. "INV-0001", "inv0001" and "0001" all
// become "1"; "INV-0002X" becomes "2X". Keys with no digits at all (pure
// alphabetic references) are kept as-is.
//
// A raw value of only zeros (or only punctuation) canonicalizes to the empty
// string. That is the degenerate EmptyKey case; callers exclude such rows
// from the join instead of matching on "".
//
// The result is a fixed point: Identifier(Identifier(x)) == Identifier(x).
func Identifier(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	cleaned := b.String()
	for i, r := range cleaned {
		if unicode.IsDigit(r) && r != '0' {
			return cleaned[i:]
		}
	}

	// No significant digit: strip leading zeros only, which turns all-zero
	// keys into the empty string and leaves alphabetic keys alone.
	return strings.TrimLeft(cleaned, "0")
}

// AmountOptions controls amount normalization
type AmountOptions struct {
	// ForceNonNegative takes the absolute value after parsing. Used when one
	// side records signed debits and must be compared against a side that
	// only carries face values.
	ForceNonNegative bool
}

// Amount canonicalizes a raw amount cell to a decimal rounded to two places.
// Currency symbols, thousands separators and whitespace are stripped and a
// parenthesized value is read as negative: "(1,234.50)" becomes -1234.50.
//
// Amount never fails. A cell that still cannot be parsed yields zero with
// ok=false so the caller can record the loss; the zero value itself is the
// contractual result.
func Amount(raw string, opts AmountOptions) (decimal.Decimal, bool) {
	cleaned := currencyReplacer.Replace(raw)
	cleaned = strings.Join(strings.Fields(cleaned), "")
	cleaned = strings.ReplaceAll(cleaned, "(", "-")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}

	// Round half away from zero to 2 fractional digits.
	rounded := parsed.Round(2)
	if opts.ForceNonNegative {
		rounded = rounded.Abs()
	}
	return rounded, true
}
