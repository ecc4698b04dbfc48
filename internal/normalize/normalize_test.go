package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"INV-0001", "1"},
		{"inv0001", "1"},
		{"0001", "1"},
		{"INV-0042", "42"},
		{"00042", "42"},
		{"42", "42"},
		{"INV 2024/0007", "20240007"},
		{"inv-0002x", "2X"},
		{"ABC", "ABC"},
		{"REF-2X", "2X"},
		{"A0B", "A0B"},
		// Letters mixed into the leading zero run are part of the dropped
		// prefix: the key starts at the first significant digit.
		{"0A1", "1"},
		{"00X42", "42"},
		{"000", ""},
		{"--..  ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Identifier(tt.raw); got != tt.want {
			t.Errorf("Identifier(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIdentifierIdempotent(t *testing.T) {
	inputs := []string{"INV-0001", "0001", "2X", "ABC123", "", "00", "a-b-c"}

	for _, raw := range inputs {
		once := Identifier(raw)
		twice := Identifier(once)
		if once != twice {
			t.Errorf("Identifier not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestIdentifierLeadingZeroEquivalence(t *testing.T) {
	a := Identifier("00042")
	b := Identifier("42")
	c := Identifier("INV-0042")

	if a != "42" || b != "42" || c != "42" {
		t.Errorf("leading-zero equivalence broken: %q, %q, %q", a, b, c)
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"$1,234.50", "1234.5", true},
		{"(1,234.50)", "-1234.5", true},
		{"(100)", "-100", true},
		{"100.00", "100", true},
		{"-100.00", "-100", true},
		{" 1 234.50 ", "1234.5", true},
		{"€99.99", "99.99", true},
		{"1.005", "1.01", true},
		{"1.004", "1", true},
		{"abc", "0", false},
		{"", "0", false},
		{"12.34.56", "0", false},
	}

	for _, tt := range tests {
		got, ok := Amount(tt.raw, AmountOptions{})
		if ok != tt.wantOK {
			t.Errorf("Amount(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
		}
		want, err := decimal.NewFromString(tt.want)
		if err != nil {
			t.Fatalf("bad expectation %q: %v", tt.want, err)
		}
		if !got.Equal(want) {
			t.Errorf("Amount(%q) = %s, want %s", tt.raw, got, want)
		}
	}
}

func TestAmountForceNonNegative(t *testing.T) {
	got, ok := Amount("-100.00", AmountOptions{ForceNonNegative: true})
	if !ok {
		t.Fatal("Amount should parse -100.00")
	}
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Amount with ForceNonNegative = %s, want 100", got)
	}

	got, ok = Amount("(42.50)", AmountOptions{ForceNonNegative: true})
	if !ok {
		t.Fatal("Amount should parse (42.50)")
	}
	if !got.Equal(decimal.NewFromFloat(42.50)) {
		t.Errorf("Amount with ForceNonNegative = %s, want 42.50", got)
	}
}

func TestAmountRoundsToTwoPlaces(t *testing.T) {
	got, ok := Amount("10.12999", AmountOptions{})
	if !ok {
		t.Fatal("Amount should parse 10.12999")
	}
	if got.Exponent() < -2 {
		t.Errorf("Amount should round to 2 places, got %s", got)
	}
	if !got.Equal(decimal.NewFromFloat(10.13)) {
		t.Errorf("Amount(10.12999) = %s, want 10.13", got)
	}
}
