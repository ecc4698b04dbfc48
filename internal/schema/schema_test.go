package schema

import (
	"testing"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/errors"
)

func TestResolveCommonHeaders(t *testing.T) {
	tests := []struct {
		name           string
		headers        []string
		wantIdentifier string
		wantAmount     string
	}{
		{
			name:           "plain invoice and amount",
			headers:        []string{"Invoice #", "Amount"},
			wantIdentifier: "Invoice #",
			wantAmount:     "Amount",
		},
		{
			name:           "voucher ref and total due",
			headers:        []string{"Date", "Voucher Ref", "Total Due"},
			wantIdentifier: "Voucher Ref",
			wantAmount:     "Total Due",
		},
		{
			name:           "external document number variant",
			headers:        []string{"External  Document   Number", "Face Value"},
			wantIdentifier: "External  Document   Number",
			wantAmount:     "Face Value",
		},
		{
			name:           "abbreviated headers",
			headers:        []string{"doc_num", "amt"},
			wantIdentifier: "doc_num",
			wantAmount:     "amt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping, err := Resolve(tt.headers, models.SideVendor, nil)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if mapping.IdentifierColumn != tt.wantIdentifier {
				t.Errorf("IdentifierColumn = %q, want %q", mapping.IdentifierColumn, tt.wantIdentifier)
			}
			if mapping.AmountColumn != tt.wantAmount {
				t.Errorf("AmountColumn = %q, want %q", mapping.AmountColumn, tt.wantAmount)
			}
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// Two identifier candidates; the leftmost must win deterministically.
	headers := []string{"Invoice No", "Reference", "Amount"}

	mapping, err := Resolve(headers, models.SideVendor, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if mapping.IdentifierColumn != "Invoice No" {
		t.Errorf("IdentifierColumn = %q, want first matching column", mapping.IdentifierColumn)
	}
}

func TestResolveDeterministic(t *testing.T) {
	headers := []string{"Voucher", "Ref", "Value", "Total"}

	first, err := Resolve(headers, models.SideBooks, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := Resolve(headers, models.SideBooks, nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if *again != *first {
			t.Fatalf("Resolve() not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestResolveNoIdentifierColumn(t *testing.T) {
	_, err := Resolve([]string{"Date", "Amount"}, models.SideVendor, nil)
	if err == nil {
		t.Fatal("Resolve() should fail without an identifier column")
	}

	reconErr, ok := errors.AsReconError(err)
	if !ok {
		t.Fatalf("error should be a ReconError, got %T", err)
	}
	if reconErr.Code != errors.CodeNoIdentifierColumn {
		t.Errorf("Code = %s, want %s", reconErr.Code, errors.CodeNoIdentifierColumn)
	}
	if reconErr.Context["side"] != "vendor" {
		t.Errorf("error should carry the side, got %v", reconErr.Context["side"])
	}
}

func TestResolveNoAmountColumn(t *testing.T) {
	_, err := Resolve([]string{"Invoice", "Date"}, models.SideBooks, nil)
	if err == nil {
		t.Fatal("Resolve() should fail without an amount column")
	}

	reconErr, ok := errors.AsReconError(err)
	if !ok {
		t.Fatalf("error should be a ReconError, got %T", err)
	}
	if reconErr.Code != errors.CodeNoAmountColumn {
		t.Errorf("Code = %s, want %s", reconErr.Code, errors.CodeNoAmountColumn)
	}
	if reconErr.Context["side"] != "books" {
		t.Errorf("error should carry the side, got %v", reconErr.Context["side"])
	}
}

func TestFoldHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Invoice   Number ", "invoice number"},
		{"AMOUNT", "amount"},
		{"External\tDocument  Number", "external document number"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FoldHeader(tt.in); got != tt.want {
			t.Errorf("FoldHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeywordConfigValidate(t *testing.T) {
	if err := DefaultKeywordConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	bad := &KeywordConfig{AmountKeywords: []string{"amt"}}
	if err := bad.Validate(); err == nil {
		t.Error("empty identifier keyword list should fail validation")
	}
}

func TestKeywordConfigClone(t *testing.T) {
	original := DefaultKeywordConfig()
	clone := original.Clone()

	clone.IdentifierKeywords[0] = "mutated"
	if original.IdentifierKeywords[0] == "mutated" {
		t.Error("Clone() should not share backing arrays")
	}
}

func TestResolveCustomKeywords(t *testing.T) {
	config := &KeywordConfig{
		IdentifierKeywords: []string{"bill"},
		AmountKeywords:     []string{"charge"},
	}

	mapping, err := Resolve([]string{"Bill Number", "Charge"}, models.SideVendor, config)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if mapping.IdentifierColumn != "Bill Number" || mapping.AmountColumn != "Charge" {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}
