package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestReconErrorError(t *testing.T) {
	err := New(CategoryParse, CodeInvalidFormat, "bad row")
	if err.Error() != "bad row" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad row")
	}

	err = err.WithSuggestion("fix the row")
	if !strings.Contains(err.Error(), "suggestion: fix the row") {
		t.Errorf("Error() = %q, want suggestion included", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(cause, CategoryFile, CodeFileCorrupted, "cannot read")

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}

	if Wrap(nil, CategoryFile, CodeFileCorrupted, "cannot read") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     int
	}{
		{CategoryFile, 2},
		{CategoryParse, 3},
		{CategorySchema, 3},
		{CategoryConfiguration, 4},
		{CategoryReconciliation, 5},
		{CategoryInternal, 5},
	}

	for _, tt := range tests {
		err := New(tt.category, CodeUnexpectedError, "test")
		if got := err.GetExitCode(); got != tt.want {
			t.Errorf("GetExitCode() for %s = %d, want %d", tt.category, got, tt.want)
		}
	}
}

func TestSchemaErrorNamesSideAndHeaders(t *testing.T) {
	err := SchemaError(CodeNoIdentifierColumn, "vendor", []string{"Foo", "Bar"})

	if err.Category != CategorySchema {
		t.Errorf("Category = %s, want %s", err.Category, CategorySchema)
	}
	if !strings.Contains(err.Message, "vendor") {
		t.Errorf("message %q should name the side", err.Message)
	}
	if !strings.Contains(err.Message, "Foo, Bar") {
		t.Errorf("message %q should list the detected headers", err.Message)
	}
	if err.Context["side"] != "vendor" {
		t.Errorf("context side = %v, want vendor", err.Context["side"])
	}
}

func TestAsReconError(t *testing.T) {
	inner := SchemaError(CodeNoAmountColumn, "books", []string{"id"})
	wrapped := fmt.Errorf("run failed: %w", inner)

	got, ok := AsReconError(wrapped)
	if !ok {
		t.Fatal("AsReconError should find the ReconError in the chain")
	}
	if got.Code != CodeNoAmountColumn {
		t.Errorf("Code = %s, want %s", got.Code, CodeNoAmountColumn)
	}

	if _, ok := AsReconError(fmt.Errorf("plain")); ok {
		t.Error("AsReconError should not match a plain error")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	recon := New(CategoryParse, CodeEmptyKey, "empty key")
	if got := WrapIfNeeded(recon, CategoryInternal, CodeUnexpectedError, "x"); got != recon {
		t.Error("WrapIfNeeded should return an existing ReconError unchanged")
	}

	plain := fmt.Errorf("plain")
	got := WrapIfNeeded(plain, CategoryInternal, CodeUnexpectedError, "wrapped")
	if got.Category != CategoryInternal || got.Cause != plain {
		t.Errorf("WrapIfNeeded should wrap plain errors, got %+v", got)
	}
}
