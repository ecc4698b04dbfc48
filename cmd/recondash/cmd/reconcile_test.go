package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
)

func TestValidateFileExists(t *testing.T) {
	// Create temporary test files
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.csv")
	if err := os.WriteFile(validFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name        string
		filePath    string
		description string
		expectError bool
	}{
		{
			name:        "valid file",
			filePath:    validFile,
			description: "test file",
			expectError: false,
		},
		{
			name:        "empty path",
			filePath:    "",
			description: "test file",
			expectError: true,
		},
		{
			name:        "non-existent file",
			filePath:    "/non/existent/file.csv",
			description: "test file",
			expectError: true,
		},
		{
			name:        "directory instead of file",
			filePath:    tmpDir,
			description: "test file",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileExists(tt.filePath, tt.description)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateReconcileFlags(t *testing.T) {
	// Create temporary test files
	tmpDir := t.TempDir()
	statementFile := filepath.Join(tmpDir, "statement.csv")
	ledgerFile := filepath.Join(tmpDir, "ledger.csv")

	if err := os.WriteFile(statementFile, []byte("Invoice #,Amount\nINV-001,100.50"), 0644); err != nil {
		t.Fatalf("failed to create statement file: %v", err)
	}
	if err := os.WriteFile(ledgerFile, []byte("Reference,Value\nINV-001,100.50"), 0644); err != nil {
		t.Fatalf("failed to create ledger file: %v", err)
	}

	tests := []struct {
		name          string
		setupFlags    func()
		expectError   bool
		errorContains string
	}{
		{
			name: "valid flags",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", ledgerFile)
				viper.Set("output-format", "console")
				viper.Set("tolerance", 0.05)
				viper.Set("threshold", 90)
			},
			expectError: false,
		},
		{
			name: "missing vendor file",
			setupFlags: func() {
				viper.Set("vendor-file", "")
				viper.Set("books-file", ledgerFile)
			},
			expectError:   true,
			errorContains: "vendor-file is required",
		},
		{
			name: "missing books file",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", "")
			},
			expectError:   true,
			errorContains: "books-file is required",
		},
		{
			name: "invalid output format",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", ledgerFile)
				viper.Set("output-format", "invalid")
			},
			expectError:   true,
			errorContains: "invalid output format",
		},
		{
			name: "invalid abs-amounts side",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", ledgerFile)
				viper.Set("output-format", "console")
				viper.Set("abs-amounts", "ledger")
			},
			expectError:   true,
			errorContains: "invalid abs-amounts side",
		},
		{
			name: "negative tolerance",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", ledgerFile)
				viper.Set("output-format", "console")
				viper.Set("tolerance", -0.01)
			},
			expectError:   true,
			errorContains: "tolerance cannot be negative",
		},
		{
			name: "threshold above range",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", ledgerFile)
				viper.Set("output-format", "console")
				viper.Set("threshold", 150)
			},
			expectError:   true,
			errorContains: "threshold must be between 0 and 100",
		},
		{
			name: "negative suggestion key length",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", ledgerFile)
				viper.Set("output-format", "console")
				viper.Set("threshold", 90)
				viper.Set("min-suggest-key-len", -1)
			},
			expectError:   true,
			errorContains: "min-suggest-key-len cannot be negative",
		},
		{
			name: "missing output directory",
			setupFlags: func() {
				viper.Set("vendor-file", statementFile)
				viper.Set("books-file", ledgerFile)
				viper.Set("output-format", "xlsx")
				viper.Set("threshold", 90)
				viper.Set("output-file", "/non/existent/dir/recon.xlsx")
			},
			expectError:   true,
			errorContains: "output directory does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper
			viper.Reset()
			tt.setupFlags()

			cmd := &cobra.Command{}
			err := validateReconcileFlags(cmd, []string{})

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				} else if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("expected error to contain '%s', got: %v", tt.errorContains, err)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestReconcileCommandHelp(t *testing.T) {
	cmd := reconcileCmd

	// Test that command has required flags
	for _, name := range []string{"vendor-file", "books-file", "vendor-pdf-text", "output-format", "output-file", "tolerance", "threshold", "suggest-both-sides"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("%s flag not found", name)
		}
	}

	// Test help output contains key information
	var helpOutput bytes.Buffer
	cmd.SetOut(&helpOutput)
	cmd.Help()

	helpText := helpOutput.String()

	expectedSections := []string{
		"Usage:",
		"Examples:",
		"Flags:",
		"--vendor-file",
		"--books-file",
		"--output-format",
	}

	for _, section := range expectedSections {
		if !strings.Contains(helpText, section) {
			t.Errorf("help text should contain '%s'", section)
		}
	}
}

func TestLoadRecordSet(t *testing.T) {
	tmpDir := t.TempDir()
	csvFile := filepath.Join(tmpDir, "ledger.csv")
	if err := os.WriteFile(csvFile, []byte("Reference,Value\nINV-001,100.50\nINV-002,25.00"), 0644); err != nil {
		t.Fatalf("failed to create ledger file: %v", err)
	}

	set, err := loadRecordSet(csvFile, models.SideBooks)
	if err != nil {
		t.Fatalf("loadRecordSet() error = %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
	if set.Side != models.SideBooks {
		t.Errorf("Side = %s, want books", set.Side)
	}

	// Unknown extensions fall back to the CSV reader
	txtFile := filepath.Join(tmpDir, "ledger.txt")
	if err := os.WriteFile(txtFile, []byte("Reference,Value\nINV-003,1.00"), 0644); err != nil {
		t.Fatalf("failed to create text file: %v", err)
	}
	set, err = loadRecordSet(txtFile, models.SideBooks)
	if err != nil {
		t.Fatalf("loadRecordSet() error = %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}
