// Package ingest reads tabular inputs into raw record sets for the
// reconciliation core.
//
// Readers exist for delimited text, XLSX workbooks and pre-extracted text
// lines from paginated documents. Every reader produces the same thing: a
// header list in original order plus raw string rows. Nothing here
// normalizes or interprets values; that is the core's job.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/errors"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/logger"
)

// CSVConfig holds configuration for delimited-text ingestion
type CSVConfig struct {
	Delimiter        rune
	TrimLeadingSpace bool
	SkipEmptyRows    bool
}

// DefaultCSVConfig returns a configuration with sensible defaults
func DefaultCSVConfig() *CSVConfig {
	return &CSVConfig{
		Delimiter:        ',',
		TrimLeadingSpace: true,
		SkipEmptyRows:    true,
	}
}

// ReadCSVFile reads a delimited file into a raw record set
func ReadCSVFile(path string, side models.Side, config *CSVConfig) (*models.RecordSet, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	defer file.Close()

	return ParseCSV(file, side, path, config)
}

// ParseCSV reads delimited text from r into a raw record set. The first
// non-empty row is the header; short data rows leave trailing columns empty.
func ParseCSV(r io.Reader, side models.Side, source string, config *CSVConfig) (*models.RecordSet, error) {
	if config == nil {
		config = DefaultCSVConfig()
	}

	log := logger.GetGlobalLogger().WithComponent("csv_ingest")

	reader := csv.NewReader(r)
	reader.Comma = config.Delimiter
	reader.TrimLeadingSpace = config.TrimLeadingSpace
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.ParseError(errors.CodeInvalidFormat, source, 1, "",
				fmt.Errorf("file is empty"))
		}
		return nil, errors.ParseError(errors.CodeInvalidFormat, source, 1, "", err)
	}

	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	set := models.NewRecordSet(side, source, headers)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.ParseError(errors.CodeInvalidFormat, source, set.Len()+2, "", err)
		}

		if config.SkipEmptyRows && isEmptyRow(record) {
			continue
		}

		set.Append(record)
	}

	log.WithFields(logger.Fields{
		"source":  source,
		"side":    side.String(),
		"headers": headers,
		"records": set.Len(),
	}).Debug("Parsed delimited input")

	return set, nil
}

// isEmptyRow checks if all fields in a row are empty or whitespace
func isEmptyRow(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
