package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Varun42-cyber/Reconcile-dashboard/internal/models"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/errors"
	"github.com/Varun42-cyber/Reconcile-dashboard/pkg/logger"
)

// ReadXLSXFile reads the first sheet of a workbook into a raw record set
func ReadXLSXFile(path string, side models.Side) (*models.RecordSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	defer f.Close()

	return parseWorkbook(f, side, path)
}

// ParseXLSX reads the first sheet of a workbook from r into a raw record set
func ParseXLSX(r io.Reader, side models.Side, source string) (*models.RecordSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, source, err)
	}
	defer f.Close()

	return parseWorkbook(f, side, source)
}

func parseWorkbook(f *excelize.File, side models.Side, source string) (*models.RecordSet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError(errors.CodeInvalidFormat, source, 0, "",
			fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError(errors.CodeInvalidFormat, source, 0, "", err)
	}
	if len(rows) == 0 {
		return nil, errors.ParseError(errors.CodeInvalidFormat, source, 1, "",
			fmt.Errorf("sheet %s is empty", sheets[0]))
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	set := models.NewRecordSet(side, source, headers)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		set.Append(row)
	}

	logger.GetGlobalLogger().WithComponent("xlsx_ingest").WithFields(logger.Fields{
		"source":  source,
		"side":    side.String(),
		"sheet":   sheets[0],
		"records": set.Len(),
	}).Debug("Parsed workbook input")

	return set, nil
}
