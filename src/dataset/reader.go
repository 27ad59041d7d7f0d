package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DataReader decodes a tabular dataset file into header + string rows.
// Handles .csv and .xlsx (Sheet1); everything else is rejected up front.
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewDataReader picks the decoder from the file extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" || ext == ".dat" || ext == ".txt" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadRaw returns the header row and data rows as trimmed strings.
// All failures come back as *TransportError.
func (r *DataReader) ReadRaw() ([]string, [][]string, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, nil, &TransportError{Path: r.filePath, Err: err}
	}
	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSV()
	case "xlsx":
		rows, err = r.readExcel()
	}
	if err != nil {
		return nil, nil, &TransportError{Path: r.filePath, Err: err}
	}
	if len(rows) < 2 {
		return nil, nil, &TransportError{Path: r.filePath,
			Err: fmt.Errorf("need a header row and at least one data row, got %d rows", len(rows))}
	}
	Debugf("decoded %s (%s) in %s: %d rows", r.filePath, r.fileType, time.Since(start), len(rows)-1)

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	data := rows[1:]
	for _, row := range data {
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
	}
	return headers, data, nil
}

func (r *DataReader) readCSV() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func (r *DataReader) readExcel() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows("Sheet1")
}

// Load decodes and materializes a dataset in one step. On any error the
// caller's previous table stays valid; no partial table is ever returned.
func Load(path string) (*Table, error) {
	headers, rows, err := NewDataReader(path).ReadRaw()
	if err != nil {
		return nil, err
	}
	return Materialize(path, headers, rows)
}
