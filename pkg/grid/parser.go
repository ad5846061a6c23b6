package grid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ParseFile reads a grid from disk. Files ending in .csv are read as
// comma-separated values, everything else as tab-separated text.
func ParseFile(filename string) (*Grid, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ParseCSV(file)
	}
	return ParseText(file)
}

// ParseText reads tab-separated, newline-delimited values
func ParseText(reader io.Reader) (*Grid, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid text: %w", err)
	}

	rows := parseRows(string(data))
	if rows == nil {
		return nil, ErrEmpty
	}
	return FromRows(rows)
}

// ParseCSV reads comma-separated values. Rows may have different lengths;
// short rows are padded with zeros.
func ParseCSV(reader io.Reader) (*Grid, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]float64
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV grid: %w", err)
		}

		row := make([]float64, len(record))
		for i, field := range record {
			row[i] = ParseValue(field)
		}
		rows = append(rows, row)
	}

	return FromRows(rows)
}
