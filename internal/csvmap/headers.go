package csvmap

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var (
	ErrInvalidCSV = errors.New("Invalid CSV format")
	ErrEmptyCSV   = errors.New("CSV file is empty")
	ErrNoHeaders  = errors.New("No headers found in CSV")
)

// ReadHeaders returns the trimmed header row of csvText. At least one data
// row must follow it.
func ReadHeaders(csvText string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(csvText, "\ufeff")))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, ErrInvalidCSV
	}
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCSV
		}
		return nil, ErrInvalidCSV
	}

	headers := make([]string, 0, len(header))
	named := false
	for _, h := range header {
		h = strings.TrimSpace(h)
		named = named || h != ""
		headers = append(headers, h)
	}
	if !named {
		return nil, ErrNoHeaders
	}
	return headers, nil
}
