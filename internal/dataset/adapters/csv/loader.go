package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"ott-insights-service/internal/dataset/core/ports"
)

// Loader reads the clickstream table from a headered CSV file.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

var _ ports.LoaderPort = (*Loader)(nil)

func (l *Loader) Load(ctx context.Context) ([]string, []ports.RawRow, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return parse(ctx, f)
}

func parse(ctx context.Context, r io.Reader) ([]string, []ports.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []ports.RawRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		row := make(ports.RawRow, len(header))
		for i, col := range header {
			if col == "" || i >= len(record) {
				continue
			}
			if v := strings.TrimSpace(record[i]); v != "" {
				row[col] = v
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
