package excel

import (
	"context"
	"fmt"
	"strings"

	"ott-insights-service/internal/dataset/core/ports"

	"github.com/xuri/excelize/v2"
)

// Loader reads the clickstream table from one sheet of an xlsx workbook.
// The first row is the header.
type Loader struct {
	path  string
	sheet string
}

func NewLoader(path, sheet string) *Loader {
	return &Loader{path: path, sheet: sheet}
}

var _ ports.LoaderPort = (*Loader)(nil)

func (l *Loader) Load(ctx context.Context) ([]string, []ports.RawRow, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	r, err := f.Rows(l.sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("open sheet %q: %w", l.sheet, err)
	}
	defer r.Close()

	var header []string
	var rows []ports.RawRow

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		cells, err := r.Columns()
		if err != nil {
			return nil, nil, err
		}

		if header == nil {
			for _, c := range cells {
				header = append(header, strings.TrimSpace(c))
			}
			continue
		}

		row := make(ports.RawRow, len(header))
		for i, col := range header {
			if col == "" || i >= len(cells) {
				continue
			}
			if v := strings.TrimSpace(cells[i]); v != "" {
				row[col] = v
			}
		}
		rows = append(rows, row)
	}

	if err := r.Error(); err != nil {
		return nil, nil, err
	}
	if header == nil {
		return nil, nil, fmt.Errorf("sheet %q is empty", l.sheet)
	}

	return header, rows, nil
}
