package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeRowScanner implements RowScanner for tests.
type fakeRowScanner struct {
	rows [][]any
	i    int
	err  error
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *time.Time:
			v, ok := row[i].(time.Time)
			if !ok {
				return errors.New("type assertion to time.Time failed")
			}
			*d = v
		case *sql.NullString:
			if row[i] == nil {
				*d = sql.NullString{}
				continue
			}
			v, ok := row[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = sql.NullString{String: v, Valid: true}
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	return nil
}

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return nil, nil
}

func sampleRow(eventTime time.Time, eventName string) []any {
	row := make([]any, len(selectColumns))
	row[0] = eventTime
	for i := 1; i < len(row); i++ {
		row[i] = nil
	}
	row[1] = eventName
	return row
}

func TestLoader_Load(t *testing.T) {
	t1 := time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC)

	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "FROM clickstream_events") {
				t.Fatalf("unexpected query: %s", query)
			}
			if !strings.Contains(query, "ORDER BY event_time") {
				t.Fatalf("expected ordered query, got: %s", query)
			}

			row := sampleRow(t1, "PAYMENT")
			row[2] = "android" // platform

			return &fakeRowScanner{rows: [][]any{row}}, nil
		},
	}

	l := NewLoader(db, "clickstream_events")

	columns, rows, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.called {
		t.Fatalf("expected QueryContext to be called")
	}

	if len(columns) != len(selectColumns) {
		t.Fatalf("expected %d columns, got %d", len(selectColumns), len(columns))
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	if rows[0]["event_time"] != t1.Format(time.RFC3339) {
		t.Fatalf("unexpected event_time: %q", rows[0]["event_time"])
	}
	if rows[0]["event_name"] != "PAYMENT" {
		t.Fatalf("unexpected event_name: %q", rows[0]["event_name"])
	}
	if rows[0]["platform"] != "android" {
		t.Fatalf("unexpected platform: %q", rows[0]["platform"])
	}

	// Null columns must be absent, not empty strings.
	if _, ok := rows[0]["mp_os"]; ok {
		t.Fatalf("expected null mp_os to be absent")
	}
}

func TestLoader_DBError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}

	l := NewLoader(db, "clickstream_events")

	if _, _, err := l.Load(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestLoader_RowsErrPropagates(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{err: errors.New("cursor failure")}, nil
		},
	}

	l := NewLoader(db, "clickstream_events")

	if _, _, err := l.Load(context.Background()); err == nil {
		t.Fatalf("expected cursor error, got nil")
	}
}
