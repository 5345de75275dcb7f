package ports

import "context"

// RawRow maps column name to the raw cell value. Null cells are absent.
type RawRow map[string]string

type LoaderPort interface {
	// Load reads the full clickstream table from the source.
	// Called once per process; the snapshot built from it is cached
	// for the process lifetime.
	Load(ctx context.Context) (columns []string, rows []RawRow, err error)
}
