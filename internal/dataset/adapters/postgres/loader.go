package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ott-insights-service/internal/dataset/core/domain"
	"ott-insights-service/internal/dataset/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// selectColumns is the fixed clickstream projection read from the table.
var selectColumns = []string{
	domain.ColEventTime,
	domain.ColEventName,
	domain.ColPlatform,
	domain.ColUserType,
	domain.ColCampaign,
	domain.ColPaymentMethod,
	domain.ColPaymentStatus,
	domain.ColPackName,
	domain.ColPackPrice,
	"mp_brand",
	"mp_browser",
	"mp_carrier",
	"mp_city",
	"mp_country_code",
	"mp_manufacturer",
	"mp_model",
	domain.ColOS,
	"mp_os_version",
	"mp_region",
	"mp_wifi",
}

// Loader reads the clickstream table from Postgres.
type Loader struct {
	db    DB
	table string
}

func NewLoader(db DB, table string) *Loader {
	return &Loader{db: db, table: table}
}

var _ ports.LoaderPort = (*Loader)(nil)

func (l *Loader) Load(ctx context.Context) ([]string, []ports.RawRow, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		strings.Join(selectColumns, ", "),
		l.table,
		domain.ColEventTime,
	)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var out []ports.RawRow
	for rows.Next() {
		var eventTime time.Time
		dest := make([]any, len(selectColumns))
		dest[0] = &eventTime

		values := make([]sql.NullString, len(selectColumns)-1)
		for i := range values {
			dest[i+1] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}

		row := make(ports.RawRow, len(selectColumns))
		row[domain.ColEventTime] = eventTime.UTC().Format(time.RFC3339)
		for i, v := range values {
			if v.Valid && v.String != "" {
				row[selectColumns[i+1]] = v.String
			}
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	columns := make([]string, len(selectColumns))
	copy(columns, selectColumns)

	return columns, out, nil
}
