package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ott-insights-service/internal/dataset/core/domain"
	"ott-insights-service/internal/dataset/core/ports"

	"github.com/google/uuid"
)

var ErrLoad = errors.New("dataset load failed")

// Accepted event_time layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type LoadDatasetUseCase struct {
	loader ports.LoaderPort
}

func NewLoadDatasetUseCase(loader ports.LoaderPort) *LoadDatasetUseCase {
	return &LoadDatasetUseCase{loader: loader}
}

// Execute reads the source once and builds the immutable snapshot.
// An unparseable or missing event_time anywhere in the source is fatal:
// no partial snapshot is ever produced.
func (uc *LoadDatasetUseCase) Execute(ctx context.Context) (*domain.Snapshot, error) {
	columns, rows, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	hasEventTime := false
	for _, c := range columns {
		if c == domain.ColEventTime {
			hasEventTime = true
			break
		}
	}
	if !hasEventTime {
		return nil, fmt.Errorf("%w: missing required column %q", ErrLoad, domain.ColEventTime)
	}

	events := make([]domain.Event, 0, len(rows))
	for i, row := range rows {
		raw, ok := row[domain.ColEventTime]
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("%w: row %d: empty %s", ErrLoad, i+1, domain.ColEventTime)
		}

		ts, err := parseEventTime(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrLoad, i+1, err)
		}

		attrs := make(map[string]string, len(row))
		for col, val := range row {
			if col == domain.ColEventTime || col == domain.ColEventName {
				continue
			}
			if strings.TrimSpace(val) == "" {
				continue
			}
			attrs[col] = val
		}

		events = append(events, domain.Event{
			EventTime: ts,
			EventDate: ts.Truncate(24 * time.Hour),
			EventName: row[domain.ColEventName],
			Attrs:     attrs,
		})
	}

	schemaCols := append([]string{domain.ColEventDate}, columns...)

	return &domain.Snapshot{
		ID:       uuid.New(),
		Events:   events,
		Schema:   domain.NewSchema(schemaCols),
		LoadedAt: time.Now().UTC(),
	}, nil
}

func parseEventTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable event_time %q", raw)
}
