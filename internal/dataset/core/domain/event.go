package domain

import (
	"time"

	"github.com/google/uuid"
)

// Well-known clickstream columns.
const (
	ColEventTime     = "event_time"
	ColEventDate     = "event_date"
	ColEventName     = "event_name"
	ColPlatform      = "platform"
	ColUserType      = "user_type"
	ColCampaign      = "af_campaign"
	ColOS            = "mp_os"
	ColPaymentMethod = "payment_method"
	ColPaymentStatus = "payment_status"
	ColPackName      = "pack_name"
	ColPackPrice     = "pack_price"
)

// Event is one clickstream record. EventTime and EventDate are always
// valid after load; every other column lives in Attrs, where a missing
// key means the source cell was null or absent.
type Event struct {
	EventTime time.Time
	EventDate time.Time
	EventName string
	Attrs     map[string]string
}

// Get resolves a column value by name, missing-safe.
func (e Event) Get(column string) (string, bool) {
	if column == ColEventName {
		if e.EventName == "" {
			return "", false
		}
		return e.EventName, true
	}
	v, ok := e.Attrs[column]
	return v, ok
}

// Schema is the set of columns present in the loaded source.
type Schema map[string]struct{}

func NewSchema(columns []string) Schema {
	s := make(Schema, len(columns))
	for _, c := range columns {
		s[c] = struct{}{}
	}
	return s
}

func (s Schema) Has(columns ...string) bool {
	for _, c := range columns {
		if _, ok := s[c]; !ok {
			return false
		}
	}
	return true
}

// Snapshot is the full dataset, loaded once per process and immutable
// afterwards. Consumers share it read-only.
type Snapshot struct {
	ID       uuid.UUID
	Events   []Event
	Schema   Schema
	LoadedAt time.Time
}
