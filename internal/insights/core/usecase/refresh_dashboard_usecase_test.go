package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	dataset "ott-insights-service/internal/dataset/core/domain"
	"ott-insights-service/internal/insights/core/domain"
	"ott-insights-service/internal/insights/core/funnel"
	"ott-insights-service/internal/insights/core/usecase"

	"github.com/google/uuid"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func snapshot(columns []string, events []dataset.Event) *dataset.Snapshot {
	return &dataset.Snapshot{
		ID:       uuid.New(),
		Events:   events,
		Schema:   dataset.NewSchema(columns),
		LoadedAt: time.Now().UTC(),
	}
}

func fullColumns() []string {
	return []string{
		"event_time", "event_date", "event_name", "platform", "user_type",
		"af_campaign", "mp_os", "payment_method", "payment_status",
		"pack_name", "pack_price", "mp_brand",
	}
}

func sampleEvents() []dataset.Event {
	d := day(2024, 3, 2)
	mk := func(name string, attrs map[string]string) dataset.Event {
		return dataset.Event{EventTime: d, EventDate: d, EventName: name, Attrs: attrs}
	}
	return []dataset.Event{
		mk("PAYMENT-INITIATE", map[string]string{"platform": "android", "mp_os": "Android", "mp_brand": "acme"}),
		mk("PAYMENT", map[string]string{"platform": "android", "payment_method": "upi", "payment_status": "success"}),
		mk("SUBSCRIBE-SUCCESS", map[string]string{"platform": "ios", "af_campaign": "summer", "pack_name": "gold", "pack_price": "100"}),
	}
}

func window() domain.Filter {
	return domain.Filter{StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 31)}
}

// ------------------------------------------------------------
// FULL SCHEMA: every view enabled
// ------------------------------------------------------------

func TestRefreshDashboard_AllViewsEnabled(t *testing.T) {
	uc := usecase.NewRefreshDashboardUseCase(snapshot(fullColumns(), sampleEvents()), 20)

	d, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{Filter: window()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.FilteredCount != 3 {
		t.Fatalf("expected 3 filtered events, got %d", d.FilteredCount)
	}
	if len(d.FunnelCounts) != 10 {
		t.Fatalf("expected 10 funnel rows, got %d", len(d.FunnelCounts))
	}
	if len(d.FlowEdges) != 9 {
		t.Fatalf("expected 9 flow edges, got %d", len(d.FlowEdges))
	}
	if len(d.DisabledViews) != 0 {
		t.Fatalf("expected no disabled views, got %v", d.DisabledViews)
	}
	if len(d.Campaigns) != 1 || d.Campaigns[0].Key != "summer" {
		t.Fatalf("unexpected campaigns: %+v", d.Campaigns)
	}
	if len(d.Payments) != 1 || d.Payments[0].Method != "upi" {
		t.Fatalf("unexpected payments: %+v", d.Payments)
	}
	if len(d.Packs) != 1 || d.Packs[0].MeanPrice != 100.0 {
		t.Fatalf("unexpected packs: %+v", d.Packs)
	}
	if len(d.DailyTrend) != 1 || d.DailyTrend[0].Count != 3 {
		t.Fatalf("unexpected daily trend: %+v", d.DailyTrend)
	}
}

// ------------------------------------------------------------
// MISSING COLUMNS: views skipped, siblings unaffected
// ------------------------------------------------------------

func TestRefreshDashboard_MissingColumnsSkipViews(t *testing.T) {
	columns := []string{"event_time", "event_date", "event_name", "platform", "user_type", "mp_os"}
	uc := usecase.NewRefreshDashboardUseCase(snapshot(columns, sampleEvents()), 20)

	d, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{Filter: window()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDisabled := []string{
		usecase.ViewCampaigns,
		usecase.ViewPacks,
		usecase.ViewPayments,
	}
	if !reflect.DeepEqual(d.DisabledViews, wantDisabled) {
		t.Fatalf("expected disabled views %v, got %v", wantDisabled, d.DisabledViews)
	}

	if d.Campaigns != nil || d.Payments != nil || d.Packs != nil {
		t.Fatalf("expected skipped views to be nil")
	}
	if d.OSDistribution == nil {
		t.Fatalf("expected os_distribution to survive sibling failures")
	}
	if len(d.FlowEdges) != 9 {
		t.Fatalf("expected funnel flow untouched, got %d edges", len(d.FlowEdges))
	}
}

// ------------------------------------------------------------
// EXPLORER
// ------------------------------------------------------------

func TestRefreshDashboard_ExplorerUsesFullSnapshot(t *testing.T) {
	// One event outside the filter window: the explorer must still see it.
	events := sampleEvents()
	events = append(events, dataset.Event{
		EventTime: day(2023, 1, 1),
		EventDate: day(2023, 1, 1),
		EventName: "PAYMENT",
		Attrs:     map[string]string{"mp_brand": "acme"},
	})

	uc := usecase.NewRefreshDashboardUseCase(snapshot(fullColumns(), events), 20)

	d, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{
		Filter: window(),
		Column: "mp_brand",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Column != "mp_brand" {
		t.Fatalf("expected explorer column mp_brand, got %q", d.Column)
	}
	if len(d.ColumnDistribution) != 1 || d.ColumnDistribution[0].Count != 2 {
		t.Fatalf("expected acme counted over the full snapshot, got %+v", d.ColumnDistribution)
	}
}

func TestRefreshDashboard_ExplorerColumnAbsentFromSchema(t *testing.T) {
	columns := []string{"event_time", "event_date", "event_name", "platform", "user_type"}
	uc := usecase.NewRefreshDashboardUseCase(snapshot(columns, sampleEvents()), 20)

	d, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{
		Filter: window(),
		Column: "mp_brand",
	})
	if err != nil {
		t.Fatalf("expected skip, not error, got %v", err)
	}

	if d.Column != "" || d.ColumnDistribution != nil {
		t.Fatalf("expected explorer omitted, got column=%q dist=%+v", d.Column, d.ColumnDistribution)
	}

	found := false
	for _, v := range d.DisabledViews {
		if v == usecase.ViewExplorer {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s in disabled views, got %v", usecase.ViewExplorer, d.DisabledViews)
	}
}

func TestRefreshDashboard_InvalidColumn(t *testing.T) {
	uc := usecase.NewRefreshDashboardUseCase(snapshot(fullColumns(), sampleEvents()), 20)

	_, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{
		Filter: window(),
		Column: "payment_method", // not a device attribute
	})
	if !errors.Is(err, usecase.ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
}

func TestRefreshDashboard_TopNValidation(t *testing.T) {
	uc := usecase.NewRefreshDashboardUseCase(snapshot(fullColumns(), sampleEvents()), 20)

	_, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{
		Filter: window(),
		TopN:   -1,
	})
	if !errors.Is(err, usecase.ErrInvalidTopN) {
		t.Fatalf("expected ErrInvalidTopN, got %v", err)
	}

	_, err = uc.Execute(context.Background(), usecase.RefreshDashboardInput{
		Filter: window(),
		TopN:   100001,
	})
	if !errors.Is(err, usecase.ErrInvalidTopN) {
		t.Fatalf("expected ErrInvalidTopN for oversized top_n, got %v", err)
	}
}

// ------------------------------------------------------------
// EMPTY RESULT / NOT LOADED
// ------------------------------------------------------------

func TestRefreshDashboard_EmptyFilterResultIsNotAnError(t *testing.T) {
	uc := usecase.NewRefreshDashboardUseCase(snapshot(fullColumns(), sampleEvents()), 20)

	d, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{
		Filter: domain.Filter{StartDate: day(2030, 1, 1), EndDate: day(2030, 1, 2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.FilteredCount != 0 {
		t.Fatalf("expected 0 filtered events, got %d", d.FilteredCount)
	}
	if len(d.FunnelCounts) != 10 {
		t.Fatalf("expected zero-filled funnel rows, got %d", len(d.FunnelCounts))
	}
	for _, row := range d.FunnelCounts {
		if row.Count != 0 {
			t.Fatalf("expected zero counts, got %+v", row)
		}
	}
	if len(d.FlowEdges) != 9 {
		t.Fatalf("expected 9 zero edges, got %d", len(d.FlowEdges))
	}
}

func TestRefreshDashboard_DatasetNotLoaded(t *testing.T) {
	uc := usecase.NewRefreshDashboardUseCase(nil, 20)

	_, err := uc.Execute(context.Background(), usecase.RefreshDashboardInput{Filter: window()})
	if !errors.Is(err, usecase.ErrDatasetNotLoaded) {
		t.Fatalf("expected ErrDatasetNotLoaded, got %v", err)
	}

	if _, err := uc.Snapshot(); !errors.Is(err, usecase.ErrDatasetNotLoaded) {
		t.Fatalf("expected ErrDatasetNotLoaded from Snapshot, got %v", err)
	}
}

// ------------------------------------------------------------
// CONFIGURATION ACCESSORS
// ------------------------------------------------------------

func TestRefreshDashboard_StepAccessors(t *testing.T) {
	uc := usecase.NewRefreshDashboardUseCase(snapshot(fullColumns(), nil), 20)

	steps := uc.FunnelSteps()
	if !reflect.DeepEqual(steps, funnel.Steps()) {
		t.Fatalf("expected configured steps, got %v", steps)
	}

	idx := uc.StepIndex()
	for i, s := range steps {
		if idx[s] != i {
			t.Fatalf("expected index %d for %s, got %d", i, s, idx[s])
		}
	}
}

func TestRefreshDashboard_DeviceColumnsFromSchema(t *testing.T) {
	uc := usecase.NewRefreshDashboardUseCase(snapshot(fullColumns(), nil), 20)

	cols := uc.DeviceColumns()
	want := []string{"mp_brand", "mp_os"}

	got := make(map[string]bool, len(cols))
	for _, c := range cols {
		got[c] = true
	}
	for _, c := range want {
		if !got[c] {
			t.Fatalf("expected %s in device columns, got %v", c, cols)
		}
	}
	if len(cols) != len(want) {
		t.Fatalf("expected exactly %v, got %v", want, cols)
	}
}
