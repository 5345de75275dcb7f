package usecase

import (
	"context"
	"errors"
	"sort"

	dataset "ott-insights-service/internal/dataset/core/domain"
	"ott-insights-service/internal/insights/core/aggregate"
	"ott-insights-service/internal/insights/core/domain"
	"ott-insights-service/internal/insights/core/funnel"
)

var (
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrInvalidColumn    = errors.New("column is not a device attribute")
	ErrInvalidTopN      = errors.New("top_n out of range")
)

const maxTopN = 1000

// View names reported in DisabledViews when a required column is
// missing from the loaded schema.
const (
	ViewCampaigns = "campaign_conversions"
	ViewOS        = "os_distribution"
	ViewPayments  = "payment_breakdown"
	ViewPacks     = "pack_stats"
	ViewExplorer  = "column_distribution"
)

// columnViews gate each optional view on the columns it reads. Presence
// is checked once per load, not per refresh.
var columnViews = []struct {
	name     string
	requires []string
}{
	{ViewCampaigns, []string{dataset.ColCampaign}},
	{ViewOS, []string{dataset.ColOS}},
	{ViewPayments, []string{dataset.ColPaymentMethod, dataset.ColPaymentStatus}},
	{ViewPacks, []string{dataset.ColPackName, dataset.ColPackPrice}},
}

// deviceColumns is the attribute-explorer whitelist.
var deviceColumns = []string{
	"mp_brand",
	"mp_browser",
	"mp_carrier",
	"mp_city",
	"mp_country_code",
	"mp_manufacturer",
	"mp_model",
	"mp_os",
	"mp_os_version",
	"mp_region",
	"mp_wifi",
}

type RefreshDashboardInput struct {
	Filter domain.Filter
	Column string // device attribute for the explorer; "" disables it
	TopN   int    // 0 means the configured default
}

type RefreshDashboardUseCase struct {
	snapshot    *dataset.Snapshot
	steps       []string
	stepIndex   map[string]int
	defaultTopN int

	enabled         map[string]bool
	presentExplorer []string
}

func NewRefreshDashboardUseCase(snapshot *dataset.Snapshot, defaultTopN int) *RefreshDashboardUseCase {
	uc := &RefreshDashboardUseCase{
		snapshot:    snapshot,
		steps:       funnel.Steps(),
		defaultTopN: defaultTopN,
		enabled:     make(map[string]bool, len(columnViews)),
	}
	uc.stepIndex = funnel.StepIndex(uc.steps)

	if snapshot != nil {
		for _, v := range columnViews {
			uc.enabled[v.name] = snapshot.Schema.Has(v.requires...)
		}
		for _, c := range deviceColumns {
			if snapshot.Schema.Has(c) {
				uc.presentExplorer = append(uc.presentExplorer, c)
			}
		}
	}

	return uc
}

// FunnelSteps returns the fixed ordered step list exposed to the UI.
func (uc *RefreshDashboardUseCase) FunnelSteps() []string {
	out := make([]string, len(uc.steps))
	copy(out, uc.steps)
	return out
}

// StepIndex returns the stable name-to-position map for flow renderers.
func (uc *RefreshDashboardUseCase) StepIndex() map[string]int {
	out := make(map[string]int, len(uc.stepIndex))
	for k, v := range uc.stepIndex {
		out[k] = v
	}
	return out
}

// DeviceColumns returns the explorer columns present in the schema.
func (uc *RefreshDashboardUseCase) DeviceColumns() []string {
	out := make([]string, len(uc.presentExplorer))
	copy(out, uc.presentExplorer)
	return out
}

// Snapshot exposes the cached dataset for health reporting.
func (uc *RefreshDashboardUseCase) Snapshot() (*dataset.Snapshot, error) {
	if uc.snapshot == nil {
		return nil, ErrDatasetNotLoaded
	}
	return uc.snapshot, nil
}

// Execute runs one full refresh cycle: filter once, then compute every
// enabled view over the same filtered slice. Views share nothing beyond
// that read-only slice.
func (uc *RefreshDashboardUseCase) Execute(ctx context.Context, in RefreshDashboardInput) (*domain.Dashboard, error) {
	if uc.snapshot == nil {
		return nil, ErrDatasetNotLoaded
	}

	if in.Column != "" && !isDeviceColumn(in.Column) {
		return nil, ErrInvalidColumn
	}

	topN := in.TopN
	if topN == 0 {
		topN = uc.defaultTopN
	}
	if topN < 1 || topN > maxTopN {
		return nil, ErrInvalidTopN
	}

	filtered := funnel.Apply(uc.snapshot.Events, in.Filter)

	d := &domain.Dashboard{
		SnapshotID:    uc.snapshot.ID.String(),
		FilteredCount: len(filtered),
		Filter:        in.Filter,
		FunnelCounts:  aggregate.FunnelCounts(filtered, uc.steps),
		FlowEdges:     funnel.BuildFlow(filtered, uc.steps),
		StepIndex:     uc.StepIndex(),
		DailyTrend:    aggregate.DailyCounts(filtered),
	}

	if uc.enabled[ViewCampaigns] {
		d.Campaigns = aggregate.CampaignConversions(filtered)
	} else {
		d.DisabledViews = append(d.DisabledViews, ViewCampaigns)
	}

	if uc.enabled[ViewOS] {
		d.OSDistribution = aggregate.CountBy(filtered, dataset.ColOS)
	} else {
		d.DisabledViews = append(d.DisabledViews, ViewOS)
	}

	if uc.enabled[ViewPayments] {
		d.Payments = aggregate.PaymentBreakdown(filtered)
	} else {
		d.DisabledViews = append(d.DisabledViews, ViewPayments)
	}

	if uc.enabled[ViewPacks] {
		d.Packs = aggregate.PackStats(filtered)
	} else {
		d.DisabledViews = append(d.DisabledViews, ViewPacks)
	}

	if in.Column != "" {
		if uc.snapshot.Schema.Has(in.Column) {
			d.Column = in.Column
			// The explorer runs over the whole snapshot, not the
			// filtered slice.
			d.ColumnDistribution = aggregate.TopN(uc.snapshot.Events, in.Column, topN)
		} else {
			d.DisabledViews = append(d.DisabledViews, ViewExplorer)
		}
	}

	sort.Strings(d.DisabledViews)

	return d, nil
}

func isDeviceColumn(column string) bool {
	for _, c := range deviceColumns {
		if c == column {
			return true
		}
	}
	return false
}
