package domain

import "time"

// Filter is the conjunction applied to the snapshot before any view is
// computed. Empty Platform/UserType means no filter.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	Platform  string
	UserType  string
}

// FlowEdge links two adjacent funnel steps. Volume is min(source count,
// target count); ConversionPercent is target/source*100, 0 when the
// source count is 0, and deliberately never clamped to 100.
type FlowEdge struct {
	Source            string
	Target            string
	Volume            int
	ConversionPercent float64
}

type StepCount struct {
	Step  string
	Count int
}

type KeyCount struct {
	Key   string
	Count int
}

type DateCount struct {
	Date  time.Time
	Count int
}

type PaymentCount struct {
	Method string
	Status string
	Count  int
}

type PackStat struct {
	Pack      string
	Count     int
	MeanPrice float64
}

// Dashboard is one full refresh cycle over the filtered snapshot.
// A nil view slice together with its name in DisabledViews means the
// snapshot is missing a column that view needs.
type Dashboard struct {
	SnapshotID    string
	FilteredCount int
	Filter        Filter

	FunnelCounts []StepCount
	FlowEdges    []FlowEdge
	StepIndex    map[string]int
	DailyTrend   []DateCount

	Campaigns      []KeyCount
	OSDistribution []KeyCount
	Payments       []PaymentCount
	Packs          []PackStat

	Column             string
	ColumnDistribution []KeyCount

	DisabledViews []string
}
