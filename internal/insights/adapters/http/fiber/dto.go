package fiber

type StepCountResponse struct {
	Step  string `json:"step"`
	Count int    `json:"count"`
}

type FlowEdgeResponse struct {
	Source            string  `json:"source"`
	Target            string  `json:"target"`
	Volume            int     `json:"volume"`
	ConversionPercent float64 `json:"conversion_percent"`
}

type DateCountResponse struct {
	Date  string `json:"date" example:"2024-03-01"`
	Count int    `json:"count"`
}

type KeyCountResponse struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type PaymentCountResponse struct {
	Method string `json:"payment_method"`
	Status string `json:"payment_status"`
	Count  int    `json:"count"`
}

type PackStatResponse struct {
	Pack      string  `json:"pack_name"`
	Count     int     `json:"count"`
	MeanPrice float64 `json:"mean_price"`
}

type DashboardResponse struct {
	SnapshotID    string `json:"snapshot_id"`
	FilteredCount int    `json:"filtered_count"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Platform      string `json:"platform,omitempty"`
	UserType      string `json:"user_type,omitempty"`

	FunnelCounts []StepCountResponse `json:"funnel_counts"`
	FlowEdges    []FlowEdgeResponse  `json:"flow_edges"`
	StepIndex    map[string]int      `json:"step_index"`
	DailyTrend   []DateCountResponse `json:"daily_trend"`

	Campaigns      []KeyCountResponse     `json:"campaign_conversions,omitempty"`
	OSDistribution []KeyCountResponse     `json:"os_distribution,omitempty"`
	Payments       []PaymentCountResponse `json:"payment_breakdown,omitempty"`
	Packs          []PackStatResponse     `json:"pack_stats,omitempty"`

	Column             string             `json:"column,omitempty"`
	ColumnDistribution []KeyCountResponse `json:"column_distribution,omitempty"`

	DisabledViews []string `json:"disabled_views,omitempty"`
}

type FunnelStepsResponse struct {
	Steps     []string       `json:"steps"`
	StepIndex map[string]int `json:"step_index"`
}

type ColumnsResponse struct {
	Columns []string `json:"columns"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	SnapshotID string `json:"snapshot_id"`
	Rows       int    `json:"rows"`
	LoadedAt   string `json:"loaded_at"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"start_date is required"`
}
