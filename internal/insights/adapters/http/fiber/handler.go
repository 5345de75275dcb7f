package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	dataset "ott-insights-service/internal/dataset/core/domain"
	"ott-insights-service/internal/insights/core/domain"
	"ott-insights-service/internal/insights/core/usecase"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type RefreshDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.RefreshDashboardInput) (*domain.Dashboard, error)
	FunnelSteps() []string
	StepIndex() map[string]int
	DeviceColumns() []string
	Snapshot() (*dataset.Snapshot, error)
}

type InsightsHandler struct {
	uc RefreshDashboardUseCase
}

func NewInsightsHandler(uc RefreshDashboardUseCase) *InsightsHandler {
	return &InsightsHandler{uc: uc}
}

// GetDashboard godoc
// @Summary Refresh the dashboard
// @Description Filters the cached clickstream snapshot and recomputes every enabled view
// @Tags Insights
// @Produce json
// @Param start_date query string true "Inclusive start date (2006-01-02)"
// @Param end_date query string true "Inclusive end date (2006-01-02)"
// @Param platform query string false "Platform equality filter"
// @Param user_type query string false "User type equality filter"
// @Param column query string false "Device attribute for the top-N explorer"
// @Param top_n query int false "Explorer result cap"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights/dashboard [get]
func (h *InsightsHandler) GetDashboard(c *fiber.Ctx) error {
	startStr := c.Query("start_date", "")
	endStr := c.Query("end_date", "")
	if startStr == "" || endStr == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "start_date and end_date are required",
		})
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "invalid start_date",
		})
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "invalid end_date",
		})
	}

	topN := 0
	if raw := c.Query("top_n", ""); raw != "" {
		topN, err = strconv.Atoi(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: "invalid top_n",
			})
		}
	}

	in := usecase.RefreshDashboardInput{
		Filter: domain.Filter{
			StartDate: start.UTC(),
			EndDate:   end.UTC(),
			Platform:  c.Query("platform", ""),
			UserType:  c.Query("user_type", ""),
		},
		Column: c.Query("column", ""),
		TopN:   topN,
	}

	d, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidColumn),
			errors.Is(err, usecase.ErrInvalidTopN):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		case errors.Is(err, usecase.ErrDatasetNotLoaded):
			return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
				Error: "dataset_not_loaded",
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(toDashboardResponse(d))
}

// GetFunnelSteps godoc
// @Summary Funnel step configuration
// @Description Returns the fixed ordered funnel step list and its index map
// @Tags Insights
// @Produce json
// @Success 200 {object} FunnelStepsResponse
// @Router /insights/funnel-steps [get]
func (h *InsightsHandler) GetFunnelSteps(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(FunnelStepsResponse{
		Steps:     h.uc.FunnelSteps(),
		StepIndex: h.uc.StepIndex(),
	})
}

// GetColumns godoc
// @Summary Explorable device columns
// @Description Returns the device attribute columns present in the loaded dataset
// @Tags Insights
// @Produce json
// @Success 200 {object} ColumnsResponse
// @Router /insights/columns [get]
func (h *InsightsHandler) GetColumns(c *fiber.Ctx) error {
	cols := h.uc.DeviceColumns()
	if cols == nil {
		cols = []string{}
	}
	return c.Status(http.StatusOK).JSON(ColumnsResponse{Columns: cols})
}

// GetHealth godoc
// @Summary Service health
// @Description Reports the cached snapshot identity and size
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse
// @Router /healthz [get]
func (h *InsightsHandler) GetHealth(c *fiber.Ctx) error {
	snap, err := h.uc.Snapshot()
	if err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "dataset_not_loaded",
		})
	}
	return c.Status(http.StatusOK).JSON(HealthResponse{
		Status:     "ok",
		SnapshotID: snap.ID.String(),
		Rows:       len(snap.Events),
		LoadedAt:   snap.LoadedAt.Format(time.RFC3339),
	})
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		SnapshotID:    d.SnapshotID,
		FilteredCount: d.FilteredCount,
		StartDate:     d.Filter.StartDate.Format(dateLayout),
		EndDate:       d.Filter.EndDate.Format(dateLayout),
		Platform:      d.Filter.Platform,
		UserType:      d.Filter.UserType,
		StepIndex:     d.StepIndex,
		Column:        d.Column,
		DisabledViews: d.DisabledViews,
	}

	resp.FunnelCounts = make([]StepCountResponse, 0, len(d.FunnelCounts))
	for _, s := range d.FunnelCounts {
		resp.FunnelCounts = append(resp.FunnelCounts, StepCountResponse{Step: s.Step, Count: s.Count})
	}

	resp.FlowEdges = make([]FlowEdgeResponse, 0, len(d.FlowEdges))
	for _, e := range d.FlowEdges {
		resp.FlowEdges = append(resp.FlowEdges, FlowEdgeResponse{
			Source:            e.Source,
			Target:            e.Target,
			Volume:            e.Volume,
			ConversionPercent: e.ConversionPercent,
		})
	}

	resp.DailyTrend = make([]DateCountResponse, 0, len(d.DailyTrend))
	for _, t := range d.DailyTrend {
		resp.DailyTrend = append(resp.DailyTrend, DateCountResponse{
			Date:  t.Date.Format(dateLayout),
			Count: t.Count,
		})
	}

	resp.Campaigns = toKeyCounts(d.Campaigns)
	resp.OSDistribution = toKeyCounts(d.OSDistribution)
	resp.ColumnDistribution = toKeyCounts(d.ColumnDistribution)

	for _, p := range d.Payments {
		resp.Payments = append(resp.Payments, PaymentCountResponse{
			Method: p.Method,
			Status: p.Status,
			Count:  p.Count,
		})
	}

	for _, p := range d.Packs {
		resp.Packs = append(resp.Packs, PackStatResponse{
			Pack:      p.Pack,
			Count:     p.Count,
			MeanPrice: p.MeanPrice,
		})
	}

	return resp
}

func toKeyCounts(in []domain.KeyCount) []KeyCountResponse {
	if in == nil {
		return nil
	}
	out := make([]KeyCountResponse, 0, len(in))
	for _, k := range in {
		out = append(out, KeyCountResponse{Key: k.Key, Count: k.Count})
	}
	return out
}
