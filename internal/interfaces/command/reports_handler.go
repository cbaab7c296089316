package command

import (
	"context"

	"github.com/jhoicas/vitasport-core/internal/application/dto"
	"github.com/jhoicas/vitasport-core/internal/application/reports"
)

// ReportsHandler comandos de agregación de ventas.
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// Register registra los comandos de reportes.
func (h *ReportsHandler) Register(d *Dispatcher) {
	d.Register("reports.totals", h.totals(d))
	d.Register("reports.by_product", h.byProduct(d))
	d.Register("reports.trend", h.trend(d))
	d.Register("reports.dashboard", h.dashboard())
}

func (h *ReportsHandler) totals(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.RangeRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		from, to, err := body.ParseRange()
		if err != nil {
			return nil, err
		}
		totals, err := h.uc.GetTotals(ctx, reports.RangeFilter{From: from, To: to, Category: body.Category})
		if err != nil {
			return nil, err
		}
		return dto.FromTotals(totals), nil
	}
}

func (h *ReportsHandler) byProduct(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.ByProductRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		from, to, err := body.ParseRange()
		if err != nil {
			return nil, err
		}
		filter := reports.RangeFilter{From: from, To: to, Category: body.Category}
		ranking, err := h.uc.ByProduct(ctx, filter, body.OrderBy, body.Limit)
		if err != nil {
			return nil, err
		}
		return dto.FromRanking(ranking), nil
	}
}

func (h *ReportsHandler) trend(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.TrendRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		days := body.Days
		if days == 0 {
			days = reports.DefaultTrendDays
		}
		trend, err := h.uc.Trend(ctx, days)
		if err != nil {
			return nil, err
		}
		return dto.FromTrend(trend), nil
	}
}

func (h *ReportsHandler) dashboard() HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		summary, err := h.uc.Dashboard(ctx)
		if err != nil {
			return nil, err
		}
		return dto.FromDashboard(summary), nil
	}
}
