package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/vitasport-core/internal/application/reports"
)

// ByProductRequest parámetros del ranking por producto.
type ByProductRequest struct {
	RangeRequest
	OrderBy string `json:"order_by" validate:"omitempty,oneof=revenue quantity"`
	Limit   int    `json:"limit" validate:"min=0,max=100"`
}

// TrendRequest parámetros de la tendencia diaria.
type TrendRequest struct {
	Days int `json:"days" validate:"min=0,max=365"` // 0 = default (7)
}

// TotalsResponse totales del rango.
type TotalsResponse struct {
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// FromTotals arma el DTO de respuesta.
func FromTotals(t reports.Totals) TotalsResponse {
	return TotalsResponse{Units: t.Units, Revenue: t.Revenue}
}

// RankingResponse una fila del ranking por producto.
type RankingResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Units       int64           `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// FromRanking mapea el ranking.
func FromRanking(rows []reports.ProductRanking) []RankingResponse {
	out := make([]RankingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, RankingResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Units:       r.Units,
			Revenue:     r.Revenue,
		})
	}
	return out
}

// TrendBucketResponse un día con ventas.
type TrendBucketResponse struct {
	Day     string          `json:"day"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// FromTrend mapea la tendencia.
func FromTrend(buckets []reports.TrendBucket) []TrendBucketResponse {
	out := make([]TrendBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TrendBucketResponse{Day: b.Day, Count: b.Count, Revenue: b.Revenue})
	}
	return out
}

// DashboardResponse resumen para la pantalla principal.
type DashboardResponse struct {
	Today       TotalsResponse      `json:"today"`
	Month       TotalsResponse      `json:"month"`
	TopProducts []RankingResponse   `json:"top_products"`
	LowStock    []StockItemResponse `json:"low_stock"`
}

// FromDashboard arma el DTO de respuesta.
func FromDashboard(s *reports.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		Today:       FromTotals(s.TodayTotals),
		Month:       FromTotals(s.MonthTotals),
		TopProducts: FromRanking(s.TopProducts),
		LowStock:    FromProductStocks(s.LowStock),
	}
}
