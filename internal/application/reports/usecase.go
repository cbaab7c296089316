// Package reports contiene las vistas derivadas de solo lectura sobre las
// ventas y el ledger: totales, ranking por producto, tendencia diaria y el
// resumen del dashboard. Cada vista se recalcula bajo demanda; no hay estado
// materializado que pueda quedar obsoleto frente a escrituras concurrentes.
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

// Valores por defecto de los reportes.
const (
	DefaultTopLimit  = 5
	DefaultTrendDays = 7
)

// Criterios de ordenamiento para ByProduct.
const (
	OrderByRevenue  = "revenue"
	OrderByQuantity = "quantity"
)

const dayFormat = "2006-01-02"

// UseCase calcula los reportes. La agregación monetaria se hace en Go con
// decimal (el TEXT de SQLite no suma con precisión exacta); el filtrado por
// rango de fechas queda en SQL. Costo O(ventas del rango), aceptable a
// escala de un inventario de escritorio.
type UseCase struct {
	saleRepo  repository.SaleRepository
	inventory *inventory.UseCase
	clock     domain.Clock
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(saleRepo repository.SaleRepository, inv *inventory.UseCase, clock domain.Clock) *UseCase {
	return &UseCase{saleRepo: saleRepo, inventory: inv, clock: clock}
}

// RangeFilter rango de fechas inclusive (solo la porción de fecha cuenta;
// la hora se ignora) y categoría opcional. Extremo nil = sin cota.
type RangeFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

// Totals suma de unidades e ingresos de las ventas del filtro.
type Totals struct {
	Units   int64
	Revenue decimal.Decimal
}

// ProductRanking una fila del ranking por producto.
type ProductRanking struct {
	ProductID   int64
	ProductName string
	Units       int64
	Revenue     decimal.Decimal
}

// TrendBucket un día con ventas: fecha (YYYY-MM-DD), número de ventas e
// ingresos. Los días sin ventas no aparecen.
type TrendBucket struct {
	Day     string
	Count   int64
	Revenue decimal.Decimal
}

// DashboardSummary resumen para la pantalla principal.
type DashboardSummary struct {
	TodayTotals Totals
	MonthTotals Totals
	TopProducts []ProductRanking
	LowStock    []*inventory.ProductStock
}

// GetTotals suma unidades e ingresos de las ventas del rango. El ingreso de
// cada línea es cantidad × precio − descuento.
func (uc *UseCase) GetTotals(ctx context.Context, filter RangeFilter) (Totals, error) {
	lines, err := uc.saleRepo.ListInRange(filter.From, filter.To, filter.Category)
	if err != nil {
		return Totals{}, err
	}
	return foldTotals(lines), nil
}

// ByProduct agrupa las ventas del rango por producto y ordena descendente
// por ingresos o unidades según orderBy. limit <= 0 usa el tope por defecto
// (5). Productos sin ventas en el rango no aparecen.
func (uc *UseCase) ByProduct(ctx context.Context, filter RangeFilter, orderBy string, limit int) ([]ProductRanking, error) {
	if orderBy == "" {
		orderBy = OrderByRevenue
	}
	if orderBy != OrderByRevenue && orderBy != OrderByQuantity {
		return nil, &domain.ValidationError{Field: "order_by", Reason: "debe ser 'revenue' o 'quantity'"}
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	lines, err := uc.saleRepo.ListInRange(filter.From, filter.To, filter.Category)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[int64]*ProductRanking)
	for _, line := range lines {
		row, ok := byProduct[line.Sale.ProductID]
		if !ok {
			row = &ProductRanking{ProductID: line.Sale.ProductID, ProductName: line.ProductName}
			byProduct[line.Sale.ProductID] = row
		}
		row.Units += line.Sale.Quantity
		row.Revenue = row.Revenue.Add(line.Sale.Revenue())
	}

	ranking := make([]ProductRanking, 0, len(byProduct))
	for _, row := range byProduct {
		ranking = append(ranking, *row)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if orderBy == OrderByQuantity {
			if ranking[i].Units != ranking[j].Units {
				return ranking[i].Units > ranking[j].Units
			}
		} else if !ranking[i].Revenue.Equal(ranking[j].Revenue) {
			return ranking[i].Revenue.GreaterThan(ranking[j].Revenue)
		}
		return ranking[i].ProductName < ranking[j].ProductName
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

// Trend agrupa las ventas por día calendario sobre una ventana móvil de
// days días que termina hoy, ascendente por día. days <= 0 se acota a 0
// (ventana vacía). La serie es dispersa: los días sin ventas se omiten en
// lugar de emitirse en cero, igual que el reporte original.
func (uc *UseCase) Trend(ctx context.Context, days int) ([]TrendBucket, error) {
	if days < 0 {
		days = 0
	}
	if days == 0 {
		return nil, nil
	}

	now := uc.clock.Now()
	since := now.AddDate(0, 0, -(days - 1))
	lines, err := uc.saleRepo.ListInRange(&since, &now, "")
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*TrendBucket)
	for _, line := range lines {
		day := line.Sale.SaleDate.UTC().Format(dayFormat)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &TrendBucket{Day: day}
			byDay[day] = bucket
		}
		bucket.Count++
		bucket.Revenue = bucket.Revenue.Add(line.Sale.Revenue())
	}

	trend := make([]TrendBucket, 0, len(byDay))
	for _, bucket := range byDay {
		trend = append(trend, *bucket)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Day < trend[j].Day })
	return trend, nil
}

// Dashboard calcula en paralelo los totales de hoy, los del mes en curso,
// el top de productos del mes y las alertas de stock bajo. Son lecturas
// independientes; un error en cualquiera cancela el resto.
func (uc *UseCase) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	now := uc.clock.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var summary DashboardSummary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := uc.GetTotals(ctx, RangeFilter{From: &todayStart, To: &now})
		summary.TodayTotals = totals
		return err
	})
	g.Go(func() error {
		totals, err := uc.GetTotals(ctx, RangeFilter{From: &monthStart, To: &now})
		summary.MonthTotals = totals
		return err
	})
	g.Go(func() error {
		top, err := uc.ByProduct(ctx, RangeFilter{From: &monthStart, To: &now}, OrderByRevenue, DefaultTopLimit)
		summary.TopProducts = top
		return err
	})
	g.Go(func() error {
		low, err := uc.inventory.LowStock(ctx)
		summary.LowStock = low
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

func foldTotals(lines []*repository.SaleLine) Totals {
	t := Totals{Revenue: decimal.Zero}
	for _, line := range lines {
		t.Units += line.Sale.Quantity
		t.Revenue = t.Revenue.Add(line.Sale.Revenue())
	}
	return t
}
