package reports_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/application/reports"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type testEnv struct {
	db    *sql.DB
	uc    *reports.UseCase
	clock fixedClock
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := fixedClock{t: time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)}
	inventoryUC := inventory.NewUseCase(
		sqlite.NewTxRunner(db),
		inventory.NewProductGate(),
		sqlite.NewProductRepository(db),
		sqlite.NewStockMovementRepository(db),
		clock,
		logger.Nop(),
	)
	uc := reports.NewUseCase(sqlite.NewSaleRepository(db), inventoryUC, clock)
	return &testEnv{db: db, uc: uc, clock: clock}
}

func (e *testEnv) createProduct(t *testing.T, name, category string) int64 {
	t.Helper()
	repo := sqlite.NewProductRepository(e.db)
	id, err := repo.Create(&entity.Product{
		Name: name, SalePrice: decimal.NewFromInt(50), Category: category, Status: entity.ProductStatusActive,
	})
	require.NoError(t, err)
	return id
}

func (e *testEnv) createSale(t *testing.T, productID, qty int64, price string, day time.Time) {
	t.Helper()
	repo := sqlite.NewSaleRepository(e.db)
	_, err := repo.Create(&entity.Sale{
		ProductID: productID, Quantity: qty,
		SalePrice: decimal.RequireFromString(price), Discount: decimal.Zero,
		SaleDate: day,
	})
	require.NoError(t, err)
}

func TestGetTotalsSumsUnitsAndRevenue(t *testing.T) {
	env := newEnv(t)
	productID := env.createProduct(t, "Proteína", "proteinas")

	jan15 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	feb01 := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	env.createSale(t, productID, 2, "60", jan15) // 120
	env.createSale(t, productID, 1, "30", jan15) // 30
	env.createSale(t, productID, 5, "99", feb01) // fuera de rango

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	totals, err := env.uc.GetTotals(context.Background(), reports.RangeFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.Units)
	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(150)), "2×60 + 1×30 = 150, got %s", totals.Revenue)
}

func TestGetTotalsEmptyRange(t *testing.T) {
	env := newEnv(t)

	totals, err := env.uc.GetTotals(context.Background(), reports.RangeFilter{})
	require.NoError(t, err)
	assert.Zero(t, totals.Units)
	assert.True(t, totals.Revenue.IsZero())
}

func TestByProductOrdersAndLimits(t *testing.T) {
	env := newEnv(t)
	whey := env.createProduct(t, "Whey", "proteinas")
	creatine := env.createProduct(t, "Creatina", "aminoacidos")
	env.createProduct(t, "Sin ventas", "otros")

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	env.createSale(t, whey, 2, "100", day)    // ingresos 200, unidades 2
	env.createSale(t, creatine, 10, "10", day) // ingresos 100, unidades 10

	byRevenue, err := env.uc.ByProduct(context.Background(), reports.RangeFilter{}, reports.OrderByRevenue, 0)
	require.NoError(t, err)
	require.Len(t, byRevenue, 2, "productos sin ventas no aparecen")
	assert.Equal(t, whey, byRevenue[0].ProductID)

	byQty, err := env.uc.ByProduct(context.Background(), reports.RangeFilter{}, reports.OrderByQuantity, 0)
	require.NoError(t, err)
	assert.Equal(t, creatine, byQty[0].ProductID)

	limited, err := env.uc.ByProduct(context.Background(), reports.RangeFilter{}, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = env.uc.ByProduct(context.Background(), reports.RangeFilter{}, "precio", 0)
	assert.Error(t, err, "criterio de orden desconocido se rechaza")
}

func TestTrendBucketsByDaySparse(t *testing.T) {
	env := newEnv(t)
	productID := env.createProduct(t, "Whey", "proteinas")

	// Reloj fijo en 2024-01-16. Ventana de 2 días: 15 y 16.
	jan15 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	jan16 := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	jan10 := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	env.createSale(t, productID, 2, "60", jan15) // 120
	env.createSale(t, productID, 1, "30", jan15) // 30
	env.createSale(t, productID, 1, "30", jan16) // 30
	env.createSale(t, productID, 9, "99", jan10) // fuera de ventana

	trend, err := env.uc.Trend(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, trend, 2)

	assert.Equal(t, "2024-01-15", trend[0].Day)
	assert.Equal(t, int64(2), trend[0].Count)
	assert.True(t, trend[0].Revenue.Equal(decimal.NewFromInt(150)))

	assert.Equal(t, "2024-01-16", trend[1].Day)
	assert.Equal(t, int64(1), trend[1].Count)
	assert.True(t, trend[1].Revenue.Equal(decimal.NewFromInt(30)))
}

func TestTrendClampAndEmptyWindow(t *testing.T) {
	env := newEnv(t)

	trend, err := env.uc.Trend(context.Background(), -5)
	require.NoError(t, err)
	assert.Empty(t, trend, "días negativos se acotan a ventana vacía")
}

func TestDashboardAggregates(t *testing.T) {
	env := newEnv(t)
	productID := env.createProduct(t, "Whey", "proteinas")

	today := env.clock.Now().Add(-2 * time.Hour)
	earlierThisMonth := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2023, 12, 20, 10, 0, 0, 0, time.UTC)
	env.createSale(t, productID, 1, "50", today)
	env.createSale(t, productID, 2, "50", earlierThisMonth)
	env.createSale(t, productID, 9, "50", lastMonth)

	summary, err := env.uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.TodayTotals.Units)
	assert.Equal(t, int64(3), summary.MonthTotals.Units, "hoy + 5 de enero; diciembre no")
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, productID, summary.TopProducts[0].ProductID)
}
