package exports_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vitasport-core/internal/application/exports"
	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/application/reports"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

func newUseCase(t *testing.T) (*exports.UseCase, *sql.DB) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	inventoryUC := inventory.NewUseCase(
		sqlite.NewTxRunner(db),
		inventory.NewProductGate(),
		sqlite.NewProductRepository(db),
		sqlite.NewStockMovementRepository(db),
		domain.SystemClock{},
		logger.Nop(),
	)
	return exports.NewUseCase(sqlite.NewSaleRepository(db), inventoryUC), db
}

func seedSale(t *testing.T, db *sql.DB, productName string) {
	t.Helper()
	productRepo := sqlite.NewProductRepository(db)
	id, err := productRepo.Create(&entity.Product{
		Name: productName, SalePrice: decimal.NewFromInt(75), Category: "proteinas", Status: entity.ProductStatusActive,
	})
	require.NoError(t, err)

	_, err = sqlite.NewSaleRepository(db).Create(&entity.Sale{
		ProductID: id, Quantity: 2,
		SalePrice: decimal.RequireFromString("75.50"), Discount: decimal.RequireFromString("1.00"),
		SaleDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestSalesCSVContent(t *testing.T) {
	uc, db := newUseCase(t)
	seedSale(t, db, `Proteína "Premium", 2lb`)

	data, err := uc.SalesCSV(context.Background(), reports.RangeFilter{}, "")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err, "el CSV debe reparsearse aun con comillas y comas en los campos")
	require.Len(t, records, 2, "encabezado + una venta")

	header := records[0]
	assert.Equal(t, "id", header[0])
	assert.Equal(t, "producto", header[2])

	row := records[1]
	assert.Equal(t, `Proteína "Premium", 2lb`, row[2])
	assert.Equal(t, "2", row[4])
	assert.Equal(t, "75.50", row[5])
	assert.Equal(t, "150.00", row[7], "total = 2×75.50 − 1.00")
}

func TestSalesCSVLatin1Encoding(t *testing.T) {
	uc, db := newUseCase(t)
	seedSale(t, db, "Proteína")

	data, err := uc.SalesCSV(context.Background(), reports.RangeFilter{}, exports.EncodingLatin1)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "Proteína", "la í ya no está en UTF-8")
	assert.Contains(t, string(data), "Prote\xedna", "í como 0xED en Latin-1")
}

func TestSalesCSVUnknownEncoding(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.SalesCSV(context.Background(), reports.RangeFilter{}, "utf-16")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryCSVContent(t *testing.T) {
	uc, db := newUseCase(t)

	productRepo := sqlite.NewProductRepository(db)
	id, err := productRepo.Create(&entity.Product{
		SKU: "WHEY-01", Name: "Whey", SalePrice: decimal.NewFromInt(75),
		MinStock: 5, Status: entity.ProductStatusActive,
	})
	require.NoError(t, err)
	_, err = sqlite.NewStockMovementRepository(db).Append(&entity.StockMovement{
		ProductID: id, Type: entity.MovementTypeIngress, Quantity: 12, CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	data, err := uc.InventoryCSV(context.Background(), "")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "WHEY-01", row[1])
	assert.Equal(t, "12", row[5], "el stock sale del ledger, no de un contador")
	assert.Equal(t, "5", row[6])
}
