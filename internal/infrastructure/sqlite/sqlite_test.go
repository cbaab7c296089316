package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/infrastructure/sqlite"
)

// newTestDB abre una base en memoria ya migrada. Con MaxOpenConns(1) la
// base vive mientras viva la única conexión.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err, "debe abrir la base en memoria")
	t.Cleanup(func() { db.Close() })
	return db
}

// createProduct inserta un producto mínimo y devuelve su id.
func createProduct(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	repo := sqlite.NewProductRepository(db)
	id, err := repo.Create(&entity.Product{
		Name:      name,
		SalePrice: decimal.NewFromInt(100),
		Status:    entity.ProductStatusActive,
	})
	require.NoError(t, err, "debe crear el producto %q", name)
	return id
}

// appendMovement inserta un movimiento directo al ledger.
func appendMovement(t *testing.T, db *sql.DB, productID int64, typ string, qty int64) int64 {
	t.Helper()
	repo := sqlite.NewStockMovementRepository(db)
	id, err := repo.Append(&entity.StockMovement{
		ProductID: productID,
		Type:      typ,
		Quantity:  qty,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err, "debe anexar el movimiento")
	return id
}
