package sqlite_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/infrastructure/sqlite"
)

func TestSaleCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSaleRepository(db)
	productID := createProduct(t, db, "Proteína Whey")

	saleDate := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	id, err := repo.Create(&entity.Sale{
		ProductID: productID,
		Quantity:  2,
		SalePrice: decimal.RequireFromString("75.50"),
		Discount:  decimal.RequireFromString("1.00"),
		Channel:   "local",
		TxID:      "tx-abc",
		SaleDate:  saleDate,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, productID, got.ProductID)
	assert.True(t, got.SalePrice.Equal(decimal.RequireFromString("75.50")), "el precio no debe perder precisión")
	assert.True(t, got.Revenue().Equal(decimal.RequireFromString("150.00")), "2×75.50 − 1.00")
	assert.Equal(t, "tx-abc", got.TxID)
}

func TestSaleGetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSaleRepository(db)

	got, err := repo.GetByID(42)
	require.NoError(t, err)
	assert.Nil(t, got, "venta inexistente devuelve nil sin error")
}

func TestSaleListJoinsProductAndSeller(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSaleRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	productID := createProduct(t, db, "Creatina Monohidratada")

	sellerID, err := userRepo.Create(&entity.User{
		Username: "vendedor1", PasswordHash: "x", Role: entity.RoleVendedor,
	})
	require.NoError(t, err)

	_, err = repo.Create(&entity.Sale{
		ProductID: productID, Quantity: 1,
		SalePrice: decimal.NewFromInt(30), Discount: decimal.Zero,
		SaleDate: time.Now(), CreatedBy: sellerID,
	})
	require.NoError(t, err)

	lines, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Creatina Monohidratada", lines[0].ProductName)
	assert.Equal(t, "vendedor1", lines[0].Seller)
}

func TestSaleListInRangeFiltersByDatePortion(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSaleRepository(db)
	productID := createProduct(t, db, "Barra proteica")

	days := []time.Time{
		time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), // hora tardía: igual entra al 1/1
		time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC),
		time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		_, err := repo.Create(&entity.Sale{
			ProductID: productID, Quantity: 1,
			SalePrice: decimal.NewFromInt(10), Discount: decimal.Zero,
			SaleDate: d,
		})
		require.NoError(t, err)
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) // solo cuenta la fecha, no la hora
	lines, err := repo.ListInRange(&from, &to, "")
	require.NoError(t, err)
	assert.Len(t, lines, 2, "el rango es inclusive por porción de fecha")

	lines, err = repo.ListInRange(&from, nil, "")
	require.NoError(t, err)
	assert.Len(t, lines, 3, "extremo nil = sin cota")
}

func TestSaleListInRangeFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	saleRepo := sqlite.NewSaleRepository(db)
	productRepo := sqlite.NewProductRepository(db)

	p1, err := productRepo.Create(&entity.Product{
		Name: "Whey", SalePrice: decimal.NewFromInt(75), Category: "proteinas", Status: entity.ProductStatusActive,
	})
	require.NoError(t, err)
	p2, err := productRepo.Create(&entity.Product{
		Name: "Creatina", SalePrice: decimal.NewFromInt(30), Category: "aminoacidos", Status: entity.ProductStatusActive,
	})
	require.NoError(t, err)

	for _, pid := range []int64{p1, p2} {
		_, err := saleRepo.Create(&entity.Sale{
			ProductID: pid, Quantity: 1,
			SalePrice: decimal.NewFromInt(10), Discount: decimal.Zero,
			SaleDate: time.Now(),
		})
		require.NoError(t, err)
	}

	lines, err := saleRepo.ListInRange(nil, nil, "proteinas")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, p1, lines[0].Sale.ProductID)
}
