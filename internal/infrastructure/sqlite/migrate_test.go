package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/infrastructure/sqlite"
)

func TestMigrateAppliesAllVersions(t *testing.T) {
	db := newTestDB(t)

	var version int
	err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version, "deben quedar aplicadas ambas migraciones")

	// Columnas de la v2 presentes.
	_, err = db.Exec(`SELECT tx_id FROM stock_movements LIMIT 1`)
	assert.NoError(t, err, "stock_movements debe tener tx_id")
	_, err = db.Exec(`SELECT tx_id FROM sales LIMIT 1`)
	assert.NoError(t, err, "sales debe tener tx_id")
	_, err = db.Exec(`SELECT max_stock FROM products LIMIT 1`)
	assert.NoError(t, err, "products debe tener max_stock")
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Open ya migró; una segunda pasada no debe fallar ni duplicar nada.
	require.NoError(t, sqlite.Migrate(db))

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&rows))
	assert.Equal(t, 2, rows)

	var admins int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&admins))
	assert.Equal(t, 1, admins, "el seed del admin no debe duplicarse")
}

func TestMigrateSeedsAdminUser(t *testing.T) {
	db := newTestDB(t)

	repo := sqlite.NewUserRepository(db)
	admin, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, admin, "debe existir el usuario admin sembrado")

	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")),
		"la contraseña inicial debe ser admin")
}

func TestLedgerSchemaRejectsBadMovements(t *testing.T) {
	db := newTestDB(t)
	productID := createProduct(t, db, "Proteína Whey")

	// El CHECK de tipo y cantidad vive en el esquema, no solo en el caso
	// de uso.
	_, err := db.Exec(
		`INSERT INTO stock_movements (product_id, type, quantity, created_at) VALUES (?, 'ajuste', 1, datetime('now'))`,
		productID)
	assert.Error(t, err, "tipos fuera del vocabulario deben rechazarse")

	_, err = db.Exec(
		`INSERT INTO stock_movements (product_id, type, quantity, created_at) VALUES (?, 'ingreso', 0, datetime('now'))`,
		productID)
	assert.Error(t, err, "cantidad cero debe rechazarse")

	_, err = db.Exec(
		`INSERT INTO stock_movements (product_id, type, quantity, created_at) VALUES (9999, 'ingreso', 1, datetime('now'))`)
	assert.Error(t, err, "la FK a products debe estar activa")
}
