package sqlite

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// migration es un paso de esquema versionado. Los pasos se aplican en orden
// una sola vez al arranque; schema_migrations registra la versión aplicada.
// La evolución del esquema es siempre aditiva: nunca se reescribe un paso ya
// publicado, se añade el siguiente.
type migration struct {
	version int
	apply   func(tx *sql.Tx) error
}

var migrations = []migration{
	{1, migrateV1BaseSchema},
	{2, migrateV2AuditColumns},
}

// Migrate aplica las migraciones pendientes dentro de una transacción por
// paso. Es idempotente: un esquema ya al día no se toca.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`); err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("leer versión de esquema: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migración v%d: begin: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migración v%d: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migración v%d: registrar versión: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migración v%d: commit: %w", m.version, err)
		}
	}
	return nil
}

// migrateV1BaseSchema crea las tablas base y el usuario administrador
// inicial. Los precios se guardan como TEXT decimal para no perder precisión
// (la agregación monetaria se hace en Go con shopspring/decimal).
func migrateV1BaseSchema(tx *sql.Tx) error {
	const schema = `
	CREATE TABLE users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		fullname      TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at    TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE products (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		sku          TEXT UNIQUE,
		name         TEXT NOT NULL,
		sale_price   TEXT NOT NULL DEFAULT '0',
		brand        TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		presentation TEXT NOT NULL DEFAULT '',
		flavor       TEXT NOT NULL DEFAULT '',
		weight       TEXT NOT NULL DEFAULT '',
		location     TEXT NOT NULL DEFAULT '',
		expiry_date  TEXT,
		lot_number   TEXT NOT NULL DEFAULT '',
		min_stock    INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'activo'
	);

	-- Ledger append-only: sin UPDATE ni DELETE, nunca.
	CREATE TABLE stock_movements (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(id),
		type       TEXT NOT NULL CHECK (type IN ('ingreso', 'egreso')),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		note       TEXT NOT NULL DEFAULT '',
		created_by INTEGER REFERENCES users(id),
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_stock_movements_product ON stock_movements(product_id);

	CREATE TABLE sales (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(id),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		sale_price TEXT NOT NULL,
		discount   TEXT NOT NULL DEFAULT '0',
		channel    TEXT NOT NULL DEFAULT '',
		sale_date  TEXT NOT NULL,
		created_by INTEGER REFERENCES users(id)
	);
	CREATE INDEX idx_sales_product ON sales(product_id);
	CREATE INDEX idx_sales_date ON sales(sale_date);
	`
	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	return seedAdminUser(tx)
}

// migrateV2AuditColumns añade el emparejamiento de auditoría venta↔egreso
// (tx_id compartido) y el umbral superior de stock. Columnas aditivas, con
// default, para no tocar filas existentes.
func migrateV2AuditColumns(tx *sql.Tx) error {
	const alter = `
	ALTER TABLE stock_movements ADD COLUMN tx_id TEXT NOT NULL DEFAULT '';
	ALTER TABLE sales ADD COLUMN tx_id TEXT NOT NULL DEFAULT '';
	ALTER TABLE products ADD COLUMN max_stock INTEGER NOT NULL DEFAULT 0;
	CREATE INDEX idx_stock_movements_tx ON stock_movements(tx_id);
	`
	_, err := tx.Exec(alter)
	return err
}

// seedAdminUser crea el usuario administrador por defecto cuando la tabla
// está vacía, igual que la instalación original de la aplicación.
func seedAdminUser(tx *sql.Tx) error {
	var n int64
	if err := tx.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		`INSERT INTO users (username, password_hash, role, fullname) VALUES (?, ?, ?, ?)`,
		"admin", string(hash), "Administrador", "Administrador del Sistema",
	)
	return err
}
