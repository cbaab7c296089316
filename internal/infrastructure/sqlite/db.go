package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Querier es el subconjunto común de *sql.DB y *sql.Tx que usan los
// adaptadores. Permite construir cada repo sobre la conexión o sobre una
// transacción sin cambiar el código.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Open abre (o crea) el archivo SQLite y aplica las migraciones pendientes.
// Usar ":memory:" en tests.
//
// WAL permite que los reportes lean sin bloquear al escritor único; las
// foreign keys protegen las referencias movimiento→producto y venta→producto;
// busy_timeout evita SQLITE_BUSY espurios entre el escritor y los lectores.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}

	// El driver sqlite3 serializa el acceso a una misma conexión; una sola
	// conexión evita además que ":memory:" cree bases independientes por
	// conexión del pool.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrar esquema: %w", err)
	}
	return db, nil
}
