package sqlite

import (
	"time"

	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del Ledger Store sobre SQLite (usable con
// db o tx). El log es append-only: este adaptador no tiene UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar db o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, note, tx_id, COALESCE(created_by, 0), created_at`

// Append persiste un movimiento y devuelve su id. Rechaza con
// ValidationError cantidades no positivas o tipos desconocidos antes de
// tocar la base (el CHECK del esquema es la última línea de defensa).
func (r *StockMovementRepo) Append(m *entity.StockMovement) (int64, error) {
	if m.Quantity <= 0 {
		return 0, &domain.ValidationError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}
	if m.Type != entity.MovementTypeIngress && m.Type != entity.MovementTypeEgress {
		return 0, &domain.ValidationError{Field: "type", Reason: "debe ser 'ingreso' o 'egreso'"}
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	var createdBy any
	if m.CreatedBy != 0 {
		createdBy = m.CreatedBy
	}
	res, err := r.q.Exec(
		`INSERT INTO stock_movements (product_id, type, quantity, note, tx_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ProductID, m.Type, m.Quantity, m.Note, m.TxID, createdBy,
		m.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, &domain.StorageError{Op: "append movement", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "append movement: last insert id", Err: err}
	}
	m.ID = id
	return id, nil
}

// ListByProduct devuelve los movimientos de un producto, el más reciente
// primero. limit <= 0 significa sin límite.
func (r *StockMovementRepo) ListByProduct(productID int64, limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{productID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryMovements("list movements by product", query, args...)
}

// List devuelve movimientos de todos los productos, el más reciente primero.
func (r *StockMovementRepo) List(limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements
		ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryMovements("list movements", query, args...)
}

// SumByType agrega ingresos y egresos de un producto en un solo scan.
func (r *StockMovementRepo) SumByType(productID int64) (repository.TypeTotals, error) {
	const query = `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'ingreso' THEN quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'egreso'  THEN quantity ELSE 0 END), 0)
		FROM stock_movements WHERE product_id = ?`
	var t repository.TypeTotals
	if err := r.q.QueryRow(query, productID).Scan(&t.Ingress, &t.Egress); err != nil {
		return repository.TypeTotals{}, &domain.StorageError{Op: "sum movements by type", Err: err}
	}
	return t, nil
}

// SumByTypeAll agrega el ledger completo agrupado por producto en un solo
// scan. Productos sin movimientos no aparecen en el mapa (balance 0).
func (r *StockMovementRepo) SumByTypeAll() (map[int64]repository.TypeTotals, error) {
	const query = `
		SELECT product_id,
			COALESCE(SUM(CASE WHEN type = 'ingreso' THEN quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'egreso'  THEN quantity ELSE 0 END), 0)
		FROM stock_movements
		GROUP BY product_id`
	rows, err := r.q.Query(query)
	if err != nil {
		return nil, &domain.StorageError{Op: "sum all movements", Err: err}
	}
	defer rows.Close()

	totals := make(map[int64]repository.TypeTotals)
	for rows.Next() {
		var productID int64
		var t repository.TypeTotals
		if err := rows.Scan(&productID, &t.Ingress, &t.Egress); err != nil {
			return nil, &domain.StorageError{Op: "sum all movements: scan", Err: err}
		}
		totals[productID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "sum all movements: rows", Err: err}
	}
	return totals, nil
}

// CountByProduct cuenta los movimientos de un producto.
func (r *StockMovementRepo) CountByProduct(productID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(`SELECT COUNT(*) FROM stock_movements WHERE product_id = ?`, productID).Scan(&n)
	if err != nil {
		return 0, &domain.StorageError{Op: "count movements", Err: err}
	}
	return n, nil
}

func (r *StockMovementRepo) queryMovements(op, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Note, &m.TxID, &m.CreatedBy, &createdAt); err != nil {
			return nil, &domain.StorageError{Op: op + ": scan", Err: err}
		}
		m.CreatedAt = parseTime(createdAt)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: op + ": rows", Err: err}
	}
	return list, nil
}

// parseTime acepta RFC3339 y el formato datetime() de SQLite (filas creadas
// por defaults del esquema).
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
