package repository

import (
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
)

// TypeTotals acumulados del ledger de un producto por tipo de movimiento.
type TypeTotals struct {
	Ingress int64
	Egress  int64
}

// Net devuelve el balance derivado: ingresos − egresos.
func (t TypeTotals) Net() int64 { return t.Ingress - t.Egress }

// StockMovementRepository es el contrato del Ledger Store: un log ordenado y
// append-only de movimientos por producto. No existe Update ni Delete; las
// correcciones son movimientos compensatorios.
type StockMovementRepository interface {
	// Append persiste un movimiento y devuelve su id. La validación de
	// cantidad y tipo ocurre antes de llegar aquí (caso de uso).
	Append(m *entity.StockMovement) (int64, error)

	// ListByProduct devuelve los movimientos de un producto, el más
	// reciente primero. limit <= 0 significa sin límite.
	ListByProduct(productID int64, limit int) ([]*entity.StockMovement, error)

	// List devuelve movimientos de todos los productos, el más reciente
	// primero. limit <= 0 significa sin límite.
	List(limit int) ([]*entity.StockMovement, error)

	// SumByType agrega el ledger de un producto en un solo scan.
	SumByType(productID int64) (TypeTotals, error)

	// SumByTypeAll agrega el ledger completo agrupado por producto en un
	// solo scan (evita el patrón N+1 con catálogos grandes).
	SumByTypeAll() (map[int64]TypeTotals, error)

	// CountByProduct cuenta los movimientos de un producto. Usado por el
	// guard de borrado de catálogo.
	CountByProduct(productID int64) (int64, error)
}
