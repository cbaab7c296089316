package repository

import (
	"time"

	"github.com/jhoicas/vitasport-core/internal/domain/entity"
)

// SaleLine es una venta enriquecida con los atributos del producto que los
// reportes necesitan (join por product_id, solo lectura).
type SaleLine struct {
	Sale        entity.Sale
	ProductName string
	Category    string
	Seller      string // username del vendedor; vacío si no hay actor
}

// SaleRepository persiste ventas confirmadas. Las ventas son append-only:
// no hay Update ni Delete; una devolución se registra como movimiento de
// ingreso compensatorio en el ledger.
type SaleRepository interface {
	// Create persiste una venta y devuelve su id.
	Create(s *entity.Sale) (int64, error)

	// GetByID devuelve una venta o nil si no existe.
	GetByID(id int64) (*entity.Sale, error)

	// List devuelve ventas con datos de producto y vendedor, la más
	// reciente primero. limit <= 0 significa sin límite.
	List(limit int) ([]*SaleLine, error)

	// ListInRange devuelve las ventas cuyo sale_date (solo la porción de
	// fecha) cae en [from, to]. Un extremo nil significa sin cota por ese
	// lado. category vacío significa sin filtro de categoría.
	ListInRange(from, to *time.Time, category string) ([]*SaleLine, error)

	// CountByProduct cuenta las ventas de un producto. Usado por el guard
	// de borrado de catálogo.
	CountByProduct(productID int64) (int64, error)
}
