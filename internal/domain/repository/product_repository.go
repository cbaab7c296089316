package repository

import (
	"time"

	"github.com/jhoicas/vitasport-core/internal/domain/entity"
)

// ProductRepository persiste el catálogo de productos.
type ProductRepository interface {
	Create(p *entity.Product) (int64, error)

	// GetByID devuelve el producto o nil si no existe.
	GetByID(id int64) (*entity.Product, error)

	// GetBySKU devuelve el producto o nil si no existe. SKU vacío nunca
	// matchea (el SKU es opcional pero único cuando existe).
	GetBySKU(sku string) (*entity.Product, error)

	List() ([]*entity.Product, error)

	Update(p *entity.Product) error

	// Delete elimina un producto. El guard sobre historial de movimientos
	// y ventas vive en el caso de uso de catálogo, no aquí.
	Delete(id int64) error

	// ListExpiringBetween devuelve productos con expiry_date en [from, to].
	ListExpiringBetween(from, to time.Time) ([]*entity.Product, error)
}
