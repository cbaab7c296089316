package inventory

import (
	"context"

	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de
// inventario y ventas: el callback escribe todo o no escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
