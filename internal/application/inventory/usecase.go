package inventory

import (
	"context"

	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

// expiryAlertWindowDays ventana de la alerta de vencimiento.
const expiryAlertWindowDays = 15

// UseCase opera el ledger de stock: registro de movimientos, balance
// derivado, inventario con stock real y alertas. El balance nunca se
// almacena: siempre es Σ(ingresos) − Σ(egresos) sobre el log inmutable.
type UseCase struct {
	txRunner    TxRunner
	gate        *ProductGate
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	clock       domain.Clock
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	gate *ProductGate,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	clock domain.Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		gate:        gate,
		productRepo: productRepo,
		movRepo:     movRepo,
		clock:       clock,
		log:         log,
	}
}

// MovementInput entrada para registrar un movimiento manual de stock.
type MovementInput struct {
	ProductID int64
	Type      string // ingreso, egreso
	Quantity  int64
	Note      string
	CreatedBy int64
}

// ProductStock un producto del catálogo con su balance derivado.
type ProductStock struct {
	Product *entity.Product
	Stock   int64
}

// RegisterMovement valida y anexa un movimiento al ledger del producto.
//
// Los egresos manuales también verifican el balance disponible dentro de la
// sección crítica: el ledger no admite balances negativos por ningún camino,
// no solo por el motor de ventas. Las correcciones hacia abajo se expresan
// con egresos que sí tienen respaldo; las correcciones hacia arriba, con
// ingresos.
func (uc *UseCase) RegisterMovement(ctx context.Context, in MovementInput) (int64, error) {
	if in.Quantity <= 0 {
		return 0, &domain.ValidationError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}
	if in.Type != entity.MovementTypeIngress && in.Type != entity.MovementTypeEgress {
		return 0, &domain.ValidationError{Field: "type", Reason: "debe ser 'ingreso' o 'egreso'"}
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}

	unlock := uc.gate.Lock(in.ProductID)
	defer unlock()

	var movementID int64
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.SaleRepository,
	) error {
		if in.Type == entity.MovementTypeEgress {
			available, err := uc.availableIn(movRepo, in.ProductID)
			if err != nil {
				return err
			}
			if in.Quantity > available {
				return &domain.InsufficientStockError{
					ProductID: in.ProductID,
					Available: available,
					Requested: in.Quantity,
				}
			}
		}
		movementID, err = movRepo.Append(&entity.StockMovement{
			ProductID: in.ProductID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Note:      in.Note,
			CreatedBy: in.CreatedBy,
			CreatedAt: uc.clock.Now(),
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return movementID, nil
}

// ListMovements devuelve el ledger, el movimiento más reciente primero.
// productID 0 lista todos los productos. limit <= 0 significa sin límite.
func (uc *UseCase) ListMovements(ctx context.Context, productID int64, limit int) ([]*entity.StockMovement, error) {
	if productID != 0 {
		return uc.movRepo.ListByProduct(productID, limit)
	}
	return uc.movRepo.List(limit)
}

// BalanceOf deriva el balance actual de un producto con un solo scan
// agregante del ledger. Un balance negativo es una inconsistencia interna
// (la atomicidad de ventas lo hace imposible por construcción): se loguea
// en error y se devuelve tal cual para diagnóstico, nunca se corrige en
// silencio.
func (uc *UseCase) BalanceOf(ctx context.Context, productID int64) (int64, error) {
	totals, err := uc.movRepo.SumByType(productID)
	if err != nil {
		return 0, err
	}
	balance := totals.Net()
	if balance < 0 {
		fault := &domain.ConsistencyFault{ProductID: productID, Detail: "balance derivado negativo"}
		uc.log.Error().Int64("product_id", productID).Int64("balance", balance).Msg(fault.Detail)
	}
	return balance, nil
}

// BalancesOfAll deriva el balance de todos los productos en un solo scan
// agrupado (sin N+1). Productos sin movimientos no aparecen (balance 0).
func (uc *UseCase) BalancesOfAll(ctx context.Context) (map[int64]int64, error) {
	totals, err := uc.movRepo.SumByTypeAll()
	if err != nil {
		return nil, err
	}
	balances := make(map[int64]int64, len(totals))
	for productID, t := range totals {
		balance := t.Net()
		if balance < 0 {
			uc.log.Error().Int64("product_id", productID).Int64("balance", balance).
				Msg("balance derivado negativo")
		}
		balances[productID] = balance
	}
	return balances, nil
}

// Inventory devuelve el catálogo completo decorado con el stock real
// derivado de cada producto.
func (uc *UseCase) Inventory(ctx context.Context) ([]*ProductStock, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	balances, err := uc.BalancesOfAll(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*ProductStock, 0, len(products))
	for _, p := range products {
		list = append(list, &ProductStock{Product: p, Stock: balances[p.ID]})
	}
	return list, nil
}

// LowStock devuelve los productos cuyo balance derivado alcanzó su umbral
// de reposición: balance <= min_stock, frontera inclusive. Productos sin
// umbral configurado (min_stock 0) no alertan.
func (uc *UseCase) LowStock(ctx context.Context) ([]*ProductStock, error) {
	inventory, err := uc.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	var alerts []*ProductStock
	for _, item := range inventory {
		if item.Product.MinStock > 0 && item.Stock <= item.Product.MinStock {
			alerts = append(alerts, item)
		}
	}
	return alerts, nil
}

// ExpiryAlerts devuelve los productos que vencen dentro de los próximos 15
// días, contando desde hoy.
func (uc *UseCase) ExpiryAlerts(ctx context.Context) ([]*entity.Product, error) {
	today := uc.clock.Now()
	limit := today.AddDate(0, 0, expiryAlertWindowDays)
	return uc.productRepo.ListExpiringBetween(today, limit)
}

// availableIn deriva el balance leyendo con el repo de la transacción en
// curso, para que la verificación vea el ledger que el commit va a extender.
func (uc *UseCase) availableIn(movRepo repository.StockMovementRepository, productID int64) (int64, error) {
	totals, err := movRepo.SumByType(productID)
	if err != nil {
		return 0, err
	}
	balance := totals.Net()
	if balance < 0 {
		fault := &domain.ConsistencyFault{ProductID: productID, Detail: "balance derivado negativo"}
		uc.log.Error().Int64("product_id", productID).Int64("balance", balance).Msg(fault.Detail)
		return 0, fault
	}
	return balance, nil
}
