package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

// TxRunner alias del contrato transaccional compartido con inventory.
type TxRunner = inventory.TxRunner

// UseCase es el motor transaccional de ventas: valida el balance derivado y
// escribe la venta junto con su egreso emparejado como una unidad atómica.
//
// Secuencia por venta, dentro de la sección crítica del producto:
//  1. Derivar available del estado actual del ledger.
//  2. quantity > available → InsufficientStockError, sin escribir nada.
//  3. Escribir Sale y su egreso (mismo tx_id) en una transacción; cualquier
//     fallo revierte ambos. Vender exactamente el balance restante es válido.
type UseCase struct {
	txRunner    TxRunner
	gate        *inventory.ProductGate
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	clock       domain.Clock
	log         *logger.Logger
}

// NewUseCase construye el motor de ventas.
func NewUseCase(
	txRunner TxRunner,
	gate *inventory.ProductGate,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	clock domain.Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		gate:        gate,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		clock:       clock,
		log:         log,
	}
}

// RecordSaleInput entrada para registrar una venta.
type RecordSaleInput struct {
	ProductID int64
	Quantity  int64
	SalePrice decimal.Decimal
	Discount  decimal.Decimal
	Channel   string
	SaleDate  *time.Time // nil = ahora
	CreatedBy int64
}

// RecordSale ejecuta la venta y devuelve su id. Errores posibles:
// ValidationError (entrada malformada, nada escrito), ErrNotFound (producto
// inexistente), InsufficientStockError (balance insuficiente, nada escrito),
// StorageError (fallo del store; la transacción revierte y la sección
// crítica se libera igualmente).
func (uc *UseCase) RecordSale(ctx context.Context, in RecordSaleInput) (int64, error) {
	if in.Quantity <= 0 {
		return 0, &domain.ValidationError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}
	if in.SalePrice.IsNegative() {
		return 0, &domain.ValidationError{Field: "sale_price", Reason: "no puede ser negativo"}
	}
	if in.Discount.IsNegative() {
		return 0, &domain.ValidationError{Field: "discount", Reason: "no puede ser negativo"}
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	// Precio en cero = vender a precio de lista.
	if in.SalePrice.IsZero() {
		in.SalePrice = product.SalePrice
	}

	saleDate := uc.clock.Now()
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}
	txID := uuid.New().String()

	// Sección crítica por producto: cubre leer-balance y las dos escrituras,
	// incluido el rollback. Ventas de otros productos no esperan aquí.
	unlock := uc.gate.Lock(in.ProductID)
	defer unlock()

	var saleID int64
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		totals, err := movRepo.SumByType(in.ProductID)
		if err != nil {
			return err
		}
		available := totals.Net()
		if available < 0 {
			fault := &domain.ConsistencyFault{ProductID: in.ProductID, Detail: "balance derivado negativo"}
			uc.log.Error().Int64("product_id", in.ProductID).Int64("balance", available).Msg(fault.Detail)
			return fault
		}
		// Comparación estricta: vender exactamente el balance restante es
		// válido, el balance puede llegar legítimamente a cero.
		if in.Quantity > available {
			return &domain.InsufficientStockError{
				ProductID: in.ProductID,
				Available: available,
				Requested: in.Quantity,
			}
		}

		saleID, err = saleRepo.Create(&entity.Sale{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			SalePrice: in.SalePrice,
			Discount:  in.Discount,
			Channel:   in.Channel,
			TxID:      txID,
			SaleDate:  saleDate,
			CreatedBy: in.CreatedBy,
		})
		if err != nil {
			return err
		}

		// Egreso emparejado: mismo producto, misma cantidad, mismo tx_id.
		// Si este Append falla, el rollback del runner también deshace la
		// venta: ningún lector observa una venta sin su movimiento.
		_, err = movRepo.Append(&entity.StockMovement{
			ProductID: in.ProductID,
			Type:      entity.MovementTypeEgress,
			Quantity:  in.Quantity,
			Note:      fmt.Sprintf("venta #%d", saleID),
			TxID:      txID,
			CreatedBy: in.CreatedBy,
			CreatedAt: saleDate,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info().Int64("sale_id", saleID).Int64("product_id", in.ProductID).
		Int64("quantity", in.Quantity).Str("tx_id", txID).Msg("venta registrada")
	return saleID, nil
}

// ListSales devuelve las ventas con producto y vendedor, la más reciente
// primero. limit <= 0 significa sin límite.
func (uc *UseCase) ListSales(ctx context.Context, limit int) ([]*repository.SaleLine, error) {
	return uc.saleRepo.List(limit)
}
