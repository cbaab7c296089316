package dto

import (
	"time"

	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
)

// RegisterMovementRequest body para registrar un movimiento de stock.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required,oneof=ingreso egreso"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

// ListMovementsRequest filtros para el historial de movimientos.
type ListMovementsRequest struct {
	ProductID int64 `json:"product_id" validate:"min=0"` // 0 = todos
	Limit     int   `json:"limit" validate:"min=0,max=1000"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	TxID      string    `json:"tx_id,omitempty"`
	CreatedBy int64     `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromMovement arma el DTO de respuesta.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Note:      m.Note,
		TxID:      m.TxID,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

// FromMovements mapea una lista de movimientos.
func FromMovements(movements []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, FromMovement(m))
	}
	return out
}

// StockItemResponse producto con su saldo derivado del ledger.
type StockItemResponse struct {
	Product ProductResponse `json:"product"`
	Stock   int64           `json:"stock"`
}

// FromProductStock arma el DTO de respuesta.
func FromProductStock(item *inventory.ProductStock) StockItemResponse {
	return StockItemResponse{Product: FromProduct(item.Product), Stock: item.Stock}
}

// FromProductStocks mapea una lista de productos con stock.
func FromProductStocks(items []*inventory.ProductStock) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromProductStock(item))
	}
	return out
}
