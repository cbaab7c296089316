package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta confirmada. Una venta existe siempre junto a su
// movimiento de egreso emparejado (mismo producto, misma cantidad, mismo
// TxID): ambos se escriben en la misma transacción o no se escribe ninguno.
// No hay API de edición ni borrado: las devoluciones se registran como
// movimientos de ingreso compensatorios.
type Sale struct {
	ID        int64
	ProductID int64
	Quantity  int64 // siempre positivo
	SalePrice decimal.Decimal
	Discount  decimal.Decimal // monto absoluto descontado de la línea
	Channel   string          // mostrador, web, ... opcional
	TxID      string          // uuid compartido con el egreso emparejado
	SaleDate  time.Time
	CreatedBy int64 // UserID de auditoría; 0 = sin actor
}

// Revenue devuelve el ingreso neto de la línea: cantidad × precio − descuento.
func (s *Sale) Revenue() decimal.Decimal {
	return s.SalePrice.Mul(decimal.NewFromInt(s.Quantity)).Sub(s.Discount)
}
