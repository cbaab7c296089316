package entity

import "time"

// Tipos de movimiento de stock. Solo existen dos: lo que entra y lo que sale.
// Las correcciones se expresan como movimientos compensatorios, nunca como
// edición de un movimiento existente.
const (
	MovementTypeIngress = "ingreso"
	MovementTypeEgress  = "egreso"
)

// StockMovement es la unidad de verdad del inventario: un registro inmutable
// en el ledger append-only de un producto. El balance actual de un producto
// es siempre Σ(ingresos) − Σ(egresos) sobre su secuencia de movimientos.
type StockMovement struct {
	ID        int64
	ProductID int64
	Type      string // ingreso, egreso
	Quantity  int64  // siempre positivo; el signo lo da Type
	Note      string
	TxID      string // uuid que empareja el egreso con su venta (vacío para movimientos manuales)
	CreatedBy int64  // UserID de auditoría; 0 = sin actor
	CreatedAt time.Time
}

// IsIngress indica si el movimiento suma al balance.
func (m *StockMovement) IsIngress() bool { return m.Type == MovementTypeIngress }

// SignedQuantity devuelve la cantidad con el signo del tipo de movimiento.
func (m *StockMovement) SignedQuantity() int64 {
	if m.IsIngress() {
		return m.Quantity
	}
	return -m.Quantity
}
