package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product.
const (
	ProductStatusActive   = "activo"
	ProductStatusInactive = "inactivo"
)

// Product representa un producto o SKU del catálogo.
// No tiene campo de stock: el stock actual siempre se deriva del ledger de
// movimientos (ver application/inventory), nunca se almacena como contador.
type Product struct {
	ID           int64
	SKU          string // código único; opcional, pero único cuando existe
	Name         string
	SalePrice    decimal.Decimal
	Brand        string
	Category     string
	Presentation string
	Flavor       string
	Weight       string
	Location     string
	ExpiryDate   *time.Time // nil = sin vencimiento
	LotNumber    string
	MinStock     int64 // umbral de reposición: balance <= MinStock dispara alerta
	MaxStock     int64
	Status       string // activo, inactivo
}
