package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

// RecordSaleRequest body para registrar una venta. SalePrice en cero toma
// el precio de lista del producto; SaleDate vacío usa el momento actual.
type RecordSaleRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Discount  decimal.Decimal `json:"discount"`
	Channel   string          `json:"channel" validate:"omitempty,max=50"`
	SaleDate  string          `json:"sale_date"`
}

// SaleResponse venta en respuestas, con el nombre del producto resuelto.
type SaleResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Category    string          `json:"category,omitempty"`
	Quantity    int64           `json:"quantity"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	Channel     string          `json:"channel,omitempty"`
	TxID        string          `json:"tx_id"`
	SaleDate    time.Time       `json:"sale_date"`
	Seller      string          `json:"seller,omitempty"`
}

// FromSale arma el DTO de respuesta a partir de la entidad sola.
func FromSale(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		SalePrice: s.SalePrice,
		Discount:  s.Discount,
		Total:     s.Revenue(),
		Channel:   s.Channel,
		TxID:      s.TxID,
		SaleDate:  s.SaleDate,
	}
}

// FromSaleLine arma el DTO con los campos resueltos por el join.
func FromSaleLine(line *repository.SaleLine) SaleResponse {
	resp := FromSale(&line.Sale)
	resp.ProductName = line.ProductName
	resp.Category = line.Category
	resp.Seller = line.Seller
	return resp
}

// FromSaleLines mapea una lista de ventas.
func FromSaleLines(lines []*repository.SaleLine) []SaleResponse {
	out := make([]SaleResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, FromSaleLine(line))
	}
	return out
}
