package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
)

// ProductRequest body para crear o actualizar un producto.
type ProductRequest struct {
	ID           int64           `json:"id"` // solo en actualización
	SKU          string          `json:"sku" validate:"omitempty,max=64"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Brand        string          `json:"brand" validate:"omitempty,max=100"`
	Category     string          `json:"category" validate:"omitempty,max=100"`
	Presentation string          `json:"presentation" validate:"omitempty,max=100"`
	Flavor       string          `json:"flavor" validate:"omitempty,max=100"`
	Weight       string          `json:"weight" validate:"omitempty,max=50"`
	Location     string          `json:"location" validate:"omitempty,max=100"`
	ExpiryDate   string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	LotNumber    string          `json:"lot_number" validate:"omitempty,max=64"`
	MinStock     int64           `json:"min_stock" validate:"min=0"`
	MaxStock     int64           `json:"max_stock" validate:"min=0"`
	Status       string          `json:"status" validate:"omitempty,oneof=activo inactivo"`
}

// ToEntity convierte el request a entidad de dominio.
func (r ProductRequest) ToEntity() (*entity.Product, error) {
	var expiry *time.Time
	if r.ExpiryDate != "" {
		t, err := ParseDateTime("expiry_date", r.ExpiryDate)
		if err != nil {
			return nil, err
		}
		expiry = t
	}
	return &entity.Product{
		ID:           r.ID,
		SKU:          r.SKU,
		Name:         r.Name,
		SalePrice:    r.SalePrice,
		Brand:        r.Brand,
		Category:     r.Category,
		Presentation: r.Presentation,
		Flavor:       r.Flavor,
		Weight:       r.Weight,
		Location:     r.Location,
		ExpiryDate:   expiry,
		LotNumber:    r.LotNumber,
		MinStock:     r.MinStock,
		MaxStock:     r.MaxStock,
		Status:       r.Status,
	}, nil
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku,omitempty"`
	Name         string          `json:"name"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Brand        string          `json:"brand,omitempty"`
	Category     string          `json:"category,omitempty"`
	Presentation string          `json:"presentation,omitempty"`
	Flavor       string          `json:"flavor,omitempty"`
	Weight       string          `json:"weight,omitempty"`
	Location     string          `json:"location,omitempty"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
	LotNumber    string          `json:"lot_number,omitempty"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
	Status       string          `json:"status"`
}

// FromProduct arma el DTO de respuesta.
func FromProduct(p *entity.Product) ProductResponse {
	expiry := ""
	if p.ExpiryDate != nil {
		expiry = p.ExpiryDate.Format("2006-01-02")
	}
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		SalePrice:    p.SalePrice,
		Brand:        p.Brand,
		Category:     p.Category,
		Presentation: p.Presentation,
		Flavor:       p.Flavor,
		Weight:       p.Weight,
		Location:     p.Location,
		ExpiryDate:   expiry,
		LotNumber:    p.LotNumber,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		Status:       p.Status,
	}
}

// FromProducts mapea una lista de productos.
func FromProducts(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
