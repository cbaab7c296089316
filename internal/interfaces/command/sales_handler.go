package command

import (
	"context"

	"github.com/jhoicas/vitasport-core/internal/application/dto"
	"github.com/jhoicas/vitasport-core/internal/application/sales"
)

// SalesHandler comandos del motor de ventas.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Register registra los comandos de ventas. No hay sales.delete: el
// historial de ventas es solo-anexar, las correcciones se expresan con
// movimientos de ajuste.
func (h *SalesHandler) Register(d *Dispatcher) {
	d.Register("sales.record", h.record(d))
	d.Register("sales.list", h.list(d))
}

func (h *SalesHandler) record(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.RecordSaleRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		saleDate, err := dto.ParseDateTime("sale_date", body.SaleDate)
		if err != nil {
			return nil, err
		}
		identity, _ := IdentityFrom(ctx)
		id, err := h.uc.RecordSale(ctx, sales.RecordSaleInput{
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
			SalePrice: body.SalePrice,
			Discount:  body.Discount,
			Channel:   body.Channel,
			SaleDate:  saleDate,
			CreatedBy: identity.UserID,
		})
		if err != nil {
			return nil, err
		}
		return map[string]int64{"sale_id": id}, nil
	}
}

func (h *SalesHandler) list(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body struct {
			Limit int `json:"limit" validate:"min=0,max=1000"`
		}
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		lines, err := h.uc.ListSales(ctx, body.Limit)
		if err != nil {
			return nil, err
		}
		return dto.FromSaleLines(lines), nil
	}
}
