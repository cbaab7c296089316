package command

import (
	"context"

	"github.com/jhoicas/vitasport-core/internal/application/catalog"
	"github.com/jhoicas/vitasport-core/internal/application/dto"
)

// ProductHandler comandos de catálogo.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Register registra los comandos de catálogo. Borrar requiere rol de
// administrador; el resto lo usa cualquier usuario autenticado.
func (h *ProductHandler) Register(d *Dispatcher) {
	d.Register("products.create", h.create(d))
	d.Register("products.get", h.get(d))
	d.Register("products.list", h.list())
	d.Register("products.update", h.update(d))
	d.RegisterAdmin("products.delete", h.delete(d))
}

func (h *ProductHandler) create(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.ProductRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		p, err := body.ToEntity()
		if err != nil {
			return nil, err
		}
		p.ID = 0
		created, err := h.uc.CreateProduct(ctx, p)
		if err != nil {
			return nil, err
		}
		return dto.FromProduct(created), nil
	}
}

func (h *ProductHandler) get(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body struct {
			ID int64 `json:"id" validate:"required,gt=0"`
		}
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		p, err := h.uc.GetProduct(ctx, body.ID)
		if err != nil {
			return nil, err
		}
		return dto.FromProduct(p), nil
	}
}

func (h *ProductHandler) list() HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		products, err := h.uc.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return dto.FromProducts(products), nil
	}
}

func (h *ProductHandler) update(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.ProductRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		p, err := body.ToEntity()
		if err != nil {
			return nil, err
		}
		updated, err := h.uc.UpdateProduct(ctx, p)
		if err != nil {
			return nil, err
		}
		return dto.FromProduct(updated), nil
	}
}

func (h *ProductHandler) delete(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body struct {
			ID int64 `json:"id" validate:"required,gt=0"`
		}
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		if err := h.uc.DeleteProduct(ctx, body.ID); err != nil {
			return nil, err
		}
		return map[string]int64{"deleted_id": body.ID}, nil
	}
}
