package command

import (
	"context"

	"github.com/jhoicas/vitasport-core/internal/application/dto"
	"github.com/jhoicas/vitasport-core/internal/application/inventory"
)

// InventoryHandler comandos del ledger de stock y sus vistas derivadas.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Register registra los comandos de inventario.
func (h *InventoryHandler) Register(d *Dispatcher) {
	d.Register("stock.move", h.move(d))
	d.Register("stock.movements", h.movements(d))
	d.Register("inventory.balances", h.balances())
	d.Register("inventory.low_stock", h.lowStock())
	d.Register("inventory.expiry_alerts", h.expiryAlerts())
}

func (h *InventoryHandler) move(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.RegisterMovementRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		identity, _ := IdentityFrom(ctx)
		id, err := h.uc.RegisterMovement(ctx, inventory.MovementInput{
			ProductID: body.ProductID,
			Type:      body.Type,
			Quantity:  body.Quantity,
			Note:      body.Note,
			CreatedBy: identity.UserID,
		})
		if err != nil {
			return nil, err
		}
		balance, err := h.uc.BalanceOf(ctx, body.ProductID)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"movement_id": id, "balance": balance}, nil
	}
}

func (h *InventoryHandler) movements(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.ListMovementsRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		movements, err := h.uc.ListMovements(ctx, body.ProductID, body.Limit)
		if err != nil {
			return nil, err
		}
		return dto.FromMovements(movements), nil
	}
}

func (h *InventoryHandler) balances() HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		items, err := h.uc.Inventory(ctx)
		if err != nil {
			return nil, err
		}
		return dto.FromProductStocks(items), nil
	}
}

func (h *InventoryHandler) lowStock() HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		items, err := h.uc.LowStock(ctx)
		if err != nil {
			return nil, err
		}
		return dto.FromProductStocks(items), nil
	}
}

func (h *InventoryHandler) expiryAlerts() HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		products, err := h.uc.ExpiryAlerts(ctx)
		if err != nil {
			return nil, err
		}
		return dto.FromProducts(products), nil
	}
}
