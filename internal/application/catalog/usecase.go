// Package catalog administra el catálogo de productos (CRUD). El stock NO
// se edita desde aquí: toda variación de existencias pasa por el ledger de
// movimientos.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

// UseCase implementa las operaciones de catálogo.
type UseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	saleRepo    repository.SaleRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		saleRepo:    saleRepo,
		log:         log,
	}
}

// CreateProduct valida y da de alta un producto. El SKU es opcional pero
// único cuando se informa.
func (uc *UseCase) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if p.Status == "" {
		p.Status = entity.ProductStatusActive
	}

	id, err := uc.productRepo.Create(p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	uc.log.Info().Int64("product_id", id).Str("name", p.Name).Msg("producto creado")
	return p, nil
}

// GetProduct devuelve un producto por id.
func (uc *UseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// ListProducts devuelve el catálogo completo.
func (uc *UseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List()
}

// UpdateProduct valida y actualiza los atributos de un producto existente.
func (uc *UseCase) UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if p.ID <= 0 {
		return nil, &domain.ValidationError{Field: "id", Reason: "debe ser positivo"}
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	current, err := uc.productRepo.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("producto %d: %w", p.ID, domain.ErrNotFound)
	}

	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", p.ID).Msg("producto actualizado")
	return p, nil
}

// DeleteProduct elimina un producto sin historial. Un producto con
// movimientos o ventas registradas no puede borrarse: hacerlo dejaría
// huérfano el ledger. En ese caso devuelve ErrHasMovements; el flujo
// correcto es marcarlo inactivo vía UpdateProduct.
func (uc *UseCase) DeleteProduct(ctx context.Context, id int64) error {
	current, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}

	movements, err := uc.movRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	sales, err := uc.saleRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if movements > 0 || sales > 0 {
		return fmt.Errorf("producto %d tiene %d movimientos y %d ventas: %w",
			id, movements, sales, domain.ErrHasMovements)
	}

	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("product_id", id).Msg("producto eliminado")
	return nil
}

func validateProduct(p *entity.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "es obligatorio"}
	}
	if p.SalePrice.LessThan(decimal.Zero) {
		return &domain.ValidationError{Field: "sale_price", Reason: "no puede ser negativo"}
	}
	if p.MinStock < 0 {
		return &domain.ValidationError{Field: "min_stock", Reason: "no puede ser negativo"}
	}
	if p.MaxStock < 0 {
		return &domain.ValidationError{Field: "max_stock", Reason: "no puede ser negativo"}
	}
	if p.MaxStock > 0 && p.MinStock > p.MaxStock {
		return &domain.ValidationError{Field: "min_stock", Reason: "no puede superar max_stock"}
	}
	return nil
}
