// Package exports genera los archivos CSV de ventas e inventario para
// abrir en una planilla. Las versiones viejas de Excel en Windows esperan
// Latin-1, por eso el encoding es seleccionable.
package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	textencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"github.com/jhoicas/vitasport-core/internal/application/inventory"
	"github.com/jhoicas/vitasport-core/internal/application/reports"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

// Encodings soportados.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

const dateTimeFormat = "2006-01-02 15:04"

// UseCase arma los exports a partir de las mismas lecturas que usan los
// reportes.
type UseCase struct {
	saleRepo  repository.SaleRepository
	inventory *inventory.UseCase
}

// NewUseCase construye el caso de uso de exportación.
func NewUseCase(saleRepo repository.SaleRepository, inv *inventory.UseCase) *UseCase {
	return &UseCase{saleRepo: saleRepo, inventory: inv}
}

// SalesCSV exporta las ventas del rango, una fila por venta, ascendente por
// fecha. encoding vacío equivale a UTF-8.
func (uc *UseCase) SalesCSV(ctx context.Context, filter reports.RangeFilter, encoding string) ([]byte, error) {
	lines, err := uc.saleRepo.ListInRange(filter.From, filter.To, filter.Category)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "fecha", "producto", "categoria", "cantidad", "precio_unitario", "descuento", "total", "canal", "vendedor"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("escribiendo encabezado: %w", err)
	}
	for _, line := range lines {
		row := []string{
			strconv.FormatInt(line.Sale.ID, 10),
			line.Sale.SaleDate.Format(dateTimeFormat),
			line.ProductName,
			line.Category,
			strconv.FormatInt(line.Sale.Quantity, 10),
			line.Sale.SalePrice.StringFixed(2),
			line.Sale.Discount.StringFixed(2),
			line.Sale.Revenue().StringFixed(2),
			line.Sale.Channel,
			line.Seller,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("escribiendo fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("volcando csv: %w", err)
	}
	return encode(buf.Bytes(), encoding)
}

// InventoryCSV exporta el catálogo con su stock derivado del ledger.
func (uc *UseCase) InventoryCSV(ctx context.Context, encoding string) ([]byte, error) {
	items, err := uc.inventory.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "sku", "nombre", "marca", "categoria", "stock", "stock_minimo", "precio_venta", "vencimiento", "lote", "ubicacion", "estado"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("escribiendo encabezado: %w", err)
	}
	for _, item := range items {
		p := item.Product
		expiry := ""
		if p.ExpiryDate != nil {
			expiry = p.ExpiryDate.Format("2006-01-02")
		}
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.SKU,
			p.Name,
			p.Brand,
			p.Category,
			strconv.FormatInt(item.Stock, 10),
			strconv.FormatInt(p.MinStock, 10),
			p.SalePrice.StringFixed(2),
			expiry,
			p.LotNumber,
			p.Location,
			p.Status,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("escribiendo fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("volcando csv: %w", err)
	}
	return encode(buf.Bytes(), encoding)
}

// encode transcodifica el CSV (armado en UTF-8) al encoding pedido. Los
// caracteres sin representación en Latin-1 se sustituyen en vez de abortar
// el export completo.
func encode(data []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "", EncodingUTF8:
		return data, nil
	case EncodingLatin1:
		enc := textencoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
		out, _, err := transform.Bytes(enc, data)
		if err != nil {
			return nil, fmt.Errorf("transcodificando a latin-1: %w", err)
		}
		return out, nil
	default:
		return nil, &domain.ValidationError{Field: "encoding", Reason: "debe ser 'utf-8' o 'latin-1'"}
	}
}
