package command

import (
	"context"
	"encoding/base64"

	"github.com/jhoicas/vitasport-core/internal/application/dto"
	"github.com/jhoicas/vitasport-core/internal/application/exports"
	"github.com/jhoicas/vitasport-core/internal/application/reports"
)

// ExportsHandler comandos de exportación CSV. El contenido viaja en base64
// dentro del JSON; el frontend lo decodifica y lo guarda a disco.
type ExportsHandler struct {
	uc *exports.UseCase
}

// NewExportsHandler construye el handler.
func NewExportsHandler(uc *exports.UseCase) *ExportsHandler {
	return &ExportsHandler{uc: uc}
}

// Register registra los comandos de exportación.
func (h *ExportsHandler) Register(d *Dispatcher) {
	d.Register("exports.sales_csv", h.salesCSV(d))
	d.Register("exports.inventory_csv", h.inventoryCSV(d))
}

type exportRequest struct {
	dto.RangeRequest
	Encoding string `json:"encoding" validate:"omitempty,oneof=utf-8 latin-1"`
}

type exportResponse struct {
	Filename      string `json:"filename"`
	Encoding      string `json:"encoding"`
	ContentBase64 string `json:"content_base64"`
}

func (h *ExportsHandler) salesCSV(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body exportRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		from, to, err := body.ParseRange()
		if err != nil {
			return nil, err
		}
		filter := reports.RangeFilter{From: from, To: to, Category: body.Category}
		data, err := h.uc.SalesCSV(ctx, filter, body.Encoding)
		if err != nil {
			return nil, err
		}
		return exportResponse{
			Filename:      "ventas.csv",
			Encoding:      normalizeEncoding(body.Encoding),
			ContentBase64: base64.StdEncoding.EncodeToString(data),
		}, nil
	}
}

func (h *ExportsHandler) inventoryCSV(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body exportRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		data, err := h.uc.InventoryCSV(ctx, body.Encoding)
		if err != nil {
			return nil, err
		}
		return exportResponse{
			Filename:      "inventario.csv",
			Encoding:      normalizeEncoding(body.Encoding),
			ContentBase64: base64.StdEncoding.EncodeToString(data),
		}, nil
	}
}

func normalizeEncoding(encoding string) string {
	if encoding == "" {
		return exports.EncodingUTF8
	}
	return encoding
}
