package dto

import (
	"time"

	"github.com/jhoicas/vitasport-core/internal/domain"
)

// RangeRequest rango de fechas para reportes y exports. Fechas como
// YYYY-MM-DD; vacío = sin cota.
type RangeRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Category  string `json:"category"`
}

// ParseRange convierte las fechas del request. La fecha final se lleva al
// último instante del día para que el rango sea inclusive.
func (r RangeRequest) ParseRange() (from, to *time.Time, err error) {
	if r.StartDate != "" {
		t, perr := time.Parse("2006-01-02", r.StartDate)
		if perr != nil {
			return nil, nil, &domain.ValidationError{Field: "start_date", Reason: "formato esperado YYYY-MM-DD"}
		}
		from = &t
	}
	if r.EndDate != "" {
		t, perr := time.Parse("2006-01-02", r.EndDate)
		if perr != nil {
			return nil, nil, &domain.ValidationError{Field: "end_date", Reason: "formato esperado YYYY-MM-DD"}
		}
		end := t.Add(24*time.Hour - time.Second)
		to = &end
	}
	return from, to, nil
}

// ParseDateTime acepta fecha con hora (RFC 3339 o "YYYY-MM-DD HH:MM") o
// fecha sola.
func ParseDateTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, &domain.ValidationError{Field: field, Reason: "fecha inválida"}
}
