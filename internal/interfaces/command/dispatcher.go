// Package command expone los casos de uso como comandos JSON sobre
// stdin/stdout, el canal que usa el frontend de escritorio con el backend
// como proceso hijo. Una línea de entrada = un request; una línea de salida
// = su respuesta, correlacionadas por id.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/vitasport-core/internal/application/auth"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

// Códigos de error del protocolo.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnknownCommand    = "UNKNOWN_COMMAND"
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeHasMovements      = "HAS_MOVEMENTS"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// Request un comando entrante.
type Request struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response envoltorio de toda respuesta.
type Response struct {
	ID      string     `json:"id,omitempty"`
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody detalle de un error. Available/Requested solo se informan en
// INSUFFICIENT_STOCK para que el frontend muestre cuánto queda.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Available *int64 `json:"available,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
}

// Identity usuario autenticado del request, derivado del token.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

type identityKey struct{}

// IdentityFrom devuelve la identidad del contexto, si la hay.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// HandlerFunc ejecuta un comando y devuelve el data de la respuesta.
type HandlerFunc func(ctx context.Context, req *Request) (any, error)

type registration struct {
	handler   HandlerFunc
	public    bool
	adminOnly bool
}

// Dispatcher rutea comandos a sus handlers, validando token y payload.
type Dispatcher struct {
	handlers map[string]registration
	auth     *auth.UseCase
	validate *validator.Validate
	log      *logger.Logger
}

// NewDispatcher construye un dispatcher vacío.
func NewDispatcher(authUC *auth.UseCase, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]registration),
		auth:     authUC,
		validate: validator.New(),
		log:      log,
	}
}

// Register registra un comando protegido (requiere token).
func (d *Dispatcher) Register(name string, h HandlerFunc) {
	d.handlers[name] = registration{handler: h}
}

// RegisterPublic registra un comando accesible sin token.
func (d *Dispatcher) RegisterPublic(name string, h HandlerFunc) {
	d.handlers[name] = registration{handler: h, public: true}
}

// RegisterAdmin registra un comando restringido al rol Administrador.
func (d *Dispatcher) RegisterAdmin(name string, h HandlerFunc) {
	d.handlers[name] = registration{handler: h, adminOnly: true}
}

// Dispatch ejecuta una línea de request y devuelve siempre una Response,
// también ante errores de parseo.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Response{Success: false, Error: &ErrorBody{
			Code: CodeInvalidRequest, Message: "request malformado: se espera un objeto JSON por línea",
		}}
	}

	reg, ok := d.handlers[req.Command]
	if !ok {
		return d.fail(&req, &ErrorBody{
			Code: CodeUnknownCommand, Message: fmt.Sprintf("comando desconocido: %q", req.Command),
		})
	}

	if !reg.public {
		userID, username, role, err := d.auth.VerifyToken(req.Token)
		if err != nil {
			return d.fail(&req, &ErrorBody{Code: CodeUnauthorized, Message: "token inválido o vencido"})
		}
		if reg.adminOnly && role != entity.RoleAdmin {
			return d.fail(&req, &ErrorBody{Code: CodeUnauthorized, Message: "requiere rol Administrador"})
		}
		ctx = context.WithValue(ctx, identityKey{}, Identity{UserID: userID, Username: username, Role: role})
	}

	data, err := reg.handler(ctx, &req)
	if err != nil {
		body := d.mapError(err)
		if body.Code == CodeInternal {
			d.log.Error().Str("command", req.Command).Err(err).Msg("comando falló")
		}
		return d.fail(&req, body)
	}
	return Response{ID: req.ID, Success: true, Data: data}
}

// Bind decodifica y valida el payload de un request.
func (d *Dispatcher) Bind(req *Request, out any) error {
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, out); err != nil {
			return &domain.ValidationError{Field: "payload", Reason: "JSON inválido"}
		}
	}
	if err := d.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &domain.ValidationError{Field: verrs[0].Field(), Reason: "no cumple la regla " + verrs[0].Tag()}
		}
		return &domain.ValidationError{Field: "payload", Reason: err.Error()}
	}
	return nil
}

func (d *Dispatcher) fail(req *Request, body *ErrorBody) Response {
	return Response{ID: req.ID, Success: false, Error: body}
}

// mapError traduce errores de dominio a códigos del protocolo. Todo lo no
// clasificado sale como INTERNAL sin filtrar detalles del store.
func (d *Dispatcher) mapError(err error) *ErrorBody {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return &ErrorBody{Code: CodeValidation, Message: verr.Error(), Field: verr.Field}
	}
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return &ErrorBody{
			Code:      CodeInsufficientStock,
			Message:   stockErr.Error(),
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return &ErrorBody{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return &ErrorBody{Code: CodeUnauthorized, Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrHasMovements):
		return &ErrorBody{Code: CodeHasMovements, Message: err.Error()}
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrSKUTaken):
		return &ErrorBody{Code: CodeConflict, Message: err.Error()}
	default:
		return &ErrorBody{Code: CodeInternal, Message: "error interno"}
	}
}
