package command

import (
	"context"

	"github.com/jhoicas/vitasport-core/internal/application/auth"
	"github.com/jhoicas/vitasport-core/internal/application/dto"
)

// AuthHandler comandos de login y administración de usuarios.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register registra los comandos. auth.login es público; los comandos de
// usuarios son solo de administrador.
func (h *AuthHandler) Register(d *Dispatcher) {
	d.RegisterPublic("auth.login", h.login(d))
	d.RegisterAdmin("users.create", h.createUser(d))
	d.RegisterAdmin("users.list", h.listUsers())
	d.RegisterAdmin("users.update", h.updateUser(d))
	d.RegisterAdmin("users.delete", h.deleteUser(d))
}

func (h *AuthHandler) login(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.LoginRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		session, err := h.uc.Login(ctx, body.Username, body.Password)
		if err != nil {
			return nil, err
		}
		return dto.LoginResponse{Token: session.Token, User: dto.FromUser(session.User)}, nil
	}
}

func (h *AuthHandler) createUser(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.CreateUserRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		user, err := h.uc.CreateUser(ctx, auth.CreateUserInput{
			Username: body.Username,
			Password: body.Password,
			Role:     body.Role,
			FullName: body.FullName,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromUser(user), nil
	}
}

func (h *AuthHandler) listUsers() HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		users, err := h.uc.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		return dto.FromUsers(users), nil
	}
}

func (h *AuthHandler) updateUser(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body dto.UpdateUserRequest
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		user, err := h.uc.UpdateUser(ctx, auth.UpdateUserInput{
			ID:       body.ID,
			Password: body.Password,
			Role:     body.Role,
			FullName: body.FullName,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromUser(user), nil
	}
}

func (h *AuthHandler) deleteUser(d *Dispatcher) HandlerFunc {
	return func(ctx context.Context, req *Request) (any, error) {
		var body struct {
			ID int64 `json:"id" validate:"required,gt=0"`
		}
		if err := d.Bind(req, &body); err != nil {
			return nil, err
		}
		if err := h.uc.DeleteUser(ctx, body.ID); err != nil {
			return nil, err
		}
		return map[string]int64{"deleted_id": body.ID}, nil
	}
}
