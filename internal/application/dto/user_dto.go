package dto

import (
	"time"

	"github.com/jhoicas/vitasport-core/internal/domain/entity"
)

// LoginRequest body para auth.login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse token y usuario tras un login exitoso.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest body para users.create.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=Administrador Vendedor"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
}

// UpdateUserRequest body para users.update. Password vacío conserva la
// contraseña actual.
type UpdateUserRequest struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Password string `json:"password" validate:"omitempty,min=4"`
	Role     string `json:"role" validate:"omitempty,oneof=Administrador Vendedor"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
}

// UserResponse usuario en respuestas. Nunca incluye el hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromUser arma el DTO de respuesta.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// FromUsers mapea una lista de usuarios.
func FromUsers(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
