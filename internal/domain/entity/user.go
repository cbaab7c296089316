package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "Administrador"
	RoleVendedor = "Vendedor"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // Administrador, Vendedor
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
