// Package auth maneja el login local y la administración de usuarios.
// Las contraseñas se guardan con bcrypt; el login emite un JWT que el
// despachador de comandos valida en las operaciones protegidas.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
	"github.com/jhoicas/vitasport-core/pkg/config"
	"github.com/jhoicas/vitasport-core/pkg/jwt"
	"github.com/jhoicas/vitasport-core/pkg/logger"
)

// UseCase implementa login y CRUD de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// Session resultado de un login exitoso.
type Session struct {
	Token string
	User  *entity.User
}

// Login verifica las credenciales y emite un token. Usuario inexistente y
// contraseña incorrecta devuelven el mismo ErrUnauthorized para no filtrar
// cuál de los dos falló.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, &domain.ValidationError{Field: "username", Reason: "usuario y contraseña son obligatorios"}
	}

	user, err := uc.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.log.Warn().Str("username", username).Msg("intento de login con contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generando token: %w", err)
	}
	uc.log.Info().Str("username", username).Str("role", user.Role).Msg("login exitoso")
	return &Session{Token: token, User: user}, nil
}

// VerifyToken valida un token emitido por Login y devuelve su identidad.
func (uc *UseCase) VerifyToken(token string) (userID int64, username, role string, err error) {
	userID, username, role, err = jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return 0, "", "", domain.ErrUnauthorized
	}
	return userID, username, role, nil
}

// CreateUserInput datos de alta de un usuario.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
	FullName string
}

// CreateUser da de alta un usuario con la contraseña hasheada.
func (uc *UseCase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, &domain.ValidationError{Field: "username", Reason: "es obligatorio"}
	}
	if len(in.Password) < 4 {
		return nil, &domain.ValidationError{Field: "password", Reason: "mínimo 4 caracteres"}
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleVendedor {
		return nil, &domain.ValidationError{Field: "role", Reason: "rol desconocido"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hasheando contraseña: %w", err)
	}

	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		FullName:     in.FullName,
	}
	id, err := uc.userRepo.Create(user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	uc.log.Info().Int64("user_id", id).Str("username", in.Username).Msg("usuario creado")
	return user, nil
}

// ListUsers devuelve todos los usuarios.
func (uc *UseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List()
}

// UpdateUserInput campos editables de un usuario. Password vacío conserva
// la contraseña actual.
type UpdateUserInput struct {
	ID       int64
	Password string
	Role     string
	FullName string
}

// UpdateUser actualiza rol, nombre y opcionalmente la contraseña.
func (uc *UseCase) UpdateUser(ctx context.Context, in UpdateUserInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", in.ID, domain.ErrUserNotFound)
	}

	if in.Role != "" {
		if in.Role != entity.RoleAdmin && in.Role != entity.RoleVendedor {
			return nil, &domain.ValidationError{Field: "role", Reason: "rol desconocido"}
		}
		user.Role = in.Role
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Password != "" {
		if len(in.Password) < 4 {
			return nil, &domain.ValidationError{Field: "password", Reason: "mínimo 4 caracteres"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hasheando contraseña: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("usuario actualizado")
	return user, nil
}

// DeleteUser elimina un usuario. El último administrador no puede borrarse:
// el sistema quedaría sin acceso de administración.
func (uc *UseCase) DeleteUser(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %d: %w", id, domain.ErrUserNotFound)
	}

	if user.Role == entity.RoleAdmin {
		all, err := uc.userRepo.List()
		if err != nil {
			return err
		}
		admins := 0
		for _, u := range all {
			if u.Role == entity.RoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return &domain.ValidationError{Field: "id", Reason: "no se puede eliminar el último administrador"}
		}
	}

	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id).Msg("usuario eliminado")
	return nil
}
