package repository

import "github.com/jhoicas/vitasport-core/internal/domain/entity"

// UserRepository persiste los usuarios del sistema.
type UserRepository interface {
	Create(u *entity.User) (int64, error)

	// GetByID devuelve el usuario o nil si no existe.
	GetByID(id int64) (*entity.User, error)

	// FindByUsername devuelve el usuario o nil si no existe.
	FindByUsername(username string) (*entity.User, error)

	List() ([]*entity.User, error)

	Update(u *entity.User) error

	Delete(id int64) error

	Count() (int64, error)
}
