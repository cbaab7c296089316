package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar db o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, password_hash, role, fullname, created_at, updated_at`

// Create persiste un usuario. Username duplicado devuelve ErrUsernameTaken.
func (r *UserRepo) Create(u *entity.User) (int64, error) {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	res, err := r.q.Exec(
		`INSERT INTO users (username, password_hash, role, fullname, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Role, u.FullName,
		u.CreatedAt.UTC().Format(time.RFC3339), u.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrUsernameTaken
		}
		return 0, &domain.StorageError{Op: "create user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "create user: last insert id", Err: err}
	}
	u.ID = id
	return id, nil
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	return r.scanOne(r.q.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id), "get user")
}

// FindByUsername devuelve el usuario o nil si no existe.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	return r.scanOne(r.q.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username), "find user by username")
}

// List devuelve todos los usuarios ordenados por username.
func (r *UserRepo) List() ([]*entity.User, error) {
	rows, err := r.q.Query(`SELECT ` + userColumns + ` FROM users ORDER BY username`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list users", Err: err}
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var createdAt, updatedAt string
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.FullName, &createdAt, &updatedAt); err != nil {
			return nil, &domain.StorageError{Op: "list users: scan", Err: err}
		}
		u.CreatedAt = parseTime(createdAt)
		u.UpdatedAt = parseTime(updatedAt)
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list users: rows", Err: err}
	}
	return list, nil
}

// Update sobreescribe username, hash, rol y nombre. Usuario inexistente
// devuelve ErrUserNotFound.
func (r *UserRepo) Update(u *entity.User) error {
	res, err := r.q.Exec(
		`UPDATE users SET username = ?, password_hash = ?, role = ?, fullname = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, u.PasswordHash, u.Role, u.FullName,
		time.Now().UTC().Format(time.RFC3339), u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return &domain.StorageError{Op: "update user", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update user: rows affected", Err: err}
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario. Usuario inexistente devuelve ErrUserNotFound.
func (r *UserRepo) Delete(id int64) error {
	res, err := r.q.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return &domain.StorageError{Op: "delete user", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "delete user: rows affected", Err: err}
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Count cuenta los usuarios registrados.
func (r *UserRepo) Count() (int64, error) {
	var n int64
	if err := r.q.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, &domain.StorageError{Op: "count users", Err: err}
	}
	return n, nil
}

func (r *UserRepo) scanOne(row *sql.Row, op string) (*entity.User, error) {
	var u entity.User
	var createdAt, updatedAt string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.FullName, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: op, Err: err}
	}
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}
