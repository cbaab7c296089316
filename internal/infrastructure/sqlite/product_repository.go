package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, COALESCE(sku, ''), name, sale_price, brand, category, presentation,
	flavor, weight, location, expiry_date, lot_number, min_stock, max_stock, status`

const dateOnly = "2006-01-02"

// Create persiste un producto nuevo. SKU duplicado devuelve ErrSKUTaken.
func (r *ProductRepo) Create(p *entity.Product) (int64, error) {
	res, err := r.q.Exec(
		`INSERT INTO products (sku, name, sale_price, brand, category, presentation, flavor,
			weight, location, expiry_date, lot_number, min_stock, max_stock, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableSKU(p.SKU), p.Name, p.SalePrice.String(), p.Brand, p.Category, p.Presentation,
		p.Flavor, p.Weight, p.Location, nullableDate(p.ExpiryDate), p.LotNumber,
		p.MinStock, p.MaxStock, p.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrSKUTaken
		}
		return 0, &domain.StorageError{Op: "create product", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "create product: last insert id", Err: err}
	}
	p.ID = id
	return id, nil
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	row := r.q.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return scanProduct(row, "get product")
}

// GetBySKU devuelve el producto o nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	if sku == "" {
		return nil, nil
	}
	row := r.q.QueryRow(`SELECT `+productColumns+` FROM products WHERE sku = ?`, sku)
	return scanProduct(row, "get product by sku")
}

// List devuelve el catálogo completo ordenado por nombre.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	rows, err := r.q.Query(`SELECT ` + productColumns + ` FROM products ORDER BY name`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list products", Err: err}
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list products: scan", Err: err}
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list products: rows", Err: err}
	}
	return list, nil
}

// Update sobreescribe los atributos del producto. Producto inexistente
// devuelve ErrNotFound.
func (r *ProductRepo) Update(p *entity.Product) error {
	res, err := r.q.Exec(
		`UPDATE products SET sku = ?, name = ?, sale_price = ?, brand = ?, category = ?,
			presentation = ?, flavor = ?, weight = ?, location = ?, expiry_date = ?,
			lot_number = ?, min_stock = ?, max_stock = ?, status = ?
		 WHERE id = ?`,
		nullableSKU(p.SKU), p.Name, p.SalePrice.String(), p.Brand, p.Category, p.Presentation,
		p.Flavor, p.Weight, p.Location, nullableDate(p.ExpiryDate), p.LotNumber,
		p.MinStock, p.MaxStock, p.Status, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUTaken
		}
		return &domain.StorageError{Op: "update product", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update product: rows affected", Err: err}
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. Producto inexistente devuelve ErrNotFound.
func (r *ProductRepo) Delete(id int64) error {
	res, err := r.q.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return &domain.StorageError{Op: "delete product", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "delete product: rows affected", Err: err}
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExpiringBetween devuelve productos con expiry_date dentro de [from, to].
func (r *ProductRepo) ListExpiringBetween(from, to time.Time) ([]*entity.Product, error) {
	rows, err := r.q.Query(
		`SELECT `+productColumns+` FROM products
		 WHERE expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?
		 ORDER BY expiry_date`,
		from.Format(dateOnly), to.Format(dateOnly),
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "list expiring products", Err: err}
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list expiring products: scan", Err: err}
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list expiring products: rows", Err: err}
	}
	return list, nil
}

func scanProduct(row *sql.Row, op string) (*entity.Product, error) {
	p, err := scanProductFrom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: op, Err: err}
	}
	return p, nil
}

func scanProductRow(rows *sql.Rows) (*entity.Product, error) {
	return scanProductFrom(rows.Scan)
}

func scanProductFrom(scan func(dest ...any) error) (*entity.Product, error) {
	var p entity.Product
	var price string
	var expiry sql.NullString
	if err := scan(
		&p.ID, &p.SKU, &p.Name, &price, &p.Brand, &p.Category, &p.Presentation,
		&p.Flavor, &p.Weight, &p.Location, &expiry, &p.LotNumber,
		&p.MinStock, &p.MaxStock, &p.Status,
	); err != nil {
		return nil, err
	}
	p.SalePrice = mustDecimal(price)
	if expiry.Valid && expiry.String != "" {
		if t, err := time.Parse(dateOnly, expiry.String); err == nil {
			p.ExpiryDate = &t
		}
	}
	return &p, nil
}

func nullableSKU(sku string) any {
	if sku == "" {
		return nil // NULL no colisiona con el índice único
	}
	return sku
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateOnly)
}

// isUniqueViolation verifica si un error del driver es una violación de
// constraint único.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
