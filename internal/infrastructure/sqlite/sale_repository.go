package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/vitasport-core/internal/domain"
	"github.com/jhoicas/vitasport-core/internal/domain/entity"
	"github.com/jhoicas/vitasport-core/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre SQLite (usable con db o tx).
// Las ventas son append-only: este adaptador no tiene UPDATE ni DELETE.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar db o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta y devuelve su id.
func (r *SaleRepo) Create(s *entity.Sale) (int64, error) {
	var createdBy any
	if s.CreatedBy != 0 {
		createdBy = s.CreatedBy
	}
	res, err := r.q.Exec(
		`INSERT INTO sales (product_id, quantity, sale_price, discount, channel, tx_id, sale_date, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ProductID, s.Quantity, s.SalePrice.String(), s.Discount.String(),
		s.Channel, s.TxID, s.SaleDate.UTC().Format(time.RFC3339), createdBy,
	)
	if err != nil {
		return 0, &domain.StorageError{Op: "create sale", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "create sale: last insert id", Err: err}
	}
	s.ID = id
	return id, nil
}

// GetByID devuelve una venta o nil si no existe.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	const query = `
		SELECT id, product_id, quantity, sale_price, discount, channel, tx_id, sale_date, COALESCE(created_by, 0)
		FROM sales WHERE id = ?`
	var s entity.Sale
	var price, discount, saleDate string
	err := r.q.QueryRow(query, id).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &price, &discount, &s.Channel, &s.TxID, &saleDate, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "get sale", Err: err}
	}
	s.SalePrice = mustDecimal(price)
	s.Discount = mustDecimal(discount)
	s.SaleDate = parseTime(saleDate)
	return &s, nil
}

const saleLineSelect = `
	SELECT s.id, s.product_id, s.quantity, s.sale_price, s.discount, s.channel, s.tx_id,
	       s.sale_date, COALESCE(s.created_by, 0),
	       p.name, p.category, COALESCE(u.username, '')
	FROM sales s
	JOIN products p ON p.id = s.product_id
	LEFT JOIN users u ON u.id = s.created_by`

// List devuelve ventas con producto y vendedor, la más reciente primero.
func (r *SaleRepo) List(limit int) ([]*repository.SaleLine, error) {
	query := saleLineSelect + ` ORDER BY s.sale_date DESC, s.id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.querySaleLines("list sales", query, args...)
}

// ListInRange devuelve las ventas con sale_date (solo fecha, la hora se
// ignora) dentro de [from, to]. Extremo nil = sin cota. category vacío = sin
// filtro. El orden ascendente por fecha lo aprovechan los reportes de
// tendencia.
func (r *SaleRepo) ListInRange(from, to *time.Time, category string) ([]*repository.SaleLine, error) {
	query := saleLineSelect + ` WHERE 1=1`
	var args []any
	if from != nil {
		query += ` AND date(s.sale_date) >= date(?)`
		args = append(args, from.UTC().Format(time.RFC3339))
	}
	if to != nil {
		query += ` AND date(s.sale_date) <= date(?)`
		args = append(args, to.UTC().Format(time.RFC3339))
	}
	if category != "" {
		query += ` AND p.category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY s.sale_date ASC, s.id ASC`
	return r.querySaleLines("list sales in range", query, args...)
}

// CountByProduct cuenta las ventas de un producto.
func (r *SaleRepo) CountByProduct(productID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(`SELECT COUNT(*) FROM sales WHERE product_id = ?`, productID).Scan(&n)
	if err != nil {
		return 0, &domain.StorageError{Op: "count sales", Err: err}
	}
	return n, nil
}

func (r *SaleRepo) querySaleLines(op, query string, args ...any) ([]*repository.SaleLine, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	var list []*repository.SaleLine
	for rows.Next() {
		var line repository.SaleLine
		var price, discount, saleDate string
		if err := rows.Scan(
			&line.Sale.ID, &line.Sale.ProductID, &line.Sale.Quantity, &price, &discount,
			&line.Sale.Channel, &line.Sale.TxID, &saleDate, &line.Sale.CreatedBy,
			&line.ProductName, &line.Category, &line.Seller,
		); err != nil {
			return nil, &domain.StorageError{Op: op + ": scan", Err: err}
		}
		line.Sale.SalePrice = mustDecimal(price)
		line.Sale.Discount = mustDecimal(discount)
		line.Sale.SaleDate = parseTime(saleDate)
		list = append(list, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: op + ": rows", Err: err}
	}
	return list, nil
}

// mustDecimal convierte el TEXT decimal de la base. Un valor no numérico
// solo puede venir de una edición manual del archivo; se trata como cero.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
