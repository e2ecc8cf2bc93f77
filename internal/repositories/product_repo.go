package repositories

import (
	"context"
	"errors"

	"medivision/internal/common"
	"medivision/internal/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByName(ctx context.Context, name string) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string) ([]*models.Product, error)
	StockSearch(ctx context.Context, q string) ([]*models.StockSearchRow, error)
	SalesSearch(ctx context.Context, q string) ([]*models.SalesProductRow, error)
	// AdjustStockByName atomically shifts current_stock and reports whether a
	// matching product row existed.
	AdjustStockByName(ctx context.Context, name string, delta int) (bool, error)
	LowStock(ctx context.Context, threshold int) ([]*models.Product, error)
}

type productRepository struct {
	db Database
}

func NewProductRepository(db Database) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, code, name, current_stock, packing, manufacturer, division, category,
	unit_in_box, unit_in_case, weight, max_mrp, max_qty, row_color, flash_message`

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.CurrentStock, &p.Packing, &p.Manufacturer,
		&p.Division, &p.Category, &p.UnitInBox, &p.UnitInCase, &p.Weight, &p.MaxMRP,
		&p.MaxQty, &p.RowColor, &p.FlashMessage)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	query := `INSERT INTO products (id, code, name, current_stock, packing, manufacturer, division,
		category, unit_in_box, unit_in_case, weight, max_mrp, max_qty, row_color, flash_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.CurrentStock, product.Packing,
		product.Manufacturer, product.Division, product.Category, product.UnitInBox,
		product.UnitInCase, product.Weight, product.MaxMRP, product.MaxQty,
		product.RowColor, product.FlashMessage)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return p, err
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return p, err
}

func (r *productRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	return r.queryProducts(ctx, query)
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET code = $2, name = $3, packing = $4, manufacturer = $5,
		division = $6, category = $7, unit_in_box = $8, unit_in_case = $9, weight = $10,
		max_mrp = $11, max_qty = $12, row_color = $13, flash_message = $14
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Packing, product.Manufacturer,
		product.Division, product.Category, product.UnitInBox, product.UnitInCase,
		product.Weight, product.MaxMRP, product.MaxQty, product.RowColor, product.FlashMessage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *productRepository) Search(ctx context.Context, q string) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE $1 OR code ILIKE $1 ORDER BY name LIMIT 50`
	return r.queryProducts(ctx, query, "%"+q+"%")
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) StockSearch(ctx context.Context, q string) ([]*models.StockSearchRow, error) {
	query := `SELECT id, code, name, packing, division, max_mrp, current_stock FROM products
		WHERE name ILIKE $1 OR code ILIKE $1 ORDER BY name LIMIT 50`
	rows, err := r.db.Query(ctx, query, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.StockSearchRow
	for rows.Next() {
		row := &models.StockSearchRow{}
		if err := rows.Scan(&row.ID, &row.PCode, &row.Name, &row.Packing, &row.Division,
			&row.MRP, &row.Stock); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesSearch joins master attributes with batch, expiry and rate from each
// product's most recent purchase line, for the sales invoice screen.
func (r *productRepository) SalesSearch(ctx context.Context, q string) ([]*models.SalesProductRow, error) {
	query := `SELECT p.code, p.name, COALESCE(p.packing, ''), COALESCE(p.max_mrp, 0), p.current_stock,
		COALESCE(pe.batch_no, ''), COALESCE(pe.exp_date, ''), COALESCE(pe.rate, 0)
		FROM products p
		LEFT JOIN LATERAL (
			SELECT batch_no, exp_date, rate FROM purchase_entries
			WHERE product_name = p.name ORDER BY id DESC LIMIT 1
		) pe ON true
		WHERE p.name ILIKE $1 OR p.code ILIKE $1 ORDER BY p.name LIMIT 50`
	rows, err := r.db.Query(ctx, query, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.SalesProductRow
	for rows.Next() {
		row := &models.SalesProductRow{}
		if err := rows.Scan(&row.PCode, &row.Name, &row.Packing, &row.MRP, &row.Stock,
			&row.Batch, &row.Exp, &row.Rate); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *productRepository) AdjustStockByName(ctx context.Context, name string, delta int) (bool, error) {
	query := `UPDATE products SET current_stock = current_stock + $1 WHERE name = $2`
	tag, err := r.db.Exec(ctx, query, delta, name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *productRepository) LowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE current_stock < $1 ORDER BY current_stock`
	return r.queryProducts(ctx, query, threshold)
}
