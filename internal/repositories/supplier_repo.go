package repositories

import (
	"context"
	"errors"

	"medivision/internal/common"
	"medivision/internal/models"

	"github.com/jackc/pgx/v5"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByCode(ctx context.Context, code string) (*models.Supplier, error)
	List(ctx context.Context) ([]*models.Supplier, error)
	Search(ctx context.Context, q string) ([]*models.Supplier, error)
	Delete(ctx context.Context, code string) error
}

type supplierRepository struct {
	db Database
}

func NewSupplierRepository(db Database) SupplierRepository {
	return &supplierRepository{db: db}
}

const supplierColumns = `id, code, supplier_name, owner_name, address, city, pincode, mobile,
	whatsapp, email, drug_license, gstin, opening_balance, tds`

func scanSupplier(row pgx.Row) (*models.Supplier, error) {
	s := &models.Supplier{}
	err := row.Scan(&s.ID, &s.Code, &s.SupplierName, &s.OwnerName, &s.Address, &s.City,
		&s.Pincode, &s.Mobile, &s.Whatsapp, &s.Email, &s.DrugLicense, &s.GSTIN,
		&s.OpeningBalance, &s.TDS)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *supplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `INSERT INTO suppliers (id, code, supplier_name, owner_name, address, city, pincode,
		mobile, whatsapp, email, drug_license, gstin, opening_balance, tds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		supplier.ID, supplier.Code, supplier.SupplierName, supplier.OwnerName, supplier.Address,
		supplier.City, supplier.Pincode, supplier.Mobile, supplier.Whatsapp, supplier.Email,
		supplier.DrugLicense, supplier.GSTIN, supplier.OpeningBalance, supplier.TDS)
	return err
}

func (r *supplierRepository) GetByCode(ctx context.Context, code string) (*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE code = $1`
	s, err := scanSupplier(r.db.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return s, err
}

func (r *supplierRepository) List(ctx context.Context) ([]*models.Supplier, error) {
	return r.querySuppliers(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY supplier_name`)
}

func (r *supplierRepository) Search(ctx context.Context, q string) ([]*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers
		WHERE supplier_name ILIKE $1 OR code ILIKE $1 ORDER BY supplier_name LIMIT 50`
	return r.querySuppliers(ctx, query, "%"+q+"%")
}

func (r *supplierRepository) querySuppliers(ctx context.Context, query string, args ...interface{}) ([]*models.Supplier, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) Delete(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
