package repositories

import (
	"context"
	"errors"

	"medivision/internal/common"
	"medivision/internal/models"

	"github.com/jackc/pgx/v5"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByCode(ctx context.Context, code string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Search(ctx context.Context, q string) ([]*models.Customer, error)
	Delete(ctx context.Context, code string) error
}

type customerRepository struct {
	db Database
}

func NewCustomerRepository(db Database) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, code, name, owner_name, address, landmark, area, city, state, pincode,
	mobile, whatsapp, email, drug_license, gstin, refrigerator_detail, opening_balance, tcs, tds`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.OwnerName, &c.Address, &c.Landmark, &c.Area,
		&c.City, &c.State, &c.Pincode, &c.Mobile, &c.Whatsapp, &c.Email, &c.DrugLicense,
		&c.GSTIN, &c.RefrigeratorDetail, &c.OpeningBalance, &c.TCS, &c.TDS)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `INSERT INTO customers (id, code, name, owner_name, address, landmark, area, city,
		state, pincode, mobile, whatsapp, email, drug_license, gstin, refrigerator_detail,
		opening_balance, tcs, tds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.Exec(ctx, query,
		customer.ID, customer.Code, customer.Name, customer.OwnerName, customer.Address,
		customer.Landmark, customer.Area, customer.City, customer.State, customer.Pincode,
		customer.Mobile, customer.Whatsapp, customer.Email, customer.DrugLicense, customer.GSTIN,
		customer.RefrigeratorDetail, customer.OpeningBalance, customer.TCS, customer.TDS)
	return err
}

func (r *customerRepository) GetByCode(ctx context.Context, code string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE code = $1`
	c, err := scanCustomer(r.db.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return c, err
}

func (r *customerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	return r.queryCustomers(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name`)
}

func (r *customerRepository) Search(ctx context.Context, q string) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE name ILIKE $1 OR code ILIKE $1 ORDER BY name LIMIT 50`
	return r.queryCustomers(ctx, query, "%"+q+"%")
}

func (r *customerRepository) queryCustomers(ctx context.Context, query string, args ...interface{}) ([]*models.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customerRepository) Delete(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
