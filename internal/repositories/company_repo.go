package repositories

import (
	"context"
	"errors"

	"medivision/internal/common"
	"medivision/internal/models"

	"github.com/jackc/pgx/v5"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByRegdCode(ctx context.Context, regdCode string) (*models.Company, error)
	List(ctx context.Context) ([]*models.Company, error)
	Search(ctx context.Context, q string) ([]*models.Company, error)
	Delete(ctx context.Context, regdCode string) error
}

type companyRepository struct {
	db Database
}

func NewCompanyRepository(db Database) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, regd_code, name, divisions, contact_person, address, mobile, email,
	tds, einv, pi_round`

func scanCompany(row pgx.Row) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.ID, &c.RegdCode, &c.Name, &c.Divisions, &c.ContactPerson, &c.Address,
		&c.Mobile, &c.Email, &c.TDS, &c.EInv, &c.PIRound)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `INSERT INTO companies (id, regd_code, name, divisions, contact_person, address,
		mobile, email, tds, einv, pi_round)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.RegdCode, company.Name, company.Divisions, company.ContactPerson,
		company.Address, company.Mobile, company.Email, company.TDS, company.EInv, company.PIRound)
	return err
}

func (r *companyRepository) GetByRegdCode(ctx context.Context, regdCode string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE regd_code = $1`
	c, err := scanCompany(r.db.QueryRow(ctx, query, regdCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return c, err
}

func (r *companyRepository) List(ctx context.Context) ([]*models.Company, error) {
	return r.queryCompanies(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
}

func (r *companyRepository) Search(ctx context.Context, q string) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		WHERE name ILIKE $1 OR regd_code ILIKE $1 ORDER BY name LIMIT 50`
	return r.queryCompanies(ctx, query, "%"+q+"%")
}

func (r *companyRepository) queryCompanies(ctx context.Context, query string, args ...interface{}) ([]*models.Company, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepository) Delete(ctx context.Context, regdCode string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE regd_code = $1`, regdCode)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
