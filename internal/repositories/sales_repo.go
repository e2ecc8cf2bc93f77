package repositories

import (
	"context"
	"errors"

	"medivision/internal/common"
	"medivision/internal/models"

	"github.com/jackc/pgx/v5"
)

type SalesRepository interface {
	InsertHeader(ctx context.Context, inv *models.SalesInvoice) error
	InsertItem(ctx context.Context, item *models.SalesInvoiceItem) error
	GetHeader(ctx context.Context, invoiceNo string) (*models.SalesInvoice, error)
	ListItems(ctx context.Context, invoiceNo string) ([]*models.SalesInvoiceItem, error)
	DeleteByInvoiceNo(ctx context.Context, invoiceNo string) (int64, error)
	NextInvoiceNo(ctx context.Context) (int, error)
	ListHeaders(ctx context.Context, limit int) ([]*models.SalesInvoice, error)
}

type salesRepository struct {
	db Database
}

func NewSalesRepository(db Database) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) InsertHeader(ctx context.Context, inv *models.SalesInvoice) error {
	query := `INSERT INTO sales_invoices (invoice_no, invoice_date, trading_account, customer,
		area, city, state, payment_mode, due_days, notes, subtotal, total_discount, total_gst, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		inv.InvoiceNo, inv.InvoiceDate, inv.TradingAccount, inv.Customer, inv.Area, inv.City,
		inv.State, inv.PaymentMode, inv.DueDays, inv.Notes, inv.Subtotal, inv.TotalDiscount,
		inv.TotalGST, inv.GrandTotal)
	return err
}

func (r *salesRepository) InsertItem(ctx context.Context, item *models.SalesInvoiceItem) error {
	query := `INSERT INTO sales_invoice_items (invoice_no, pcode, name, batch, exp, qty, free,
		rate, gst, discount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		item.InvoiceNo, item.PCode, item.Name, item.Batch, item.Exp, item.Qty, item.Free,
		item.Rate, item.GST, item.Discount, item.LineTotal)
	return err
}

func (r *salesRepository) GetHeader(ctx context.Context, invoiceNo string) (*models.SalesInvoice, error) {
	query := `SELECT id, invoice_no, invoice_date, trading_account, customer, area, city, state,
		payment_mode, due_days, notes, subtotal, total_discount, total_gst, grand_total
		FROM sales_invoices WHERE invoice_no = $1`
	inv := &models.SalesInvoice{}
	err := r.db.QueryRow(ctx, query, invoiceNo).Scan(
		&inv.ID, &inv.InvoiceNo, &inv.InvoiceDate, &inv.TradingAccount, &inv.Customer, &inv.Area,
		&inv.City, &inv.State, &inv.PaymentMode, &inv.DueDays, &inv.Notes, &inv.Subtotal,
		&inv.TotalDiscount, &inv.TotalGST, &inv.GrandTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *salesRepository) ListItems(ctx context.Context, invoiceNo string) ([]*models.SalesInvoiceItem, error) {
	query := `SELECT id, invoice_no, pcode, name, batch, exp, qty, free, rate, gst, discount, line_total
		FROM sales_invoice_items WHERE invoice_no = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, invoiceNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SalesInvoiceItem
	for rows.Next() {
		item := &models.SalesInvoiceItem{}
		if err := rows.Scan(&item.ID, &item.InvoiceNo, &item.PCode, &item.Name, &item.Batch,
			&item.Exp, &item.Qty, &item.Free, &item.Rate, &item.GST, &item.Discount,
			&item.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteByInvoiceNo removes the header and its items, returning how many
// header rows went away.
func (r *salesRepository) DeleteByInvoiceNo(ctx context.Context, invoiceNo string) (int64, error) {
	if _, err := r.db.Exec(ctx, `DELETE FROM sales_invoice_items WHERE invoice_no = $1`, invoiceNo); err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM sales_invoices WHERE invoice_no = $1`, invoiceNo)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *salesRepository) NextInvoiceNo(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(CAST(invoice_no AS INTEGER)), 0) + 1 FROM sales_invoices`).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *salesRepository) ListHeaders(ctx context.Context, limit int) ([]*models.SalesInvoice, error) {
	query := `SELECT id, invoice_no, invoice_date, trading_account, customer, area, city, state,
		payment_mode, due_days, notes, subtotal, total_discount, total_gst, grand_total
		FROM sales_invoices ORDER BY id DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.SalesInvoice
	for rows.Next() {
		inv := &models.SalesInvoice{}
		if err := rows.Scan(&inv.ID, &inv.InvoiceNo, &inv.InvoiceDate, &inv.TradingAccount,
			&inv.Customer, &inv.Area, &inv.City, &inv.State, &inv.PaymentMode, &inv.DueDays,
			&inv.Notes, &inv.Subtotal, &inv.TotalDiscount, &inv.TotalGST, &inv.GrandTotal); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
