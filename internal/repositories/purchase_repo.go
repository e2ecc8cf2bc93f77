package repositories

import (
	"context"

	"medivision/internal/models"
)

type PurchaseRepository interface {
	InsertLine(ctx context.Context, line *models.PurchaseLine) error
	ListByEntryNo(ctx context.Context, entryNo int) ([]*models.PurchaseLine, error)
	DeleteByEntryNo(ctx context.Context, entryNo int) (int64, error)
	NextEntryNo(ctx context.Context) (int, error)
	ListEntryNos(ctx context.Context) ([]int, error)
}

type purchaseRepository struct {
	db Database
}

func NewPurchaseRepository(db Database) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) InsertLine(ctx context.Context, line *models.PurchaseLine) error {
	query := `INSERT INTO purchase_entries (entry_no, entry_date, trading_account, supplier_name,
		supplier_gstin, city, state, invoice_no, invoice_date, product_name, batch_no, exp_date,
		quantity, free, mrp, rate, gst_percent, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.db.Exec(ctx, query,
		line.EntryNo, line.EntryDate, line.TradingAccount, line.SupplierName, line.SupplierGSTIN,
		line.City, line.State, line.InvoiceNo, line.InvoiceDate, line.ProductName, line.BatchNo,
		line.ExpDate, line.Quantity, line.Free, line.MRP, line.Rate, line.GSTPercent, line.Amount)
	return err
}

func (r *purchaseRepository) ListByEntryNo(ctx context.Context, entryNo int) ([]*models.PurchaseLine, error) {
	query := `SELECT id, entry_no, entry_date, trading_account, supplier_name, supplier_gstin,
		city, state, invoice_no, invoice_date, product_name, batch_no, exp_date, quantity, free,
		mrp, rate, gst_percent, amount
		FROM purchase_entries WHERE entry_no = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, entryNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.PurchaseLine
	for rows.Next() {
		line := &models.PurchaseLine{}
		if err := rows.Scan(&line.ID, &line.EntryNo, &line.EntryDate, &line.TradingAccount,
			&line.SupplierName, &line.SupplierGSTIN, &line.City, &line.State, &line.InvoiceNo,
			&line.InvoiceDate, &line.ProductName, &line.BatchNo, &line.ExpDate, &line.Quantity,
			&line.Free, &line.MRP, &line.Rate, &line.GSTPercent, &line.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *purchaseRepository) DeleteByEntryNo(ctx context.Context, entryNo int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM purchase_entries WHERE entry_no = $1`, entryNo)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *purchaseRepository) NextEntryNo(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(entry_no), 0) + 1 FROM purchase_entries`).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *purchaseRepository) ListEntryNos(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT entry_no FROM purchase_entries ORDER BY entry_no DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nos []int
	for rows.Next() {
		var no int
		if err := rows.Scan(&no); err != nil {
			return nil, err
		}
		nos = append(nos, no)
	}
	return nos, rows.Err()
}
