package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"medivision/internal/common"
	"medivision/internal/models"
	"medivision/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// Advisory lock classes keep purchase and sales serialization keyspaces apart.
const (
	lockClassPurchase = 1
	lockClassSales    = 2
)

// TxPool is the subset of *pgxpool.Pool the reconciliation service needs.
// pgxmock satisfies it too.
type TxPool interface {
	repositories.Database
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ReconciliationService owns every current_stock mutation. Each operation is
// one transaction: ledger rows and the derived stock counters change together
// or not at all.
type ReconciliationService interface {
	NextPurchaseEntryNo(ctx context.Context) (int, error)
	CreatePurchase(ctx context.Context, entry *models.PurchaseEntry) error
	GetPurchase(ctx context.Context, entryNo int) (*models.PurchaseEntry, error)
	UpdatePurchase(ctx context.Context, entryNo int, entry *models.PurchaseEntry) error
	DeletePurchase(ctx context.Context, entryNo int) error
	ListPurchaseEntryNos(ctx context.Context) ([]int, error)

	NextSalesInvoiceNo(ctx context.Context) (string, error)
	CreateSales(ctx context.Context, inv *models.SalesInvoiceFull) error
	GetSales(ctx context.Context, invoiceNo string) (*models.SalesInvoiceFull, error)
	UpdateSales(ctx context.Context, invoiceNo string, inv *models.SalesInvoiceFull) error
	DeleteSales(ctx context.Context, invoiceNo string) error
	ListSales(ctx context.Context, limit int) ([]*models.SalesInvoice, error)
}

type reconciliationService struct {
	pool         TxPool
	purchaseRepo repositories.PurchaseRepository
	salesRepo    repositories.SalesRepository
}

func NewReconciliationService(pool TxPool) ReconciliationService {
	return &reconciliationService{
		pool:         pool,
		purchaseRepo: repositories.NewPurchaseRepository(pool),
		salesRepo:    repositories.NewSalesRepository(pool),
	}
}

// inTx runs fn inside one transaction, holding an advisory xact lock on
// (class, key) so concurrent operations on the same ledger group serialize.
func (s *reconciliationService) inTx(ctx context.Context, class, key int, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, class, key); err != nil {
		return fmt.Errorf("acquire ledger lock: %w", err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// adjustStock shifts one product's counter. A missing product skips the
// counter but keeps the ledger write; that mismatch is warned, not failed.
func adjustStock(ctx context.Context, products repositories.ProductRepository, name string, delta int) error {
	found, err := products.AdjustStockByName(ctx, name, delta)
	if err != nil {
		return fmt.Errorf("adjust stock for %q: %w", name, err)
	}
	if !found {
		log.Warn().Str("product", name).Int("delta", delta).
			Msg("stock adjustment skipped: no matching product")
	}
	return nil
}

func (s *reconciliationService) NextPurchaseEntryNo(ctx context.Context) (int, error) {
	return s.purchaseRepo.NextEntryNo(ctx)
}

func validatePurchase(entry *models.PurchaseEntry) error {
	if entry.EntryNo <= 0 {
		return fmt.Errorf("%w: entry_no must be positive", common.ErrValidation)
	}
	if len(entry.Items) == 0 {
		return fmt.Errorf("%w: purchase entry needs at least one line", common.ErrValidation)
	}
	for _, item := range entry.Items {
		if item.ProductName == "" {
			return fmt.Errorf("%w: line is missing product_name", common.ErrValidation)
		}
		if item.Quantity < 0 || item.Free < 0 {
			return fmt.Errorf("%w: quantity and free cannot be negative", common.ErrValidation)
		}
	}
	return nil
}

func purchaseLines(entry *models.PurchaseEntry) []*models.PurchaseLine {
	lines := make([]*models.PurchaseLine, 0, len(entry.Items))
	for _, item := range entry.Items {
		lines = append(lines, &models.PurchaseLine{
			EntryNo:        entry.EntryNo,
			EntryDate:      entry.EntryDate,
			TradingAccount: entry.TradingAccount,
			SupplierName:   entry.SupplierName,
			SupplierGSTIN:  entry.SupplierGSTIN,
			City:           entry.City,
			State:          entry.State,
			InvoiceNo:      entry.InvoiceNo,
			InvoiceDate:    entry.InvoiceDate,
			ProductName:    item.ProductName,
			BatchNo:        item.BatchNo,
			ExpDate:        item.ExpDate,
			Quantity:       item.Quantity,
			Free:           item.Free,
			MRP:            item.MRP,
			Rate:           item.Rate,
			GSTPercent:     item.GSTPercent,
			Amount:         item.Amount,
		})
	}
	return lines
}

func (s *reconciliationService) CreatePurchase(ctx context.Context, entry *models.PurchaseEntry) error {
	if err := validatePurchase(entry); err != nil {
		return err
	}
	return s.inTx(ctx, lockClassPurchase, entry.EntryNo, func(tx pgx.Tx) error {
		purchases := repositories.NewPurchaseRepository(tx)
		products := repositories.NewProductRepository(tx)

		existing, err := purchases.ListByEntryNo(ctx, entry.EntryNo)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: purchase entry %d", common.ErrConflict, entry.EntryNo)
		}
		for _, line := range purchaseLines(entry) {
			if err := purchases.InsertLine(ctx, line); err != nil {
				return err
			}
			if err := adjustStock(ctx, products, line.ProductName, line.Quantity+line.Free); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *reconciliationService) GetPurchase(ctx context.Context, entryNo int) (*models.PurchaseEntry, error) {
	lines, err := s.purchaseRepo.ListByEntryNo(ctx, entryNo)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: purchase entry %d", common.ErrNotFound, entryNo)
	}

	head := lines[0]
	entry := &models.PurchaseEntry{
		PurchaseHeader: models.PurchaseHeader{
			EntryNo:        head.EntryNo,
			EntryDate:      head.EntryDate,
			TradingAccount: head.TradingAccount,
			SupplierName:   head.SupplierName,
			SupplierGSTIN:  head.SupplierGSTIN,
			City:           head.City,
			State:          head.State,
			InvoiceNo:      head.InvoiceNo,
			InvoiceDate:    head.InvoiceDate,
		},
	}
	for _, line := range lines {
		entry.Items = append(entry.Items, models.PurchaseItem{
			ProductName: line.ProductName,
			BatchNo:     line.BatchNo,
			ExpDate:     line.ExpDate,
			Quantity:    line.Quantity,
			Free:        line.Free,
			MRP:         line.MRP,
			Rate:        line.Rate,
			GSTPercent:  line.GSTPercent,
			Amount:      line.Amount,
		})
	}
	return entry, nil
}

// UpdatePurchase replaces the whole entry: the old lines are reversed out of
// stock and deleted, then the new lines are written and applied, all in one
// transaction.
func (s *reconciliationService) UpdatePurchase(ctx context.Context, entryNo int, entry *models.PurchaseEntry) error {
	entry.EntryNo = entryNo
	if err := validatePurchase(entry); err != nil {
		return err
	}
	return s.inTx(ctx, lockClassPurchase, entryNo, func(tx pgx.Tx) error {
		purchases := repositories.NewPurchaseRepository(tx)
		products := repositories.NewProductRepository(tx)

		old, err := purchases.ListByEntryNo(ctx, entryNo)
		if err != nil {
			return err
		}
		if len(old) == 0 {
			return fmt.Errorf("%w: purchase entry %d", common.ErrNotFound, entryNo)
		}
		for _, line := range old {
			if err := adjustStock(ctx, products, line.ProductName, -(line.Quantity + line.Free)); err != nil {
				return err
			}
		}
		if _, err := purchases.DeleteByEntryNo(ctx, entryNo); err != nil {
			return err
		}
		for _, line := range purchaseLines(entry) {
			if err := purchases.InsertLine(ctx, line); err != nil {
				return err
			}
			if err := adjustStock(ctx, products, line.ProductName, line.Quantity+line.Free); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *reconciliationService) DeletePurchase(ctx context.Context, entryNo int) error {
	return s.inTx(ctx, lockClassPurchase, entryNo, func(tx pgx.Tx) error {
		purchases := repositories.NewPurchaseRepository(tx)
		products := repositories.NewProductRepository(tx)

		old, err := purchases.ListByEntryNo(ctx, entryNo)
		if err != nil {
			return err
		}
		if len(old) == 0 {
			return fmt.Errorf("%w: purchase entry %d", common.ErrNotFound, entryNo)
		}
		for _, line := range old {
			if err := adjustStock(ctx, products, line.ProductName, -(line.Quantity + line.Free)); err != nil {
				return err
			}
		}
		_, err = purchases.DeleteByEntryNo(ctx, entryNo)
		return err
	})
}

func (s *reconciliationService) ListPurchaseEntryNos(ctx context.Context) ([]int, error) {
	return s.purchaseRepo.ListEntryNos(ctx)
}

func (s *reconciliationService) NextSalesInvoiceNo(ctx context.Context) (string, error) {
	next, err := s.salesRepo.NextInvoiceNo(ctx)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(next), nil
}

// salesInvoiceKey parses the numeric invoice number. Non-numeric invoice
// numbers are rejected up front; they would poison the MAX(CAST(...)) used
// for number allocation.
func salesInvoiceKey(invoiceNo string) (int, error) {
	key, err := strconv.Atoi(invoiceNo)
	if err != nil || key <= 0 {
		return 0, fmt.Errorf("%w: invoice_no must be a positive number, got %q", common.ErrValidation, invoiceNo)
	}
	return key, nil
}

func validateSales(inv *models.SalesInvoiceFull) error {
	if len(inv.Items) == 0 {
		return fmt.Errorf("%w: sales invoice needs at least one item", common.ErrValidation)
	}
	for _, item := range inv.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: item is missing name", common.ErrValidation)
		}
		if item.Qty < 0 || item.Free < 0 {
			return fmt.Errorf("%w: qty and free cannot be negative", common.ErrValidation)
		}
	}
	return nil
}

func (s *reconciliationService) CreateSales(ctx context.Context, inv *models.SalesInvoiceFull) error {
	key, err := salesInvoiceKey(inv.InvoiceNo)
	if err != nil {
		return err
	}
	if err := validateSales(inv); err != nil {
		return err
	}
	return s.inTx(ctx, lockClassSales, key, func(tx pgx.Tx) error {
		sales := repositories.NewSalesRepository(tx)
		products := repositories.NewProductRepository(tx)
		return s.insertSales(ctx, sales, products, inv)
	})
}

func (s *reconciliationService) insertSales(ctx context.Context, sales repositories.SalesRepository,
	products repositories.ProductRepository, inv *models.SalesInvoiceFull) error {

	if _, err := sales.GetHeader(ctx, inv.InvoiceNo); err == nil {
		return fmt.Errorf("%w: sales invoice %s", common.ErrConflict, inv.InvoiceNo)
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	if err := sales.InsertHeader(ctx, &inv.SalesInvoice); err != nil {
		return err
	}
	for i := range inv.Items {
		inv.Items[i].InvoiceNo = inv.InvoiceNo
		if err := sales.InsertItem(ctx, &inv.Items[i]); err != nil {
			return err
		}
		if err := adjustStock(ctx, products, inv.Items[i].Name, -(inv.Items[i].Qty + inv.Items[i].Free)); err != nil {
			return err
		}
	}
	return nil
}

func (s *reconciliationService) GetSales(ctx context.Context, invoiceNo string) (*models.SalesInvoiceFull, error) {
	header, err := s.salesRepo.GetHeader(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	items, err := s.salesRepo.ListItems(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	full := &models.SalesInvoiceFull{SalesInvoice: *header}
	for _, item := range items {
		full.Items = append(full.Items, *item)
	}
	return full, nil
}

// UpdateSales is delete-then-recreate under one lock and one transaction.
func (s *reconciliationService) UpdateSales(ctx context.Context, invoiceNo string, inv *models.SalesInvoiceFull) error {
	key, err := salesInvoiceKey(invoiceNo)
	if err != nil {
		return err
	}
	inv.InvoiceNo = invoiceNo
	if err := validateSales(inv); err != nil {
		return err
	}
	return s.inTx(ctx, lockClassSales, key, func(tx pgx.Tx) error {
		sales := repositories.NewSalesRepository(tx)
		products := repositories.NewProductRepository(tx)

		if err := s.removeSales(ctx, sales, products, invoiceNo); err != nil {
			return err
		}
		if err := sales.InsertHeader(ctx, &inv.SalesInvoice); err != nil {
			return err
		}
		for i := range inv.Items {
			inv.Items[i].InvoiceNo = invoiceNo
			if err := sales.InsertItem(ctx, &inv.Items[i]); err != nil {
				return err
			}
			if err := adjustStock(ctx, products, inv.Items[i].Name, -(inv.Items[i].Qty + inv.Items[i].Free)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *reconciliationService) DeleteSales(ctx context.Context, invoiceNo string) error {
	key, err := salesInvoiceKey(invoiceNo)
	if err != nil {
		return err
	}
	return s.inTx(ctx, lockClassSales, key, func(tx pgx.Tx) error {
		sales := repositories.NewSalesRepository(tx)
		products := repositories.NewProductRepository(tx)
		return s.removeSales(ctx, sales, products, invoiceNo)
	})
}

// removeSales restores stock for every item, then deletes items and header.
func (s *reconciliationService) removeSales(ctx context.Context, sales repositories.SalesRepository,
	products repositories.ProductRepository, invoiceNo string) error {

	items, err := sales.ListItems(ctx, invoiceNo)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := adjustStock(ctx, products, item.Name, item.Qty+item.Free); err != nil {
			return err
		}
	}
	deleted, err := sales.DeleteByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: sales invoice %s", common.ErrNotFound, invoiceNo)
	}
	return nil
}

func (s *reconciliationService) ListSales(ctx context.Context, limit int) ([]*models.SalesInvoice, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.salesRepo.ListHeaders(ctx, limit)
}
