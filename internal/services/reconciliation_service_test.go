package services

import (
	"context"
	"errors"
	"testing"

	"medivision/internal/common"
	"medivision/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ReconciliationTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	svc     ReconciliationService
	context context.Context
}

func (suite *ReconciliationTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.svc = NewReconciliationService(mock)
	suite.context = context.Background()
}

func (suite *ReconciliationTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestReconciliationTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationTestSuite))
}

func purchaseLineColumns() []string {
	return []string{"id", "entry_no", "entry_date", "trading_account", "supplier_name",
		"supplier_gstin", "city", "state", "invoice_no", "invoice_date", "product_name",
		"batch_no", "exp_date", "quantity", "free", "mrp", "rate", "gst_percent", "amount"}
}

func testPurchase(entryNo int) *models.PurchaseEntry {
	return &models.PurchaseEntry{
		PurchaseHeader: models.PurchaseHeader{
			EntryNo:        entryNo,
			EntryDate:      "2026-04-01",
			TradingAccount: "Main",
			SupplierName:   "Herbal Traders",
			InvoiceNo:      "HT-102",
			InvoiceDate:    "2026-03-30",
		},
		Items: []models.PurchaseItem{
			{ProductName: "Ashwagandha", BatchNo: "B42", Quantity: 10, Free: 2, MRP: 120, Rate: 90, GSTPercent: 12, Amount: 900},
		},
	}
}

func (suite *ReconciliationTestSuite) expectLock(class, key int) {
	suite.mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).
		WithArgs(class, key).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func (suite *ReconciliationTestSuite) TestCreatePurchase_AppliesQtyPlusFree() {
	entry := testPurchase(7)

	suite.mock.ExpectBegin()
	suite.expectLock(1, 7)
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()))
	suite.mock.ExpectExec(`INSERT INTO purchase_entries`).
		WithArgs(7, entry.EntryDate, entry.TradingAccount, entry.SupplierName, entry.SupplierGSTIN,
			entry.City, entry.State, entry.InvoiceNo, entry.InvoiceDate, "Ashwagandha", "B42",
			(*string)(nil), 10, 2, 120.0, 90.0, 12.0, 900.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// Stock rises by quantity plus free units
	suite.mock.ExpectExec(`UPDATE products SET current_stock = current_stock \+ \$1 WHERE name = \$2`).
		WithArgs(12, "Ashwagandha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.CreatePurchase(suite.context, entry)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconciliationTestSuite) TestCreatePurchase_MissingProductStillWritesLedger() {
	entry := testPurchase(8)
	entry.Items[0].ProductName = "Unknown Tonic"

	suite.mock.ExpectBegin()
	suite.expectLock(1, 8)
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(8).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()))
	suite.mock.ExpectExec(`INSERT INTO purchase_entries`).
		WithArgs(8, entry.EntryDate, entry.TradingAccount, entry.SupplierName, entry.SupplierGSTIN,
			entry.City, entry.State, entry.InvoiceNo, entry.InvoiceDate, "Unknown Tonic", "B42",
			(*string)(nil), 10, 2, 120.0, 90.0, 12.0, 900.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE products SET current_stock = current_stock \+ \$1 WHERE name = \$2`).
		WithArgs(12, "Unknown Tonic").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectCommit()

	err := suite.svc.CreatePurchase(suite.context, entry)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconciliationTestSuite) TestCreatePurchase_DuplicateEntryNo() {
	entry := testPurchase(7)

	suite.mock.ExpectBegin()
	suite.expectLock(1, 7)
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()).
			AddRow(int64(1), 7, "2026-04-01", "Main", "Herbal Traders", nil, nil, nil, "HT-102",
				"2026-03-30", "Ashwagandha", "B42", nil, 10, 2, 120.0, 90.0, 12.0, 900.0))
	suite.mock.ExpectRollback()

	err := suite.svc.CreatePurchase(suite.context, entry)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconciliationTestSuite) TestCreatePurchase_EmptyItemsRejected() {
	entry := testPurchase(7)
	entry.Items = nil

	err := suite.svc.CreatePurchase(suite.context, entry)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ReconciliationTestSuite) TestCreatePurchase_InsertFailureRollsBack() {
	entry := testPurchase(7)

	suite.mock.ExpectBegin()
	suite.expectLock(1, 7)
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()))
	suite.mock.ExpectExec(`INSERT INTO purchase_entries`).
		WithArgs(7, entry.EntryDate, entry.TradingAccount, entry.SupplierName, entry.SupplierGSTIN,
			entry.City, entry.State, entry.InvoiceNo, entry.InvoiceDate, "Ashwagandha", "B42",
			(*string)(nil), 10, 2, 120.0, 90.0, 12.0, 900.0).
		WillReturnError(errors.New("disk full"))
	suite.mock.ExpectRollback()

	err := suite.svc.CreatePurchase(suite.context, entry)
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconciliationTestSuite) TestDeletePurchase_ReversesStock() {
	suite.mock.ExpectBegin()
	suite.expectLock(1, 7)
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()).
			AddRow(int64(1), 7, "2026-04-01", "Main", "Herbal Traders", nil, nil, nil, "HT-102",
				"2026-03-30", "Ashwagandha", "B42", nil, 10, 2, 120.0, 90.0, 12.0, 900.0))
	suite.mock.ExpectExec(`UPDATE products SET current_stock = current_stock \+ \$1 WHERE name = \$2`).
		WithArgs(-12, "Ashwagandha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`DELETE FROM purchase_entries WHERE entry_no = \$1`).
		WithArgs(7).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.DeletePurchase(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconciliationTestSuite) TestDeletePurchase_NotFound() {
	suite.mock.ExpectBegin()
	suite.expectLock(1, 99)
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(99).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()))
	suite.mock.ExpectRollback()

	err := suite.svc.DeletePurchase(suite.context, 99)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ReconciliationTestSuite) TestUpdatePurchase_ReverseDeleteReapply() {
	entry := testPurchase(7)
	entry.Items = []models.PurchaseItem{
		{ProductName: "Ashwagandha", BatchNo: "B44", Quantity: 4, Free: 1, MRP: 120, Rate: 95, GSTPercent: 12, Amount: 380},
	}

	suite.mock.ExpectBegin()
	suite.expectLock(1, 7)
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()).
			AddRow(int64(1), 7, "2026-04-01", "Main", "Herbal Traders", nil, nil, nil, "HT-102",
				"2026-03-30", "Ashwagandha", "B42", nil, 10, 2, 120.0, 90.0, 12.0, 900.0))
	suite.mock.ExpectExec(`UPDATE products SET current_stock = current_stock \+ \$1 WHERE name = \$2`).
		WithArgs(-12, "Ashwagandha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`DELETE FROM purchase_entries WHERE entry_no = \$1`).
		WithArgs(7).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`INSERT INTO purchase_entries`).
		WithArgs(7, entry.EntryDate, entry.TradingAccount, entry.SupplierName, entry.SupplierGSTIN,
			entry.City, entry.State, entry.InvoiceNo, entry.InvoiceDate, "Ashwagandha", "B44",
			(*string)(nil), 4, 1, 120.0, 95.0, 12.0, 380.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE products SET current_stock = current_stock \+ \$1 WHERE name = \$2`).
		WithArgs(5, "Ashwagandha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.UpdatePurchase(suite.context, 7, entry)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func testSales(invoiceNo string) *models.SalesInvoiceFull {
	return &models.SalesInvoiceFull{
		SalesInvoice: models.SalesInvoice{
			InvoiceNo:      invoiceNo,
			InvoiceDate:    "2026-04-02",
			TradingAccount: "Main",
			Customer:       "City Pharmacy",
			Subtotal:       270,
			GrandTotal:     302,
		},
		Items: []models.SalesInvoiceItem{
			{PCode: "P001", Name: "Ashwagandha", Batch: "B42", Qty: 3, Free: 1, Rate: 90, GST: 12, LineTotal: 270},
		},
	}
}

func (suite *ReconciliationTestSuite) TestCreateSales_DeductsQtyPlusFree() {
	inv := testSales("12")

	suite.mock.ExpectBegin()
	suite.expectLock(2, 12)
	suite.mock.ExpectQuery(`FROM sales_invoices WHERE invoice_no = \$1`).
		WithArgs("12").
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectExec(`INSERT INTO sales_invoices`).
		WithArgs(inv.InvoiceNo, inv.InvoiceDate, inv.TradingAccount, inv.Customer, inv.Area,
			inv.City, inv.State, inv.PaymentMode, inv.DueDays, inv.Notes, inv.Subtotal,
			inv.TotalDiscount, inv.TotalGST, inv.GrandTotal).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO sales_invoice_items`).
		WithArgs("12", "P001", "Ashwagandha", "B42", (*string)(nil), 3, 1, 90.0, 12.0, 0.0, 270.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE products SET current_stock = current_stock \+ \$1 WHERE name = \$2`).
		WithArgs(-4, "Ashwagandha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.CreateSales(suite.context, inv)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconciliationTestSuite) TestCreateSales_NonNumericInvoiceNoRejected() {
	inv := testSales("INV-12")

	err := suite.svc.CreateSales(suite.context, inv)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ReconciliationTestSuite) TestDeleteSales_RestoresStock() {
	suite.mock.ExpectBegin()
	suite.expectLock(2, 12)
	suite.mock.ExpectQuery(`FROM sales_invoice_items WHERE invoice_no = \$1 ORDER BY id`).
		WithArgs("12").
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_no", "pcode", "name", "batch",
			"exp", "qty", "free", "rate", "gst", "discount", "line_total"}).
			AddRow(int64(1), "12", "P001", "Ashwagandha", "B42", nil, 3, 1, 90.0, 12.0, 0.0, 270.0))
	suite.mock.ExpectExec(`UPDATE products SET current_stock = current_stock \+ \$1 WHERE name = \$2`).
		WithArgs(4, "Ashwagandha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`DELETE FROM sales_invoice_items WHERE invoice_no = \$1`).
		WithArgs("12").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`DELETE FROM sales_invoices WHERE invoice_no = \$1`).
		WithArgs("12").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.DeleteSales(suite.context, "12")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconciliationTestSuite) TestDeleteSales_Idempotence() {
	// Second delete of the same invoice finds nothing and reports not found
	suite.mock.ExpectBegin()
	suite.expectLock(2, 12)
	suite.mock.ExpectQuery(`FROM sales_invoice_items WHERE invoice_no = \$1 ORDER BY id`).
		WithArgs("12").
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_no", "pcode", "name", "batch",
			"exp", "qty", "free", "rate", "gst", "discount", "line_total"}))
	suite.mock.ExpectExec(`DELETE FROM sales_invoice_items WHERE invoice_no = \$1`).
		WithArgs("12").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(`DELETE FROM sales_invoices WHERE invoice_no = \$1`).
		WithArgs("12").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectRollback()

	err := suite.svc.DeleteSales(suite.context, "12")
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ReconciliationTestSuite) TestNextSalesInvoiceNo_StringResult() {
	suite.mock.ExpectQuery(`SELECT COALESCE\(MAX\(CAST\(invoice_no AS INTEGER\)\), 0\) \+ 1 FROM sales_invoices`).
		WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(13))

	next, err := suite.svc.NextSalesInvoiceNo(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "13", next)
}

func (suite *ReconciliationTestSuite) TestGetPurchase_GroupsLines() {
	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(purchaseLineColumns()).
			AddRow(int64(1), 7, "2026-04-01", "Main", "Herbal Traders", nil, nil, nil, "HT-102",
				"2026-03-30", "Ashwagandha", "B42", nil, 10, 2, 120.0, 90.0, 12.0, 900.0).
			AddRow(int64(2), 7, "2026-04-01", "Main", "Herbal Traders", nil, nil, nil, "HT-102",
				"2026-03-30", "Brahmi", "B43", nil, 5, 0, 80.0, 60.0, 12.0, 300.0))

	entry, err := suite.svc.GetPurchase(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, entry.EntryNo)
	assert.Equal(suite.T(), "Herbal Traders", entry.SupplierName)
	assert.Len(suite.T(), entry.Items, 2)
}
