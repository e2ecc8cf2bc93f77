package repositories

import (
	"context"
	"testing"

	"medivision/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PurchaseRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    PurchaseRepository
	context context.Context
}

func (suite *PurchaseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPurchaseRepository(mock)
	suite.context = context.Background()
}

func (suite *PurchaseRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPurchaseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseRepoTestSuite))
}

func (suite *PurchaseRepoTestSuite) TestInsertLine_Success() {
	line := &models.PurchaseLine{
		EntryNo:        7,
		EntryDate:      "2026-04-01",
		TradingAccount: "Main",
		SupplierName:   "Herbal Traders",
		InvoiceNo:      "HT-102",
		InvoiceDate:    "2026-03-30",
		ProductName:    "Ashwagandha",
		BatchNo:        "B42",
		Quantity:       10,
		Free:           2,
		MRP:            120,
		Rate:           90,
		GSTPercent:     12,
		Amount:         900,
	}

	suite.mock.ExpectExec(`INSERT INTO purchase_entries`).
		WithArgs(line.EntryNo, line.EntryDate, line.TradingAccount, line.SupplierName,
			line.SupplierGSTIN, line.City, line.State, line.InvoiceNo, line.InvoiceDate,
			line.ProductName, line.BatchNo, line.ExpDate, line.Quantity, line.Free,
			line.MRP, line.Rate, line.GSTPercent, line.Amount).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.InsertLine(suite.context, line)
	assert.NoError(suite.T(), err)
}

func (suite *PurchaseRepoTestSuite) TestNextEntryNo_Empty() {
	suite.mock.ExpectQuery(`SELECT COALESCE\(MAX\(entry_no\), 0\) \+ 1 FROM purchase_entries`).
		WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(1))

	next, err := suite.repo.NextEntryNo(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, next)
}

func (suite *PurchaseRepoTestSuite) TestNextEntryNo_MaxPlusOne() {
	suite.mock.ExpectQuery(`SELECT COALESCE\(MAX\(entry_no\), 0\) \+ 1 FROM purchase_entries`).
		WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(42))

	next, err := suite.repo.NextEntryNo(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 42, next)
}

func (suite *PurchaseRepoTestSuite) TestDeleteByEntryNo_ReturnsRowCount() {
	suite.mock.ExpectExec(`DELETE FROM purchase_entries WHERE entry_no = \$1`).
		WithArgs(7).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	deleted, err := suite.repo.DeleteByEntryNo(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), deleted)
}

func (suite *PurchaseRepoTestSuite) TestDeleteByEntryNo_NoRows() {
	suite.mock.ExpectExec(`DELETE FROM purchase_entries WHERE entry_no = \$1`).
		WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := suite.repo.DeleteByEntryNo(suite.context, 99)
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), deleted)
}

func (suite *PurchaseRepoTestSuite) TestListByEntryNo_OrderedLines() {
	rows := pgxmock.NewRows([]string{"id", "entry_no", "entry_date", "trading_account",
		"supplier_name", "supplier_gstin", "city", "state", "invoice_no", "invoice_date",
		"product_name", "batch_no", "exp_date", "quantity", "free", "mrp", "rate",
		"gst_percent", "amount"}).
		AddRow(int64(1), 7, "2026-04-01", "Main", "Herbal Traders", nil, nil, nil, "HT-102",
			"2026-03-30", "Ashwagandha", "B42", nil, 10, 2, 120.0, 90.0, 12.0, 900.0).
		AddRow(int64(2), 7, "2026-04-01", "Main", "Herbal Traders", nil, nil, nil, "HT-102",
			"2026-03-30", "Brahmi", "B43", nil, 5, 0, 80.0, 60.0, 12.0, 300.0)

	suite.mock.ExpectQuery(`FROM purchase_entries WHERE entry_no = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(rows)

	lines, err := suite.repo.ListByEntryNo(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), lines, 2)
	assert.Equal(suite.T(), "Ashwagandha", lines[0].ProductName)
	assert.Equal(suite.T(), 2, lines[0].Free)
	assert.Equal(suite.T(), "Brahmi", lines[1].ProductName)
}
