package jobs

import (
	"context"
	"time"

	"medivision/internal/repositories"

	"github.com/rs/zerolog/log"
)

const lowStockThreshold = 10

// StockAlerts runs periodic checks over the derived stock counters and the
// purchase ledger's expiry dates.
type StockAlerts struct {
	db          repositories.Database
	productRepo repositories.ProductRepository
}

func NewStockAlerts(db repositories.Database) *StockAlerts {
	return &StockAlerts{
		db:          db,
		productRepo: repositories.NewProductRepository(db),
	}
}

// CheckLowStock flags products under the threshold. Oversold products, where
// the counter went negative, get their own signal.
func (a *StockAlerts) CheckLowStock(ctx context.Context) error {
	products, err := a.productRepo.LowStock(ctx, lowStockThreshold)
	if err != nil {
		log.Error().Err(err).Msg("low stock check failed")
		return err
	}

	oversold := 0
	for _, p := range products {
		if p.CurrentStock < 0 {
			oversold++
			log.Warn().Str("product", p.Name).Int("current_stock", p.CurrentStock).
				Msg("product oversold: stock below zero")
		}
	}
	if len(products) > 0 {
		log.Info().Int("low_stock", len(products)).Int("oversold", oversold).
			Msg("low stock check completed")
	}
	return nil
}

// CheckNearExpiry lists ledger batches expiring within three months.
func (a *StockAlerts) CheckNearExpiry(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 3, 0).Format("2006-01-02")
	rows, err := a.db.Query(ctx,
		`SELECT DISTINCT product_name, batch_no, exp_date FROM purchase_entries
		 WHERE exp_date IS NOT NULL AND exp_date <> '' AND exp_date <= $1`, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("near expiry check failed")
		return err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var product, batch, exp string
		if err := rows.Scan(&product, &batch, &exp); err != nil {
			return err
		}
		count++
		log.Warn().Str("product", product).Str("batch", batch).Str("exp_date", exp).
			Msg("batch nearing expiry")
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int("batches", count).Msg("near expiry check completed")
	}
	return nil
}
