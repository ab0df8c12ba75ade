package sqlite

import (
	"context"

	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// ListFeeTiers returns every fee tier in evaluation order.
func (s *Store) ListFeeTiers(ctx context.Context) ([]storage.FeeTierRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, min_price, max_price, rate_bp, position
		FROM fee_tiers
		ORDER BY position, min_price, id`)
	if err != nil {
		return nil, actionFailed("list fee tiers", err)
	}
	defer rows.Close()

	var records []storage.FeeTierRecord
	for rows.Next() {
		var record storage.FeeTierRecord
		var maxPrice *int64
		if err := rows.Scan(&record.ID, &record.MinPrice, &maxPrice,
			&record.RateBP, &record.Position); err != nil {
			return nil, actionFailed("scan fee tier", err)
		}
		record.MaxPrice = maxPrice
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, actionFailed("iterate fee tiers", err)
	}
	return records, nil
}

// SaveFeeTier inserts or replaces one fee tier.
func (s *Store) SaveFeeTier(ctx context.Context, record storage.FeeTierRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO fee_tiers (id, min_price, max_price, rate_bp, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			min_price = excluded.min_price,
			max_price = excluded.max_price,
			rate_bp = excluded.rate_bp,
			position = excluded.position`,
		record.ID, record.MinPrice, record.MaxPrice, record.RateBP,
		record.Position,
	)
	if err != nil {
		return actionFailed("save fee tier", err)
	}
	return nil
}
