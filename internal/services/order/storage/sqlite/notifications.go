package sqlite

import (
	"context"

	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// AppendNotification writes one rendered inbox entry.
func (s *Store) AppendNotification(ctx context.Context, record storage.NotificationRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO notifications (
			id, account_id, combo_id, status_code, title, body,
			refund_amount, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.AccountID, record.ComboID, record.StatusCode,
		record.Title, record.Body, record.RefundAmount, record.CreatedAt,
	)
	if err != nil {
		return actionFailed("append notification", err)
	}
	return nil
}

// ListNotifications returns an account's inbox, newest first.
func (s *Store) ListNotifications(ctx context.Context, accountID string) ([]storage.NotificationRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, account_id, combo_id, status_code, title, body,
		       refund_amount, created_at
		FROM notifications
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC`, accountID)
	if err != nil {
		return nil, actionFailed("list notifications", err)
	}
	defer rows.Close()

	var records []storage.NotificationRecord
	for rows.Next() {
		var record storage.NotificationRecord
		if err := rows.Scan(&record.ID, &record.AccountID, &record.ComboID,
			&record.StatusCode, &record.Title, &record.Body,
			&record.RefundAmount, &record.CreatedAt); err != nil {
			return nil, actionFailed("scan notification", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, actionFailed("iterate notifications", err)
	}
	return records, nil
}
