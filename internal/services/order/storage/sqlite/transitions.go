package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// ApplyTransition applies one status transition atomically: the guarded
// status update, the history row, and the CANCELLED compensation or
// COMPLETED settlement side effects when present.
func (s *Store) ApplyTransition(ctx context.Context, params storage.ApplyTransitionParams) error {
	if err := s.ready(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return actionFailed("begin transition", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := applyTransitionTx(ctx, tx, params); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return actionFailed("commit transition", err)
	}
	return nil
}

// CancelOrder cancels every combo of an order in one transaction. Any combo
// losing its guarded update fails the whole cancellation.
func (s *Store) CancelOrder(ctx context.Context, params storage.CancelOrderParams) error {
	if err := s.ready(); err != nil {
		return err
	}
	if len(params.Transitions) == 0 {
		return apperrors.New(apperrors.CodeActionFailed,
			"order "+params.OrderID+" has no combos to cancel")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return actionFailed("begin cancel order", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, transition := range params.Transitions {
		if err := applyTransitionTx(ctx, tx, transition); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return actionFailed("commit cancel order", err)
	}
	return nil
}

// applyTransitionTx executes one transition inside an open transaction.
// The status update is guarded on the expected current status; zero rows
// affected means a concurrent transition won the race.
func applyTransitionTx(ctx context.Context, tx *sql.Tx, params storage.ApplyTransitionParams) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE order_combos SET
			status = ?,
			updated_at = ?,
			delivery_type = CASE WHEN ? != '' THEN ? ELSE delivery_type END,
			tracking_code = CASE WHEN ? != '' THEN ? ELSE tracking_code END,
			evidence_images = CASE WHEN ? != '[]' THEN ? ELSE evidence_images END,
			cancel_reason = CASE WHEN ? != '' THEN ? ELSE cancel_reason END,
			cancelled_at = CASE WHEN ? != 0 THEN ? ELSE cancelled_at END
		WHERE id = ? AND status = ?`,
		params.ToStatus, params.UpdatedAt,
		params.DeliveryType, params.DeliveryType,
		params.TrackingCode, params.TrackingCode,
		encodeStringList(params.EvidenceImages), encodeStringList(params.EvidenceImages),
		params.CancelReason, params.CancelReason,
		params.CancelledAt, params.CancelledAt,
		params.ComboID, params.FromStatus,
	)
	if err != nil {
		return actionFailed("update combo status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return actionFailed("update combo status", err)
	}
	if affected == 0 {
		return staleTransition(ctx, tx, params)
	}

	if err := insertHistoryTx(ctx, tx, params.History); err != nil {
		return err
	}

	if params.Compensation != nil {
		if err := creditWalletTx(ctx, tx, params.Compensation.Refund); err != nil {
			return err
		}
		for _, change := range params.Compensation.Restore {
			if _, err := tx.ExecContext(ctx, `
				UPDATE products SET quantity = quantity + ? WHERE id = ?`,
				change.Quantity, change.ProductID,
			); err != nil {
				return actionFailed("restore product stock", err)
			}
		}
	}

	if params.Settlement != nil {
		revenue := params.Settlement.Revenue
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO seller_revenue (
				combo_id, seller_id, total_amount, fee_rate_bp,
				fee_amount, seller_revenue, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			revenue.ComboID, revenue.SellerID, revenue.TotalAmount,
			revenue.FeeRateBP, revenue.FeeAmount, revenue.SellerRevenue,
			revenue.CreatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return apperrors.WithMetadata(apperrors.CodeRevenueAlreadyRealized,
					"revenue already realized for combo "+revenue.ComboID,
					map[string]string{"ComboID": revenue.ComboID})
			}
			return actionFailed("insert seller revenue", err)
		}
		if err := creditWalletTx(ctx, tx, params.Settlement.Payout); err != nil {
			return err
		}
	}

	return nil
}

// staleTransition distinguishes a missing combo from a lost race and
// reports the latter through the invalid-transition validation path.
func staleTransition(ctx context.Context, tx *sql.Tx, params storage.ApplyTransitionParams) error {
	var current string
	err := tx.QueryRowContext(ctx,
		`SELECT status FROM order_combos WHERE id = ?`, params.ComboID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("combo", params.ComboID)
	}
	if err != nil {
		return actionFailed("read combo status", err)
	}
	return apperrors.WithMetadata(apperrors.CodeComboInvalidStatusTransition,
		fmt.Sprintf("combo %s moved from %s to %s concurrently; cannot apply %s",
			params.ComboID, params.FromStatus, current, params.ToStatus),
		map[string]string{
			"FromStatus": current,
			"ToStatus":   params.ToStatus,
			"ValidNext":  "",
		})
}

func insertHistoryTx(ctx context.Context, tx *sql.Tx, history storage.HistoryRecord) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_history (
			id, combo_id, from_status, to_status, notes,
			actor_id, actor_role, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		history.ID, history.ComboID, history.FromStatus, history.ToStatus,
		history.Notes, history.ActorID, history.ActorRole, history.CreatedAt,
	); err != nil {
		return actionFailed("insert history", err)
	}
	return nil
}

// creditWalletTx applies a signed balance mutation and its paired
// transaction row.
func creditWalletTx(ctx context.Context, tx *sql.Tx, credit storage.WalletCredit) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + ? WHERE id = ?`,
		credit.Amount, credit.AccountID,
	)
	if err != nil {
		return actionFailed("credit wallet", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return actionFailed("credit wallet", err)
	}
	if affected == 0 {
		return notFound("account", credit.AccountID)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (id, account_id, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		credit.TransactionID, credit.AccountID, credit.Amount,
		credit.Note, credit.CreatedAt,
	); err != nil {
		return actionFailed("insert wallet transaction", err)
	}
	return nil
}

// ListHistory returns a combo's transitions, oldest first.
func (s *Store) ListHistory(ctx context.Context, comboID string) ([]storage.HistoryRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, combo_id, from_status, to_status, notes,
		       actor_id, actor_role, created_at
		FROM order_history
		WHERE combo_id = ?
		ORDER BY created_at, rowid`, comboID)
	if err != nil {
		return nil, actionFailed("list history", err)
	}
	defer rows.Close()

	var records []storage.HistoryRecord
	for rows.Next() {
		var record storage.HistoryRecord
		if err := rows.Scan(&record.ID, &record.ComboID, &record.FromStatus,
			&record.ToStatus, &record.Notes, &record.ActorID,
			&record.ActorRole, &record.CreatedAt); err != nil {
			return nil, actionFailed("scan history", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, actionFailed("iterate history", err)
	}
	return records, nil
}

// GetSellerRevenue returns the realized settlement of one combo.
func (s *Store) GetSellerRevenue(ctx context.Context, comboID string) (storage.SellerRevenueRecord, error) {
	if err := s.ready(); err != nil {
		return storage.SellerRevenueRecord{}, err
	}
	var record storage.SellerRevenueRecord
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT combo_id, seller_id, total_amount, fee_rate_bp,
		       fee_amount, seller_revenue, created_at
		FROM seller_revenue WHERE combo_id = ?`, comboID).Scan(
		&record.ComboID, &record.SellerID, &record.TotalAmount,
		&record.FeeRateBP, &record.FeeAmount, &record.SellerRevenue,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.SellerRevenueRecord{}, notFound("seller revenue", comboID)
	}
	if err != nil {
		return storage.SellerRevenueRecord{}, actionFailed("get seller revenue", err)
	}
	return record, nil
}
