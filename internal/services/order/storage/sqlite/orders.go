package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// CreateOrder writes the full intake set in one transaction: the order
// header, its combos and items, the opening history rows, and the stock
// reservations. A reservation that cannot be satisfied fails the whole
// transaction with an insufficient-stock validation error.
func (s *Store) CreateOrder(ctx context.Context, params storage.CreateOrderParams) error {
	if err := s.ready(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return actionFailed("begin create order", err)
	}
	defer func() { _ = tx.Rollback() }()

	order := params.Order
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, customer_id, destination_id, voucher_code,
			subtotal, tax, discount, shipping, grand_total, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.CustomerID, order.DestinationID, order.VoucherCode,
		order.Subtotal, order.Tax, order.Discount, order.Shipping,
		order.GrandTotal, order.CreatedAt,
	); err != nil {
		return actionFailed("insert order", err)
	}

	for _, combo := range params.Combos {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_combos (
				id, order_id, seller_id, status, grand_price,
				delivery_type, tracking_code, evidence_images,
				cancel_reason, cancelled_at, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			combo.ID, combo.OrderID, combo.SellerID, combo.Status,
			combo.GrandPrice, combo.DeliveryType, combo.TrackingCode,
			encodeStringList(combo.EvidenceImages), combo.CancelReason,
			combo.CancelledAt, combo.CreatedAt, combo.UpdatedAt,
		); err != nil {
			return actionFailed("insert order combo", err)
		}
	}

	for _, item := range params.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, combo_id, product_id, seller_id,
				name, thumbnail, short_description, unit,
				unit_price, quantity
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.OrderID, item.ComboID, item.ProductID,
			item.SellerID, item.Name, item.Thumbnail,
			item.ShortDescription, item.Unit, item.UnitPrice, item.Quantity,
		); err != nil {
			return actionFailed("insert order item", err)
		}
	}

	for _, history := range params.History {
		if err := insertHistoryTx(ctx, tx, history); err != nil {
			return err
		}
	}

	for _, change := range params.Reserve {
		result, err := tx.ExecContext(ctx, `
			UPDATE products SET quantity = quantity - ?
			WHERE id = ? AND quantity >= ?`,
			change.Quantity, change.ProductID, change.Quantity,
		)
		if err != nil {
			return actionFailed("reserve product stock", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return actionFailed("reserve product stock", err)
		}
		if affected == 0 {
			return apperrors.WithMetadata(apperrors.CodeOrderInsufficientStock,
				fmt.Sprintf("product %s has insufficient stock for quantity %d",
					change.ProductID, change.Quantity),
				map[string]string{"ProductID": change.ProductID})
		}
	}

	if err := tx.Commit(); err != nil {
		return actionFailed("commit create order", err)
	}
	return nil
}

// GetOrder returns one order header by ID.
func (s *Store) GetOrder(ctx context.Context, id string) (storage.OrderRecord, error) {
	if err := s.ready(); err != nil {
		return storage.OrderRecord{}, err
	}
	var record storage.OrderRecord
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, customer_id, destination_id, voucher_code,
		       subtotal, tax, discount, shipping, grand_total, created_at
		FROM orders WHERE id = ?`, id).Scan(
		&record.ID, &record.CustomerID, &record.DestinationID,
		&record.VoucherCode, &record.Subtotal, &record.Tax,
		&record.Discount, &record.Shipping, &record.GrandTotal,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.OrderRecord{}, notFound("order", id)
	}
	if err != nil {
		return storage.OrderRecord{}, actionFailed("get order", err)
	}
	return record, nil
}

// ListOrdersByCustomer returns a customer's order headers, newest first.
func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID string) ([]storage.OrderRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, customer_id, destination_id, voucher_code,
		       subtotal, tax, discount, shipping, grand_total, created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, actionFailed("list orders", err)
	}
	defer rows.Close()

	var records []storage.OrderRecord
	for rows.Next() {
		var record storage.OrderRecord
		if err := rows.Scan(&record.ID, &record.CustomerID,
			&record.DestinationID, &record.VoucherCode, &record.Subtotal,
			&record.Tax, &record.Discount, &record.Shipping,
			&record.GrandTotal, &record.CreatedAt); err != nil {
			return nil, actionFailed("scan order", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, actionFailed("iterate orders", err)
	}
	return records, nil
}

const comboColumns = `id, order_id, seller_id, status, grand_price,
		       delivery_type, tracking_code, evidence_images,
		       cancel_reason, cancelled_at, created_at, updated_at`

func scanCombo(scan func(dest ...any) error) (storage.ComboRecord, error) {
	var record storage.ComboRecord
	var evidence string
	err := scan(
		&record.ID, &record.OrderID, &record.SellerID, &record.Status,
		&record.GrandPrice, &record.DeliveryType, &record.TrackingCode,
		&evidence, &record.CancelReason, &record.CancelledAt,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return storage.ComboRecord{}, err
	}
	record.EvidenceImages = decodeStringList(evidence)
	return record, nil
}

// GetCombo returns one seller combo by ID.
func (s *Store) GetCombo(ctx context.Context, id string) (storage.ComboRecord, error) {
	if err := s.ready(); err != nil {
		return storage.ComboRecord{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+comboColumns+` FROM order_combos WHERE id = ?`, id)
	record, err := scanCombo(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ComboRecord{}, notFound("combo", id)
	}
	if err != nil {
		return storage.ComboRecord{}, actionFailed("get combo", err)
	}
	return record, nil
}

// ListCombosByOrder returns the combos of one order in creation order.
func (s *Store) ListCombosByOrder(ctx context.Context, orderID string) ([]storage.ComboRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+comboColumns+` FROM order_combos WHERE order_id = ? ORDER BY created_at, id`,
		orderID)
	if err != nil {
		return nil, actionFailed("list combos", err)
	}
	defer rows.Close()

	var records []storage.ComboRecord
	for rows.Next() {
		record, err := scanCombo(rows.Scan)
		if err != nil {
			return nil, actionFailed("scan combo", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, actionFailed("iterate combos", err)
	}
	return records, nil
}

// ListItemsByOrder returns the items of one order in insertion order.
func (s *Store) ListItemsByOrder(ctx context.Context, orderID string) ([]storage.ItemRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, order_id, combo_id, product_id, seller_id,
		       name, thumbnail, short_description, unit,
		       unit_price, quantity
		FROM order_items WHERE order_id = ? ORDER BY rowid`, orderID)
	if err != nil {
		return nil, actionFailed("list order items", err)
	}
	defer rows.Close()

	var records []storage.ItemRecord
	for rows.Next() {
		var record storage.ItemRecord
		if err := rows.Scan(&record.ID, &record.OrderID, &record.ComboID,
			&record.ProductID, &record.SellerID, &record.Name,
			&record.Thumbnail, &record.ShortDescription, &record.Unit,
			&record.UnitPrice, &record.Quantity); err != nil {
			return nil, actionFailed("scan order item", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, actionFailed("iterate order items", err)
	}
	return records, nil
}
