package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// GetProduct returns one product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (storage.ProductRecord, error) {
	if err := s.ready(); err != nil {
		return storage.ProductRecord{}, err
	}
	var record storage.ProductRecord
	var verified int
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, seller_id, name, thumbnail, short_description, unit,
		       unit_price, quantity, verified
		FROM products WHERE id = ?`, id).Scan(
		&record.ID, &record.SellerID, &record.Name, &record.Thumbnail,
		&record.ShortDescription, &record.Unit, &record.UnitPrice,
		&record.Quantity, &verified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ProductRecord{}, notFound("product", id)
	}
	if err != nil {
		return storage.ProductRecord{}, actionFailed("get product", err)
	}
	record.Verified = verified != 0
	return record, nil
}

// PutProduct inserts or replaces one product.
func (s *Store) PutProduct(ctx context.Context, record storage.ProductRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	verified := 0
	if record.Verified {
		verified = 1
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO products (
			id, seller_id, name, thumbnail, short_description, unit,
			unit_price, quantity, verified
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			seller_id = excluded.seller_id,
			name = excluded.name,
			thumbnail = excluded.thumbnail,
			short_description = excluded.short_description,
			unit = excluded.unit,
			unit_price = excluded.unit_price,
			quantity = excluded.quantity,
			verified = excluded.verified`,
		record.ID, record.SellerID, record.Name, record.Thumbnail,
		record.ShortDescription, record.Unit, record.UnitPrice,
		record.Quantity, verified,
	)
	if err != nil {
		return actionFailed("put product", err)
	}
	return nil
}

// GetDestination returns one shipping destination by ID.
func (s *Store) GetDestination(ctx context.Context, id string) (storage.DestinationRecord, error) {
	if err := s.ready(); err != nil {
		return storage.DestinationRecord{}, err
	}
	var record storage.DestinationRecord
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, customer_id, recipient_name, phone, address_line1, address_line2
		FROM destinations WHERE id = ?`, id).Scan(
		&record.ID, &record.CustomerID, &record.RecipientName,
		&record.Phone, &record.AddressLine1, &record.AddressLine2,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.DestinationRecord{}, notFound("destination", id)
	}
	if err != nil {
		return storage.DestinationRecord{}, actionFailed("get destination", err)
	}
	return record, nil
}

// PutDestination inserts or replaces one shipping destination.
func (s *Store) PutDestination(ctx context.Context, record storage.DestinationRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO destinations (
			id, customer_id, recipient_name, phone, address_line1, address_line2
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			customer_id = excluded.customer_id,
			recipient_name = excluded.recipient_name,
			phone = excluded.phone,
			address_line1 = excluded.address_line1,
			address_line2 = excluded.address_line2`,
		record.ID, record.CustomerID, record.RecipientName,
		record.Phone, record.AddressLine1, record.AddressLine2,
	)
	if err != nil {
		return actionFailed("put destination", err)
	}
	return nil
}

// GetAccount returns one wallet account by ID.
func (s *Store) GetAccount(ctx context.Context, id string) (storage.AccountRecord, error) {
	if err := s.ready(); err != nil {
		return storage.AccountRecord{}, err
	}
	var record storage.AccountRecord
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, name, balance FROM accounts WHERE id = ?`, id).Scan(
		&record.ID, &record.Name, &record.Balance,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.AccountRecord{}, notFound("account", id)
	}
	if err != nil {
		return storage.AccountRecord{}, actionFailed("get account", err)
	}
	return record, nil
}

// PutAccount inserts or replaces one wallet account.
func (s *Store) PutAccount(ctx context.Context, record storage.AccountRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO accounts (id, name, balance) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			balance = excluded.balance`,
		record.ID, record.Name, record.Balance,
	)
	if err != nil {
		return actionFailed("put account", err)
	}
	return nil
}

// ListWalletTransactions returns an account's balance mutations, newest first.
func (s *Store) ListWalletTransactions(ctx context.Context, accountID string) ([]storage.WalletTransactionRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, account_id, amount, note, created_at
		FROM wallet_transactions
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC`, accountID)
	if err != nil {
		return nil, actionFailed("list wallet transactions", err)
	}
	defer rows.Close()

	var records []storage.WalletTransactionRecord
	for rows.Next() {
		var record storage.WalletTransactionRecord
		if err := rows.Scan(&record.ID, &record.AccountID, &record.Amount,
			&record.Note, &record.CreatedAt); err != nil {
			return nil, actionFailed("scan wallet transaction", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, actionFailed("iterate wallet transactions", err)
	}
	return records, nil
}
