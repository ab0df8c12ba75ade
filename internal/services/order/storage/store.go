package storage

import "context"

// InventoryChange adjusts a product's quantity by a positive amount, either
// reserving stock at intake or restoring it during compensation.
type InventoryChange struct {
	ProductID string
	Quantity  int32
}

// CreateOrderParams is the atomic write set of order intake: the order
// header, its combos and items, the opening history row per combo, and the
// stock reservations. All rows commit or none do.
type CreateOrderParams struct {
	Order   OrderRecord
	Combos  []ComboRecord
	Items   []ItemRecord
	History []HistoryRecord
	Reserve []InventoryChange
}

// WalletCredit credits an account balance and records the paired
// transaction row.
type WalletCredit struct {
	TransactionID string
	AccountID     string
	Amount        int64
	Note          string
	CreatedAt     int64
}

// Compensation is the cancellation side effect set: refund the customer's
// wallet and restore the reserved inventory.
type Compensation struct {
	Refund  WalletCredit
	Restore []InventoryChange
}

// Settlement is the completion side effect set: record realized revenue and
// credit the seller's wallet with the net amount.
type Settlement struct {
	Revenue SellerRevenueRecord
	Payout  WalletCredit
}

// ApplyTransitionParams is the atomic write set of one status transition.
// The status update is guarded on FromStatus; losing a concurrent race
// surfaces as a stale-transition validation error and nothing commits.
type ApplyTransitionParams struct {
	ComboID    string
	FromStatus string
	ToStatus   string
	UpdatedAt  int64

	// DELIVERING metadata.
	DeliveryType string
	TrackingCode string
	// DELIVERED metadata.
	EvidenceImages []string
	// CANCELLED metadata.
	CancelReason string
	CancelledAt  int64

	History HistoryRecord

	Compensation *Compensation
	Settlement   *Settlement
}

// CancelOrderParams cancels every combo of an order in one transaction.
type CancelOrderParams struct {
	OrderID     string
	Transitions []ApplyTransitionParams
}

// Store is the persistence boundary of the order service.
type Store interface {
	// Catalog and accounts.
	GetProduct(ctx context.Context, id string) (ProductRecord, error)
	PutProduct(ctx context.Context, record ProductRecord) error
	GetDestination(ctx context.Context, id string) (DestinationRecord, error)
	PutDestination(ctx context.Context, record DestinationRecord) error
	GetAccount(ctx context.Context, id string) (AccountRecord, error)
	PutAccount(ctx context.Context, record AccountRecord) error
	ListWalletTransactions(ctx context.Context, accountID string) ([]WalletTransactionRecord, error)

	// Orders.
	CreateOrder(ctx context.Context, params CreateOrderParams) error
	GetOrder(ctx context.Context, id string) (OrderRecord, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]OrderRecord, error)
	ListCombosByOrder(ctx context.Context, orderID string) ([]ComboRecord, error)
	ListItemsByOrder(ctx context.Context, orderID string) ([]ItemRecord, error)
	GetCombo(ctx context.Context, id string) (ComboRecord, error)

	// Transitions.
	ApplyTransition(ctx context.Context, params ApplyTransitionParams) error
	CancelOrder(ctx context.Context, params CancelOrderParams) error
	ListHistory(ctx context.Context, comboID string) ([]HistoryRecord, error)
	GetSellerRevenue(ctx context.Context, comboID string) (SellerRevenueRecord, error)

	// Fee tiers.
	ListFeeTiers(ctx context.Context) ([]FeeTierRecord, error)
	SaveFeeTier(ctx context.Context, record FeeTierRecord) error

	// Notifications.
	AppendNotification(ctx context.Context, record NotificationRecord) error
	ListNotifications(ctx context.Context, accountID string) ([]NotificationRecord, error)

	Close() error
}
