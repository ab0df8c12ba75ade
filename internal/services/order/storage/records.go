// Package storage defines the persistence contracts of the order service:
// flat record types and the Store interface the service layer depends on.
package storage

// ProductRecord is a sellable catalog item with live inventory.
type ProductRecord struct {
	ID               string
	SellerID         string
	Name             string
	Thumbnail        string
	ShortDescription string
	Unit             string
	UnitPrice        int64
	Quantity         int32
	Verified         bool
}

// DestinationRecord is a customer shipping address.
type DestinationRecord struct {
	ID            string
	CustomerID    string
	RecipientName string
	Phone         string
	AddressLine1  string
	AddressLine2  string
}

// AccountRecord is a wallet-holding marketplace account.
type AccountRecord struct {
	ID      string
	Name    string
	Balance int64
}

// WalletTransactionRecord is one signed balance mutation. Every balance
// change pairs with exactly one of these rows.
type WalletTransactionRecord struct {
	ID        string
	AccountID string
	Amount    int64
	Note      string
	CreatedAt int64
}

// OrderRecord is the order header row.
type OrderRecord struct {
	ID            string
	CustomerID    string
	DestinationID string
	VoucherCode   string
	Subtotal      int64
	Tax           int64
	Discount      int64
	Shipping      int64
	GrandTotal    int64
	CreatedAt     int64
}

// ComboRecord is one seller's slice of an order.
type ComboRecord struct {
	ID             string
	OrderID        string
	SellerID       string
	Status         string
	GrandPrice     int64
	DeliveryType   string
	TrackingCode   string
	EvidenceImages []string
	CancelReason   string
	CancelledAt    int64
	CreatedAt      int64
	UpdatedAt      int64
}

// ItemRecord is one purchased product line. Name, thumbnail, short
// description, unit, and unit price are snapshots taken at intake; later
// product edits do not touch them.
type ItemRecord struct {
	ID               string
	OrderID          string
	ComboID          string
	ProductID        string
	SellerID         string
	Name             string
	Thumbnail        string
	ShortDescription string
	Unit             string
	UnitPrice        int64
	Quantity         int32
}

// HistoryRecord is one append-only combo status transition.
type HistoryRecord struct {
	ID         string
	ComboID    string
	FromStatus string
	ToStatus   string
	Notes      string
	ActorID    string
	ActorRole  string
	CreatedAt  int64
}

// FeeTierRecord is a commission bracket. MaxPrice nil means open-ended.
type FeeTierRecord struct {
	ID       string
	MinPrice int64
	MaxPrice *int64
	RateBP   int32
	Position int32
}

// SellerRevenueRecord is the realized settlement of one completed combo.
// ComboID is the primary key, which makes realization idempotent.
type SellerRevenueRecord struct {
	ComboID       string
	SellerID      string
	TotalAmount   int64
	FeeRateBP     int32
	FeeAmount     int64
	SellerRevenue int64
	CreatedAt     int64
}

// NotificationRecord is one rendered inbox entry.
type NotificationRecord struct {
	ID           string
	AccountID    string
	ComboID      string
	StatusCode   string
	Title        string
	Body         string
	RefundAmount int64
	CreatedAt    int64
}
