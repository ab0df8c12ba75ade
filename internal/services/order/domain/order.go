package domain

import (
	"fmt"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
)

// MaxOrderItems bounds distinct products per order.
const MaxOrderItems = 100

// Money values are int64 minor units (cents). Rates are basis points.
const (
	basisPointDenominator = 10_000

	// DefaultTaxRateBP is the flat order tax rate (10%).
	DefaultTaxRateBP = 1_000

	// DefaultShippingFee is the flat shipping fee in cents ($5.00).
	DefaultShippingFee = 500
)

// Order is a customer purchase spanning one or more seller combos.
type Order struct {
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
	Items         []OrderItem
	Combos        []Combo
}

// OrderItem is a purchased product line. Name, thumbnail, short
// description, unit, and unit price are snapshots of the product at intake
// time; later catalog edits never change what was bought.
type OrderItem struct {
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

// LineTotal is the price of the full quantity of this line.
func (it OrderItem) LineTotal() int64 {
	return it.UnitPrice * int64(it.Quantity)
}

// ItemRequest is a validated purchase request line.
type ItemRequest struct {
	ProductID string
	Quantity  int32
}

// ValidateItemRequests enforces the intake shape rules: at least one line,
// at most MaxOrderItems distinct products, positive quantities.
func ValidateItemRequests(items []ItemRequest) error {
	if len(items) == 0 {
		return apperrors.New(apperrors.CodeOrderItemsEmpty,
			"order must contain at least one item")
	}
	if len(items) > MaxOrderItems {
		return apperrors.WithMetadata(apperrors.CodeOrderTooManyItems,
			fmt.Sprintf("order has %d items, maximum is %d", len(items), MaxOrderItems),
			map[string]string{
				"Count": fmt.Sprintf("%d", len(items)),
				"Max":   fmt.Sprintf("%d", MaxOrderItems),
			})
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return apperrors.WithMetadata(apperrors.CodeOrderQuantityInvalid,
				fmt.Sprintf("quantity %d for product %s is not positive", item.Quantity, item.ProductID),
				map[string]string{"ProductID": item.ProductID})
		}
		if seen[item.ProductID] {
			return apperrors.WithMetadata(apperrors.CodeOrderQuantityInvalid,
				fmt.Sprintf("product %s appears more than once", item.ProductID),
				map[string]string{"ProductID": item.ProductID})
		}
		seen[item.ProductID] = true
	}
	return nil
}

// Totals is the order-level money breakdown.
type Totals struct {
	Subtotal   int64
	Tax        int64
	Discount   int64
	Shipping   int64
	GrandTotal int64
}

// ComputeTotals derives order totals from item lines: tax is a flat rate on
// the subtotal (half-up), discount comes from an applied voucher or zero,
// shipping is a flat fee. grand = subtotal + tax − discount + shipping.
func ComputeTotals(items []OrderItem, taxRateBP int32, discount, shipping int64) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	tax := ApplyRate(subtotal, taxRateBP)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Discount:   discount,
		Shipping:   shipping,
		GrandTotal: subtotal + tax - discount + shipping,
	}
}

// ApplyRate multiplies a non-negative amount by a basis-point rate with
// half-up rounding.
func ApplyRate(amount int64, rateBP int32) int64 {
	if amount <= 0 || rateBP <= 0 {
		return 0
	}
	return (amount*int64(rateBP) + basisPointDenominator/2) / basisPointDenominator
}
