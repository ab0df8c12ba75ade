package httpapi

import (
	"github.com/wharfside/marketplace/internal/services/order/domain"
)

// Wire payloads. Money fields are minor units (cents); timestamps are UTC
// Unix millis.

type itemPayload struct {
	ID               string `json:"id"`
	ComboID          string `json:"comboId"`
	ProductID        string `json:"productId"`
	SellerID         string `json:"sellerId"`
	Name             string `json:"name"`
	Thumbnail        string `json:"thumbnail,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Unit             string `json:"unit,omitempty"`
	UnitPrice        int64  `json:"unitPrice"`
	Quantity         int32  `json:"quantity"`
}

type comboPayload struct {
	ID             string        `json:"id"`
	OrderID        string        `json:"orderId"`
	SellerID       string        `json:"sellerId"`
	Status         string        `json:"status"`
	GrandPrice     int64         `json:"grandPrice"`
	DeliveryType   string        `json:"deliveryType,omitempty"`
	TrackingCode   string        `json:"trackingCode,omitempty"`
	EvidenceImages []string      `json:"evidenceImages,omitempty"`
	CancelReason   string        `json:"cancelReason,omitempty"`
	CancelledAt    int64         `json:"cancelledAt,omitempty"`
	CreatedAt      int64         `json:"createdAt"`
	UpdatedAt      int64         `json:"updatedAt"`
	Items          []itemPayload `json:"items,omitempty"`
}

type orderPayload struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customerId"`
	DestinationID string         `json:"destinationId"`
	VoucherCode   string         `json:"voucherCode,omitempty"`
	Subtotal      int64          `json:"subtotal"`
	Tax           int64          `json:"tax"`
	Discount      int64          `json:"discount"`
	Shipping      int64          `json:"shipping"`
	GrandTotal    int64          `json:"grandTotal"`
	CreatedAt     int64          `json:"createdAt"`
	Combos        []comboPayload `json:"combos"`
}

type historyPayload struct {
	ID         string `json:"id"`
	ComboID    string `json:"comboId"`
	FromStatus string `json:"fromStatus,omitempty"`
	ToStatus   string `json:"toStatus"`
	Notes      string `json:"notes,omitempty"`
	ActorID    string `json:"actorId,omitempty"`
	ActorRole  string `json:"actorRole,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

func itemToPayload(item domain.OrderItem) itemPayload {
	return itemPayload{
		ID:               item.ID,
		ComboID:          item.ComboID,
		ProductID:        item.ProductID,
		SellerID:         item.SellerID,
		Name:             item.Name,
		Thumbnail:        item.Thumbnail,
		ShortDescription: item.ShortDescription,
		Unit:             item.Unit,
		UnitPrice:        item.UnitPrice,
		Quantity:         item.Quantity,
	}
}

func comboToPayload(combo domain.Combo) comboPayload {
	payload := comboPayload{
		ID:             combo.ID,
		OrderID:        combo.OrderID,
		SellerID:       combo.SellerID,
		Status:         string(combo.Status),
		GrandPrice:     combo.GrandPrice,
		DeliveryType:   string(combo.DeliveryType),
		TrackingCode:   combo.TrackingCode,
		EvidenceImages: combo.EvidenceImages,
		CancelReason:   combo.CancelReason,
		CancelledAt:    combo.CancelledAt,
		CreatedAt:      combo.CreatedAt,
		UpdatedAt:      combo.UpdatedAt,
	}
	for _, item := range combo.Items {
		payload.Items = append(payload.Items, itemToPayload(item))
	}
	return payload
}

func orderToPayload(order domain.Order) orderPayload {
	payload := orderPayload{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		DestinationID: order.DestinationID,
		VoucherCode:   order.VoucherCode,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Discount:      order.Discount,
		Shipping:      order.Shipping,
		GrandTotal:    order.GrandTotal,
		CreatedAt:     order.CreatedAt,
	}
	for _, combo := range order.Combos {
		payload.Combos = append(payload.Combos, comboToPayload(combo))
	}
	return payload
}

func historyToPayload(entry domain.History) historyPayload {
	return historyPayload{
		ID:         entry.ID,
		ComboID:    entry.ComboID,
		FromStatus: string(entry.FromStatus),
		ToStatus:   string(entry.ToStatus),
		Notes:      entry.Notes,
		ActorID:    entry.ActorID,
		ActorRole:  string(entry.ActorRole),
		CreatedAt:  entry.CreatedAt,
	}
}
