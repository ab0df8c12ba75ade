package service

import (
	"github.com/wharfside/marketplace/internal/services/order/domain"
	"github.com/wharfside/marketplace/internal/services/order/storage"
)

func orderToRecord(order domain.Order) storage.OrderRecord {
	return storage.OrderRecord{
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
}

func orderFromRecord(record storage.OrderRecord) domain.Order {
	return domain.Order{
		ID:            record.ID,
		CustomerID:    record.CustomerID,
		DestinationID: record.DestinationID,
		VoucherCode:   record.VoucherCode,
		Subtotal:      record.Subtotal,
		Tax:           record.Tax,
		Discount:      record.Discount,
		Shipping:      record.Shipping,
		GrandTotal:    record.GrandTotal,
		CreatedAt:     record.CreatedAt,
	}
}

func comboToRecord(combo domain.Combo) storage.ComboRecord {
	return storage.ComboRecord{
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
}

func comboFromRecord(record storage.ComboRecord) domain.Combo {
	return domain.Combo{
		ID:             record.ID,
		OrderID:        record.OrderID,
		SellerID:       record.SellerID,
		Status:         domain.Status(record.Status),
		GrandPrice:     record.GrandPrice,
		DeliveryType:   domain.DeliveryType(record.DeliveryType),
		TrackingCode:   record.TrackingCode,
		EvidenceImages: record.EvidenceImages,
		CancelReason:   record.CancelReason,
		CancelledAt:    record.CancelledAt,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

func itemToRecord(item domain.OrderItem) storage.ItemRecord {
	return storage.ItemRecord{
		ID:               item.ID,
		OrderID:          item.OrderID,
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

func itemFromRecord(record storage.ItemRecord) domain.OrderItem {
	return domain.OrderItem{
		ID:               record.ID,
		OrderID:          record.OrderID,
		ComboID:          record.ComboID,
		ProductID:        record.ProductID,
		SellerID:         record.SellerID,
		Name:             record.Name,
		Thumbnail:        record.Thumbnail,
		ShortDescription: record.ShortDescription,
		Unit:             record.Unit,
		UnitPrice:        record.UnitPrice,
		Quantity:         record.Quantity,
	}
}

func historyFromRecord(record storage.HistoryRecord) domain.History {
	return domain.History{
		ID:         record.ID,
		ComboID:    record.ComboID,
		FromStatus: domain.Status(record.FromStatus),
		ToStatus:   domain.Status(record.ToStatus),
		Notes:      record.Notes,
		ActorID:    record.ActorID,
		ActorRole:  domain.Role(record.ActorRole),
		CreatedAt:  record.CreatedAt,
	}
}
