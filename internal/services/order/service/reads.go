package service

import (
	"context"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/services/order/domain"
)

// GetOrder returns one order with its combos and items. Customers see only
// their own orders; admins see all.
func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (domain.Order, error) {
	record, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if actor.Role != domain.RoleAdmin && record.CustomerID != actor.AccountID {
		return domain.Order{}, apperrors.WithMetadata(apperrors.CodeOrderNotOwned,
			"order "+orderID+" belongs to another customer",
			map[string]string{"OrderID": orderID})
	}
	return s.assembleOrder(ctx, record.ID, orderFromRecord(record))
}

func (s *Service) assembleOrder(ctx context.Context, orderID string, order domain.Order) (domain.Order, error) {
	comboRecords, err := s.store.ListCombosByOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	itemRecords, err := s.store.ListItemsByOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	itemsByCombo := make(map[string][]domain.OrderItem, len(comboRecords))
	for _, record := range itemRecords {
		item := itemFromRecord(record)
		order.Items = append(order.Items, item)
		itemsByCombo[item.ComboID] = append(itemsByCombo[item.ComboID], item)
	}
	for _, record := range comboRecords {
		combo := comboFromRecord(record)
		combo.Items = itemsByCombo[combo.ID]
		order.Combos = append(order.Combos, combo)
	}
	return order, nil
}

// ListOrdersByCustomer returns a customer's orders, newest first. Customers
// may list only their own.
func (s *Service) ListOrdersByCustomer(ctx context.Context, actor domain.Actor, customerID string) ([]domain.Order, error) {
	if actor.Role != domain.RoleAdmin && customerID != actor.AccountID {
		return nil, apperrors.WithMetadata(apperrors.CodeOrderNotOwned,
			"cannot list orders of another customer",
			map[string]string{"CustomerID": customerID})
	}
	records, err := s.store.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for _, record := range records {
		order, err := s.assembleOrder(ctx, record.ID, orderFromRecord(record))
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// GetHistory returns a combo's transition log, oldest first. Only the
// order's customer, the combo's seller, or an admin may read it.
func (s *Service) GetHistory(ctx context.Context, actor domain.Actor, comboID string) ([]domain.History, error) {
	if _, err := s.authorizeComboRead(ctx, actor, comboID); err != nil {
		return nil, err
	}
	records, err := s.store.ListHistory(ctx, comboID)
	if err != nil {
		return nil, err
	}
	history := make([]domain.History, 0, len(records))
	for _, record := range records {
		history = append(history, historyFromRecord(record))
	}
	return history, nil
}

// ValidNextStatuses returns the permitted target statuses for a combo's
// current status.
func (s *Service) ValidNextStatuses(ctx context.Context, actor domain.Actor, comboID string) ([]domain.Status, error) {
	combo, err := s.authorizeComboRead(ctx, actor, comboID)
	if err != nil {
		return nil, err
	}
	return domain.ValidNext(combo.Status), nil
}

func (s *Service) authorizeComboRead(ctx context.Context, actor domain.Actor, comboID string) (domain.Combo, error) {
	record, err := s.store.GetCombo(ctx, comboID)
	if err != nil {
		return domain.Combo{}, err
	}
	combo := comboFromRecord(record)
	if actor.Role == domain.RoleAdmin {
		return combo, nil
	}
	if actor.Role == domain.RoleSeller {
		if combo.SellerID != actor.AccountID {
			return domain.Combo{}, comboNotOwned(comboID)
		}
		return combo, nil
	}
	order, err := s.store.GetOrder(ctx, combo.OrderID)
	if err != nil {
		return domain.Combo{}, err
	}
	if order.CustomerID != actor.AccountID {
		return domain.Combo{}, comboNotOwned(comboID)
	}
	return combo, nil
}

func comboNotOwned(comboID string) error {
	return apperrors.WithMetadata(apperrors.CodeComboNotOwned,
		"combo "+comboID+" belongs to another account",
		map[string]string{"ComboID": comboID})
}
