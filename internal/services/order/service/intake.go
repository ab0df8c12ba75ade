package service

import (
	"context"
	"fmt"
	"log"
	"time"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/services/order/domain"
	"github.com/wharfside/marketplace/internal/services/order/notify"
	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// CreateOrderInput is the intake request.
type CreateOrderInput struct {
	DestinationID string
	VoucherCode   string
	Items         []domain.ItemRequest
}

// CreateOrder validates the purchase, snapshots product data, splits the
// items into per-seller combos, reserves stock, and persists everything in
// one transaction. Sellers are notified after commit.
func (s *Service) CreateOrder(ctx context.Context, actor domain.Actor, input CreateOrderInput) (domain.Order, error) {
	start := time.Now()
	defer s.observe("order.create", start)
	ctx, span := s.tracer.Start(ctx, "order.create")
	defer span.End()

	if err := requireRole(actor, domain.RoleCustomer); err != nil {
		return domain.Order{}, err
	}
	if err := domain.ValidateItemRequests(input.Items); err != nil {
		return domain.Order{}, err
	}

	destination, err := s.store.GetDestination(ctx, input.DestinationID)
	if err != nil || destination.CustomerID != actor.AccountID {
		return domain.Order{}, apperrors.WithMetadata(apperrors.CodeOrderDestinationNotFound,
			"destination "+input.DestinationID+" not found for customer",
			map[string]string{"DestinationID": input.DestinationID})
	}

	now := s.now()
	orderID := s.newID()

	items := make([]domain.OrderItem, 0, len(input.Items))
	reserve := make([]storage.InventoryChange, 0, len(input.Items))
	for _, request := range input.Items {
		product, err := s.store.GetProduct(ctx, request.ProductID)
		if err != nil {
			return domain.Order{}, apperrors.WrapWithMetadata(apperrors.CodeOrderProductUnavailable,
				"product "+request.ProductID+" is not available",
				map[string]string{"ProductID": request.ProductID}, err)
		}
		if !product.Verified {
			return domain.Order{}, apperrors.WithMetadata(apperrors.CodeOrderProductUnavailable,
				"product "+product.Name+" is not available for purchase",
				map[string]string{"ProductID": product.ID, "ProductName": product.Name})
		}
		if product.Quantity < request.Quantity {
			return domain.Order{}, apperrors.WithMetadata(apperrors.CodeOrderInsufficientStock,
				fmt.Sprintf("product %s has %d in stock, requested %d",
					product.Name, product.Quantity, request.Quantity),
				map[string]string{"ProductID": product.ID, "ProductName": product.Name})
		}
		items = append(items, domain.OrderItem{
			ID:               s.newID(),
			OrderID:          orderID,
			ProductID:        product.ID,
			SellerID:         product.SellerID,
			Name:             product.Name,
			Thumbnail:        product.Thumbnail,
			ShortDescription: product.ShortDescription,
			Unit:             product.Unit,
			UnitPrice:        product.UnitPrice,
			Quantity:         request.Quantity,
		})
		reserve = append(reserve, storage.InventoryChange{
			ProductID: product.ID,
			Quantity:  request.Quantity,
		})
	}

	combos, err := domain.SplitCombos(orderID, items, now, s.newID)
	if err != nil {
		return domain.Order{}, err
	}

	var discount int64
	if input.VoucherCode != "" {
		if s.vouchers == nil {
			return domain.Order{}, apperrors.WithMetadata(apperrors.CodeVoucherRejected,
				"vouchers are not supported",
				map[string]string{"Code": input.VoucherCode})
		}
		subtotalOnly := domain.ComputeTotals(items, s.taxRateBP, 0, s.shippingFee)
		validated, err := s.vouchers.Validate(ctx, input.VoucherCode, subtotalOnly.Subtotal)
		if err != nil {
			return domain.Order{}, err
		}
		discount = validated.Amount
	}

	totals := domain.ComputeTotals(items, s.taxRateBP, discount, s.shippingFee)

	order := domain.Order{
		ID:            orderID,
		CustomerID:    actor.AccountID,
		DestinationID: destination.ID,
		VoucherCode:   input.VoucherCode,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Shipping:      totals.Shipping,
		GrandTotal:    totals.GrandTotal,
		CreatedAt:     now,
		Items:         items,
		Combos:        combos,
	}

	params := storage.CreateOrderParams{
		Order:   orderToRecord(order),
		Combos:  make([]storage.ComboRecord, 0, len(combos)),
		Items:   make([]storage.ItemRecord, 0, len(items)),
		History: make([]storage.HistoryRecord, 0, len(combos)),
		Reserve: reserve,
	}
	for _, combo := range combos {
		params.Combos = append(params.Combos, comboToRecord(combo))
		params.History = append(params.History, storage.HistoryRecord{
			ID:         s.newID(),
			ComboID:    combo.ID,
			FromStatus: "",
			ToStatus:   string(domain.StatusPending),
			Notes:      "order placed",
			ActorID:    actor.AccountID,
			ActorRole:  string(actor.Role),
			CreatedAt:  now,
		})
	}
	for _, item := range items {
		params.Items = append(params.Items, itemToRecord(item))
	}

	if err := s.store.CreateOrder(ctx, params); err != nil {
		return domain.Order{}, err
	}

	if input.VoucherCode != "" && s.vouchers != nil {
		if err := s.vouchers.Apply(ctx, input.VoucherCode, orderID); err != nil {
			return domain.Order{}, apperrors.Wrap(apperrors.CodeActionFailed,
				"apply voucher "+input.VoucherCode, err)
		}
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	for _, combo := range combos {
		s.enqueue(notify.Event{
			AccountID: combo.SellerID,
			Audience:  notify.AudienceSeller,
			ComboID:   combo.ID,
			Status:    domain.StatusPending,
		})
	}
	if s.carts != nil {
		if err := s.carts.Clear(ctx, actor.AccountID); err != nil {
			log.Printf("order service: clear cart for %s: %v", actor.AccountID, err)
		}
	}

	return order, nil
}
