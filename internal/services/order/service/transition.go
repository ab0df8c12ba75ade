package service

import (
	"context"
	"time"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/services/order/domain"
	"github.com/wharfside/marketplace/internal/services/order/notify"
	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// TransitionInput is one status transition request for a combo.
type TransitionInput struct {
	ComboID  string
	ToStatus string
	Notes    string

	// DELIVERING metadata.
	Delivery domain.DeliveryInfo
	// DELIVERED metadata.
	EvidenceImages []string
	// CANCELLED metadata.
	CancelReason string
}

// RequestTransition moves a combo to a new fulfillment status. Cancellation
// refunds the customer and restores stock; completion realizes the seller's
// revenue. All side effects commit atomically with the status flip.
func (s *Service) RequestTransition(ctx context.Context, actor domain.Actor, input TransitionInput) (domain.Combo, error) {
	start := time.Now()
	defer s.observe("combo.transition", start)
	ctx, span := s.tracer.Start(ctx, "combo.transition")
	defer span.End()

	toStatus, err := domain.ParseStatus(input.ToStatus)
	if err != nil {
		return domain.Combo{}, err
	}

	comboRecord, err := s.store.GetCombo(ctx, input.ComboID)
	if err != nil {
		return domain.Combo{}, err
	}
	combo := comboFromRecord(comboRecord)

	orderRecord, err := s.store.GetOrder(ctx, combo.OrderID)
	if err != nil {
		return domain.Combo{}, err
	}

	if err := s.authorizeTransition(actor, combo, orderRecord.CustomerID, toStatus); err != nil {
		return domain.Combo{}, err
	}
	if err := domain.CheckTransition(combo.Status, toStatus); err != nil {
		return domain.Combo{}, err
	}

	now := s.now()
	params := storage.ApplyTransitionParams{
		ComboID:    combo.ID,
		FromStatus: string(combo.Status),
		ToStatus:   string(toStatus),
		UpdatedAt:  now,
		History: storage.HistoryRecord{
			ID:         s.newID(),
			ComboID:    combo.ID,
			FromStatus: string(combo.Status),
			ToStatus:   string(toStatus),
			Notes:      input.Notes,
			ActorID:    actor.AccountID,
			ActorRole:  string(actor.Role),
			CreatedAt:  now,
		},
	}

	var refund int64
	switch toStatus {
	case domain.StatusDelivering:
		if err := input.Delivery.Validate(); err != nil {
			return domain.Combo{}, err
		}
		params.DeliveryType = string(input.Delivery.Type)
		params.TrackingCode = input.Delivery.TrackingCode

	case domain.StatusDelivered:
		if err := domain.ValidateEvidence(input.EvidenceImages); err != nil {
			return domain.Combo{}, err
		}
		params.EvidenceImages = input.EvidenceImages

	case domain.StatusCancelled:
		refund = combo.GrandPrice
		params.CancelReason = input.CancelReason
		params.CancelledAt = now
		compensation, err := s.buildCompensation(ctx, combo, orderRecord.CustomerID, input.CancelReason, now)
		if err != nil {
			return domain.Combo{}, err
		}
		params.Compensation = compensation

	case domain.StatusCompleted:
		settlement, err := s.buildSettlement(ctx, combo, now)
		if err != nil {
			return domain.Combo{}, err
		}
		params.Settlement = settlement
	}

	if err := s.store.ApplyTransition(ctx, params); err != nil {
		return domain.Combo{}, err
	}

	if s.metrics != nil {
		s.metrics.Transitions.WithLabelValues(string(toStatus)).Inc()
		if toStatus == domain.StatusCancelled {
			s.metrics.Compensations.Inc()
		}
	}
	s.notifyTransition(orderRecord.CustomerID, combo, toStatus, refund)

	updated, err := s.store.GetCombo(ctx, combo.ID)
	if err != nil {
		return domain.Combo{}, err
	}
	return comboFromRecord(updated), nil
}

// authorizeTransition checks both the role gate of the target status and
// record ownership.
func (s *Service) authorizeTransition(actor domain.Actor, combo domain.Combo, customerID string, toStatus domain.Status) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	allowedRoles, ok := domain.RolesFor(toStatus)
	allowed := false
	for _, role := range allowedRoles {
		if actor.Role == role {
			allowed = true
			break
		}
	}
	if !ok || !allowed {
		return apperrors.WithMetadata(apperrors.CodeActorRoleInvalid,
			"role "+string(actor.Role)+" cannot request status "+string(toStatus),
			map[string]string{"Role": string(actor.Role), "ToStatus": string(toStatus)})
	}
	switch actor.Role {
	case domain.RoleSeller:
		if combo.SellerID != actor.AccountID {
			return comboNotOwned(combo.ID)
		}
	case domain.RoleCustomer:
		if customerID != actor.AccountID {
			return comboNotOwned(combo.ID)
		}
	}
	return nil
}

// buildCompensation assembles the cancellation side effects: a wallet
// refund of the combo grand price and per-item stock restoration.
func (s *Service) buildCompensation(ctx context.Context, combo domain.Combo, customerID, reason string, now int64) (*storage.Compensation, error) {
	items, err := s.store.ListItemsByOrder(ctx, combo.OrderID)
	if err != nil {
		return nil, err
	}
	var restore []storage.InventoryChange
	for _, item := range items {
		if item.ComboID != combo.ID {
			continue
		}
		restore = append(restore, storage.InventoryChange{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	note := "refund for cancelled combo " + combo.ID
	if reason != "" {
		note += ": " + reason
	}
	return &storage.Compensation{
		Refund: storage.WalletCredit{
			TransactionID: s.newID(),
			AccountID:     customerID,
			Amount:        combo.GrandPrice,
			Note:          note,
			CreatedAt:     now,
		},
		Restore: restore,
	}, nil
}

// buildSettlement assembles the completion side effects: the idempotent
// revenue record and the seller's wallet payout.
func (s *Service) buildSettlement(ctx context.Context, combo domain.Combo, now int64) (*storage.Settlement, error) {
	tiers, err := s.feeTiers.Get(ctx)
	if err != nil {
		return nil, err
	}
	rate := domain.RateFor(tiers, combo.GrandPrice)
	settled := domain.Settle(combo.GrandPrice, rate)
	return &storage.Settlement{
		Revenue: storage.SellerRevenueRecord{
			ComboID:       combo.ID,
			SellerID:      combo.SellerID,
			TotalAmount:   settled.TotalAmount,
			FeeRateBP:     settled.FeeRateBP,
			FeeAmount:     settled.FeeAmount,
			SellerRevenue: settled.SellerRevenue,
			CreatedAt:     now,
		},
		Payout: storage.WalletCredit{
			TransactionID: s.newID(),
			AccountID:     combo.SellerID,
			Amount:        settled.SellerRevenue,
			Note:          "revenue for completed combo " + combo.ID,
			CreatedAt:     now,
		},
	}, nil
}

// notifyTransition enqueues post-commit events for the customer and, where
// relevant, the seller.
func (s *Service) notifyTransition(customerID string, combo domain.Combo, toStatus domain.Status, refund int64) {
	s.enqueue(notify.Event{
		AccountID:    customerID,
		Audience:     notify.AudienceCustomer,
		ComboID:      combo.ID,
		Status:       toStatus,
		RefundAmount: refund,
	})
	switch toStatus {
	case domain.StatusCancelled, domain.StatusCompleted,
		domain.StatusReturnRequested, domain.StatusReturned:
		s.enqueue(notify.Event{
			AccountID: combo.SellerID,
			Audience:  notify.AudienceSeller,
			ComboID:   combo.ID,
			Status:    toStatus,
		})
	}
}

// CancelOrder cancels every combo of an order in one transaction. Every
// combo must currently permit cancellation, otherwise nothing changes.
func (s *Service) CancelOrder(ctx context.Context, actor domain.Actor, orderID, reason string) error {
	start := time.Now()
	defer s.observe("order.cancel", start)
	ctx, span := s.tracer.Start(ctx, "order.cancel")
	defer span.End()

	orderRecord, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin {
		if err := requireRole(actor, domain.RoleCustomer); err != nil {
			return err
		}
		if orderRecord.CustomerID != actor.AccountID {
			return apperrors.WithMetadata(apperrors.CodeOrderNotOwned,
				"order "+orderID+" belongs to another customer",
				map[string]string{"OrderID": orderID})
		}
	}

	comboRecords, err := s.store.ListCombosByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	combos := make([]domain.Combo, 0, len(comboRecords))
	for _, record := range comboRecords {
		combos = append(combos, comboFromRecord(record))
	}
	if err := domain.CancellableStatuses(combos); err != nil {
		return err
	}

	now := s.now()
	params := storage.CancelOrderParams{OrderID: orderID}
	for _, combo := range combos {
		compensation, err := s.buildCompensation(ctx, combo, orderRecord.CustomerID, reason, now)
		if err != nil {
			return err
		}
		params.Transitions = append(params.Transitions, storage.ApplyTransitionParams{
			ComboID:      combo.ID,
			FromStatus:   string(combo.Status),
			ToStatus:     string(domain.StatusCancelled),
			UpdatedAt:    now,
			CancelReason: reason,
			CancelledAt:  now,
			History: storage.HistoryRecord{
				ID:         s.newID(),
				ComboID:    combo.ID,
				FromStatus: string(combo.Status),
				ToStatus:   string(domain.StatusCancelled),
				Notes:      reason,
				ActorID:    actor.AccountID,
				ActorRole:  string(actor.Role),
				CreatedAt:  now,
			},
			Compensation: compensation,
		})
	}

	if err := s.store.CancelOrder(ctx, params); err != nil {
		return err
	}

	if s.metrics != nil {
		for range combos {
			s.metrics.Transitions.WithLabelValues(string(domain.StatusCancelled)).Inc()
			s.metrics.Compensations.Inc()
		}
	}
	for _, combo := range combos {
		s.notifyTransition(orderRecord.CustomerID, combo, domain.StatusCancelled, combo.GrandPrice)
	}
	return nil
}

// SaveFeeTier upserts a commission bracket and drops the tier cache.
// Admin only.
func (s *Service) SaveFeeTier(ctx context.Context, actor domain.Actor, tier domain.FeeTier, position int32) error {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}
	tierID := tier.ID
	if tierID == "" {
		tierID = s.newID()
	}
	err := s.store.SaveFeeTier(ctx, storage.FeeTierRecord{
		ID:       tierID,
		MinPrice: tier.MinPrice,
		MaxPrice: tier.MaxPrice,
		RateBP:   tier.RateBP,
		Position: position,
	})
	if err != nil {
		return err
	}
	s.feeTiers.Invalidate()
	return nil
}
