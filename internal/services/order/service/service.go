// Package service orchestrates the order-processing operations: intake,
// reads, status transitions with compensation and settlement, and fee tier
// administration. Each mutating operation maps to one storage transaction.
package service

import (
	"context"
	"time"

	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/platform/id"
	"github.com/wharfside/marketplace/internal/platform/metrics"
	"github.com/wharfside/marketplace/internal/services/order/domain"
	"github.com/wharfside/marketplace/internal/services/order/notify"
	"github.com/wharfside/marketplace/internal/services/order/storage"
	"github.com/wharfside/marketplace/internal/services/order/voucher"
)

const tracerName = "github.com/wharfside/marketplace/internal/services/order/service"

// Notifier accepts status-change events for asynchronous delivery.
type Notifier interface {
	Enqueue(event notify.Event)
}

// Vouchers is the remote voucher collaborator contract.
type Vouchers interface {
	Enabled() bool
	Validate(ctx context.Context, code string, orderTotal int64) (voucher.Discount, error)
	Apply(ctx context.Context, code, orderID string) error
}

// Carts clears a customer's cart after a committed order. Best effort.
type Carts interface {
	Clear(ctx context.Context, customerID string) error
}

// Config wires the service dependencies.
type Config struct {
	Store    storage.Store
	Notifier Notifier
	Vouchers Vouchers
	Carts    Carts
	Metrics  *metrics.OrderMetrics

	// TaxRateBP and ShippingFee default to the domain constants.
	TaxRateBP   int32
	ShippingFee int64

	// Locale selects notification copy. Defaults to "en".
	Locale string

	// NewID and Now exist for deterministic tests.
	NewID func() string
	Now   func() int64
}

// Service implements the order-processing operations.
type Service struct {
	store       storage.Store
	notifier    Notifier
	vouchers    Vouchers
	carts       Carts
	metrics     *metrics.OrderMetrics
	tracer      trace.Tracer
	feeTiers    *feeTierCache
	taxRateBP   int32
	shippingFee int64
	locale      string
	newID       func() string
	now         func() int64
}

// New creates an order service.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, apperrors.New(apperrors.CodeActionFailed, "store is required")
	}
	s := &Service{
		store:       cfg.Store,
		notifier:    cfg.Notifier,
		vouchers:    cfg.Vouchers,
		carts:       cfg.Carts,
		metrics:     cfg.Metrics,
		tracer:      otelapi.Tracer(tracerName),
		feeTiers:    newFeeTierCache(cfg.Store),
		taxRateBP:   cfg.TaxRateBP,
		shippingFee: cfg.ShippingFee,
		locale:      cfg.Locale,
		newID:       cfg.NewID,
		now:         cfg.Now,
	}
	if s.taxRateBP <= 0 {
		s.taxRateBP = domain.DefaultTaxRateBP
	}
	if s.shippingFee <= 0 {
		s.shippingFee = domain.DefaultShippingFee
	}
	if s.locale == "" {
		s.locale = "en"
	}
	if s.newID == nil {
		s.newID = id.NewID
	}
	if s.now == nil {
		s.now = func() int64 { return time.Now().UTC().UnixMilli() }
	}
	return s, nil
}

// InvalidateFeeTiers drops the cached fee tiers; the next settlement
// reloads them from storage.
func (s *Service) InvalidateFeeTiers() {
	s.feeTiers.Invalidate()
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.OperationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (s *Service) enqueue(event notify.Event) {
	if s.notifier == nil {
		return
	}
	event.Locale = s.locale
	s.notifier.Enqueue(event)
}

// requireRole rejects actors whose role claim does not match.
func requireRole(actor domain.Actor, roles ...domain.Role) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return apperrors.WithMetadata(apperrors.CodeActorRoleInvalid,
		"role "+string(actor.Role)+" cannot perform this operation",
		map[string]string{"Role": string(actor.Role)})
}
