// Package httpapi exposes the order service as a REST API with bearer-token
// actors and localized error messages.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/platform/errors/i18n"
	"github.com/wharfside/marketplace/internal/platform/metrics"
	"github.com/wharfside/marketplace/internal/services/order/domain"
	"github.com/wharfside/marketplace/internal/services/order/service"
)

// Config wires the HTTP surface.
type Config struct {
	Service   *service.Service
	JWTSecret []byte
	// Locale selects the error message catalog. Defaults to en-US.
	Locale string
}

// NewRouter builds the chi router: the versionless REST API under /, plus
// /healthz and /metrics.
func NewRouter(cfg Config) http.Handler {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("Wharfside Order API", "1.0.0")
	api := humachi.New(router, humaConfig)
	api.UseMiddleware(AuthBearer(api, cfg.JWTSecret))

	resource := &orderResource{
		service: cfg.Service,
		locale:  cfg.Locale,
	}
	resource.register(api)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", metrics.Handler())

	return router
}

type orderResource struct {
	service *service.Service
	locale  string
}

func (rs *orderResource) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "order-create",
		Summary:     "Create an order",
		Method:      http.MethodPost,
		Path:        "/orders",
		Tags:        []string{"Orders"},
	}, rs.createOrder)

	huma.Register(api, huma.Operation{
		OperationID: "order-get",
		Summary:     "Get an order",
		Method:      http.MethodGet,
		Path:        "/orders/{orderID}",
		Tags:        []string{"Orders"},
	}, rs.getOrder)

	huma.Register(api, huma.Operation{
		OperationID: "order-list",
		Summary:     "List a customer's orders",
		Method:      http.MethodGet,
		Path:        "/customers/{customerID}/orders",
		Tags:        []string{"Orders"},
	}, rs.listOrders)

	huma.Register(api, huma.Operation{
		OperationID:   "order-cancel",
		Summary:       "Cancel an order",
		Method:        http.MethodPost,
		Path:          "/orders/{orderID}/cancel",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Orders"},
	}, rs.cancelOrder)

	huma.Register(api, huma.Operation{
		OperationID: "combo-transition",
		Summary:     "Request a fulfillment status transition",
		Method:      http.MethodPost,
		Path:        "/combos/{comboID}/transitions",
		Tags:        []string{"Combos"},
	}, rs.requestTransition)

	huma.Register(api, huma.Operation{
		OperationID: "combo-history",
		Summary:     "Get a combo's transition history",
		Method:      http.MethodGet,
		Path:        "/combos/{comboID}/history",
		Tags:        []string{"Combos"},
	}, rs.getHistory)

	huma.Register(api, huma.Operation{
		OperationID: "combo-next-statuses",
		Summary:     "List valid next statuses for a combo",
		Method:      http.MethodGet,
		Path:        "/combos/{comboID}/next-statuses",
		Tags:        []string{"Combos"},
	}, rs.validNextStatuses)

	huma.Register(api, huma.Operation{
		OperationID: "fee-tier-save",
		Summary:     "Create or update a fee tier",
		Method:      http.MethodPut,
		Path:        "/fee-tiers/{tierID}",
		Tags:        []string{"Fees"},
	}, rs.saveFeeTier)
}

// --- Requests/responses ---

type createOrderRequest struct {
	Body struct {
		DestinationID string `json:"destinationId" minLength:"1"`
		VoucherCode   string `json:"voucherCode,omitempty"`
		Items         []struct {
			ProductID string `json:"productId" minLength:"1"`
			Quantity  int32  `json:"quantity" minimum:"1"`
		} `json:"items" minItems:"1"`
	}
}

type orderResponse struct {
	Body orderPayload
}

type getOrderRequest struct {
	OrderID string `path:"orderID"`
}

type listOrdersRequest struct {
	CustomerID string `path:"customerID"`
}

type ordersResponse struct {
	Body struct {
		Orders []orderPayload `json:"orders"`
	}
}

type cancelOrderRequest struct {
	OrderID string `path:"orderID"`
	Body    struct {
		Reason string `json:"reason,omitempty"`
	}
}

type emptyResponse struct{}

type transitionRequest struct {
	ComboID string `path:"comboID"`
	Body    struct {
		ToStatus       string   `json:"toStatus" minLength:"1"`
		Notes          string   `json:"notes,omitempty"`
		DeliveryType   string   `json:"deliveryType,omitempty"`
		TrackingCode   string   `json:"trackingCode,omitempty"`
		EvidenceImages []string `json:"evidenceImages,omitempty"`
		CancelReason   string   `json:"cancelReason,omitempty"`
	}
}

type comboResponse struct {
	Body comboPayload
}

type comboRequest struct {
	ComboID string `path:"comboID"`
}

type historyResponse struct {
	Body struct {
		History []historyPayload `json:"history"`
	}
}

type nextStatusesResponse struct {
	Body struct {
		Statuses []string `json:"statuses"`
	}
}

type saveFeeTierRequest struct {
	TierID string `path:"tierID"`
	Body   struct {
		MinPrice int64  `json:"minPrice" minimum:"0"`
		MaxPrice *int64 `json:"maxPrice,omitempty"`
		RateBP   int32  `json:"rateBp" minimum:"0" maximum:"10000"`
		Position int32  `json:"position,omitempty"`
	}
}

// --- Handlers ---

func (rs *orderResource) createOrder(ctx context.Context, req *createOrderRequest) (*orderResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	input := service.CreateOrderInput{
		DestinationID: req.Body.DestinationID,
		VoucherCode:   req.Body.VoucherCode,
	}
	for _, item := range req.Body.Items {
		input.Items = append(input.Items, domain.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	order, err := rs.service.CreateOrder(ctx, actor, input)
	if err != nil {
		return nil, rs.mapError(err)
	}
	return &orderResponse{Body: orderToPayload(order)}, nil
}

func (rs *orderResource) getOrder(ctx context.Context, req *getOrderRequest) (*orderResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	order, err := rs.service.GetOrder(ctx, actor, req.OrderID)
	if err != nil {
		return nil, rs.mapError(err)
	}
	return &orderResponse{Body: orderToPayload(order)}, nil
}

func (rs *orderResource) listOrders(ctx context.Context, req *listOrdersRequest) (*ordersResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	orders, err := rs.service.ListOrdersByCustomer(ctx, actor, req.CustomerID)
	if err != nil {
		return nil, rs.mapError(err)
	}
	response := &ordersResponse{}
	response.Body.Orders = make([]orderPayload, 0, len(orders))
	for _, order := range orders {
		response.Body.Orders = append(response.Body.Orders, orderToPayload(order))
	}
	return response, nil
}

func (rs *orderResource) cancelOrder(ctx context.Context, req *cancelOrderRequest) (*emptyResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	if err := rs.service.CancelOrder(ctx, actor, req.OrderID, req.Body.Reason); err != nil {
		return nil, rs.mapError(err)
	}
	return &emptyResponse{}, nil
}

func (rs *orderResource) requestTransition(ctx context.Context, req *transitionRequest) (*comboResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	combo, err := rs.service.RequestTransition(ctx, actor, service.TransitionInput{
		ComboID:  req.ComboID,
		ToStatus: req.Body.ToStatus,
		Notes:    req.Body.Notes,
		Delivery: domain.DeliveryInfo{
			Type:         domain.DeliveryType(req.Body.DeliveryType),
			TrackingCode: req.Body.TrackingCode,
		},
		EvidenceImages: req.Body.EvidenceImages,
		CancelReason:   req.Body.CancelReason,
	})
	if err != nil {
		return nil, rs.mapError(err)
	}
	return &comboResponse{Body: comboToPayload(combo)}, nil
}

func (rs *orderResource) getHistory(ctx context.Context, req *comboRequest) (*historyResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	history, err := rs.service.GetHistory(ctx, actor, req.ComboID)
	if err != nil {
		return nil, rs.mapError(err)
	}
	response := &historyResponse{}
	response.Body.History = make([]historyPayload, 0, len(history))
	for _, entry := range history {
		response.Body.History = append(response.Body.History, historyToPayload(entry))
	}
	return response, nil
}

func (rs *orderResource) validNextStatuses(ctx context.Context, req *comboRequest) (*nextStatusesResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	statuses, err := rs.service.ValidNextStatuses(ctx, actor, req.ComboID)
	if err != nil {
		return nil, rs.mapError(err)
	}
	response := &nextStatusesResponse{}
	response.Body.Statuses = make([]string, 0, len(statuses))
	for _, status := range statuses {
		response.Body.Statuses = append(response.Body.Statuses, string(status))
	}
	return response, nil
}

func (rs *orderResource) saveFeeTier(ctx context.Context, req *saveFeeTierRequest) (*emptyResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, rs.mapError(err)
	}
	err = rs.service.SaveFeeTier(ctx, actor, domain.FeeTier{
		ID:       req.TierID,
		MinPrice: req.Body.MinPrice,
		MaxPrice: req.Body.MaxPrice,
		RateBP:   req.Body.RateBP,
	}, req.Body.Position)
	if err != nil {
		return nil, rs.mapError(err)
	}
	return &emptyResponse{}, nil
}

// --- Error mapping ---

// mapError converts a domain error into a huma status error carrying the
// localized user-facing message.
func (rs *orderResource) mapError(err error) error {
	code := apperrors.CodeOf(err)

	var metadata map[string]string
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		metadata = appErr.Metadata
	}
	message := i18n.GetCatalog(rs.locale).Format(string(code), metadata)

	return huma.NewError(code.HTTPStatus(), message)
}

func writeError(api huma.API, ctx huma.Context, err error) {
	code := apperrors.CodeOf(err)
	message := i18n.GetCatalog("").Format(string(code), nil)
	_ = huma.WriteErr(api, ctx, code.HTTPStatus(), message)
}
