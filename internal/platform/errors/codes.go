// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Order intake errors
	CodeOrderItemsEmpty          Code = "ORDER_ITEMS_EMPTY"
	CodeOrderTooManyItems        Code = "ORDER_TOO_MANY_ITEMS"
	CodeOrderQuantityInvalid     Code = "ORDER_QUANTITY_INVALID"
	CodeOrderProductUnavailable  Code = "ORDER_PRODUCT_UNAVAILABLE"
	CodeOrderInsufficientStock   Code = "ORDER_INSUFFICIENT_STOCK"
	CodeOrderDestinationNotFound Code = "ORDER_DESTINATION_NOT_FOUND"

	// Ownership errors
	CodeOrderNotOwned    Code = "ORDER_NOT_OWNED"
	CodeComboNotOwned    Code = "COMBO_NOT_OWNED"
	CodeActorRoleInvalid Code = "ACTOR_ROLE_INVALID"

	// Status transition errors
	CodeComboUnknownStatus           Code = "COMBO_UNKNOWN_STATUS"
	CodeComboSelfTransition          Code = "COMBO_SELF_TRANSITION"
	CodeComboInvalidStatusTransition Code = "COMBO_INVALID_STATUS_TRANSITION"
	CodeComboDeliveryTypeRequired    Code = "COMBO_DELIVERY_TYPE_REQUIRED"
	CodeComboTrackingCodeRequired    Code = "COMBO_TRACKING_CODE_REQUIRED"
	CodeComboEvidenceRequired        Code = "COMBO_EVIDENCE_REQUIRED"
	CodeComboCancelDisallowed        Code = "COMBO_CANCEL_DISALLOWED"

	// Settlement errors
	CodeRevenueAlreadyRealized Code = "REVENUE_ALREADY_REALIZED"
	CodeVoucherRejected        Code = "VOUCHER_REJECTED"

	// Auth errors
	CodeAuthTokenInvalid Code = "AUTH_TOKEN_INVALID"

	// Storage errors
	CodeNotFound     Code = "NOT_FOUND"
	CodeActionFailed Code = "ACTION_FAILED"
)

// Kind groups error codes into the caller-facing failure categories.
type Kind int

const (
	// KindActionFailed covers persistence or downstream failures after
	// valid input; the enclosing transaction is rolled back.
	KindActionFailed Kind = iota
	// KindValidation covers bad or missing input; never retried.
	KindValidation
	// KindUnauthenticated covers missing or malformed caller identity.
	KindUnauthenticated
	// KindAuthorization covers callers that do not own the mutated record.
	KindAuthorization
	// KindNotFound covers requests for records that do not exist.
	KindNotFound
)

// Kind maps a domain code to its failure category.
func (c Code) Kind() Kind {
	switch c {
	case CodeOrderItemsEmpty,
		CodeOrderTooManyItems,
		CodeOrderQuantityInvalid,
		CodeOrderProductUnavailable,
		CodeOrderInsufficientStock,
		CodeOrderDestinationNotFound,
		CodeActorRoleInvalid,
		CodeComboUnknownStatus,
		CodeComboSelfTransition,
		CodeComboInvalidStatusTransition,
		CodeComboDeliveryTypeRequired,
		CodeComboTrackingCodeRequired,
		CodeComboEvidenceRequired,
		CodeComboCancelDisallowed,
		CodeRevenueAlreadyRealized,
		CodeVoucherRejected:
		return KindValidation

	case CodeAuthTokenInvalid:
		return KindUnauthenticated

	case CodeOrderNotOwned,
		CodeComboNotOwned:
		return KindAuthorization

	case CodeNotFound:
		return KindNotFound

	default:
		return KindActionFailed
	}
}

// HTTPStatus maps a domain code to the HTTP status the API layer returns.
func (c Code) HTTPStatus() int {
	switch c.Kind() {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
