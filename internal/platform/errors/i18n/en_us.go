package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeOrderItemsEmpty          = "ORDER_ITEMS_EMPTY"
	CodeOrderTooManyItems        = "ORDER_TOO_MANY_ITEMS"
	CodeOrderQuantityInvalid     = "ORDER_QUANTITY_INVALID"
	CodeOrderProductUnavailable  = "ORDER_PRODUCT_UNAVAILABLE"
	CodeOrderInsufficientStock   = "ORDER_INSUFFICIENT_STOCK"
	CodeOrderDestinationNotFound = "ORDER_DESTINATION_NOT_FOUND"
	CodeOrderNotOwned            = "ORDER_NOT_OWNED"
	CodeComboNotOwned            = "COMBO_NOT_OWNED"
	CodeActorRoleInvalid         = "ACTOR_ROLE_INVALID"

	CodeComboUnknownStatus           = "COMBO_UNKNOWN_STATUS"
	CodeComboSelfTransition          = "COMBO_SELF_TRANSITION"
	CodeComboInvalidStatusTransition = "COMBO_INVALID_STATUS_TRANSITION"
	CodeComboDeliveryTypeRequired    = "COMBO_DELIVERY_TYPE_REQUIRED"
	CodeComboTrackingCodeRequired    = "COMBO_TRACKING_CODE_REQUIRED"
	CodeComboEvidenceRequired        = "COMBO_EVIDENCE_REQUIRED"
	CodeComboCancelDisallowed        = "COMBO_CANCEL_DISALLOWED"

	CodeRevenueAlreadyRealized = "REVENUE_ALREADY_REALIZED"
	CodeVoucherRejected        = "VOUCHER_REJECTED"
	CodeAuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	CodeNotFound               = "NOT_FOUND"
	CodeActionFailed           = "ACTION_FAILED"
)

var enUSCatalog = NewCatalog(BaseLocale, map[Code]string{
	// Order intake errors
	CodeOrderItemsEmpty:          "Order must contain at least one item",
	CodeOrderTooManyItems:        "Order cannot contain more than {{.Limit}} distinct products",
	CodeOrderQuantityInvalid:     "Item quantity must be greater than zero",
	CodeOrderProductUnavailable:  "Products are missing or not verified: {{.ProductIDs}}",
	CodeOrderInsufficientStock:   "Not enough stock for product {{.ProductName}}",
	CodeOrderDestinationNotFound: "Delivery destination was not found for this customer",

	// Ownership errors
	CodeOrderNotOwned:    "You are not the owner of this order",
	CodeComboNotOwned:    "You are not the seller of this fulfillment",
	CodeActorRoleInvalid: "Your account role does not allow this operation",

	// Status transition errors
	CodeComboUnknownStatus:           "Unknown order status {{.Status}}",
	CodeComboSelfTransition:          "Fulfillment is already in status {{.Status}}",
	CodeComboInvalidStatusTransition: "Cannot move fulfillment from {{.FromStatus}} to {{.ToStatus}}; valid next statuses: {{.ValidNext}}",
	CodeComboDeliveryTypeRequired:    "A delivery type is required to start delivering",
	CodeComboTrackingCodeRequired:    "A tracking code is required for {{.DeliveryType}} delivery",
	CodeComboEvidenceRequired:        "At least one delivery evidence image is required",
	CodeComboCancelDisallowed:        "Fulfillment in status {{.Status}} can no longer be cancelled",

	// Settlement errors
	CodeRevenueAlreadyRealized: "Revenue was already settled for this fulfillment",
	CodeVoucherRejected:        "Voucher was rejected: {{.Reason}}",

	// Auth/storage errors
	CodeAuthTokenInvalid: "Sign-in token is missing or invalid",
	CodeNotFound:         "The requested record was not found",
	CodeActionFailed:     "The operation could not be completed; nothing was changed",
})

func init() {
	RegisterCatalog(BaseLocale, enUSCatalog)
}
