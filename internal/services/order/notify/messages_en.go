package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "order.notify.generic.title", defaultGenericTitle)
	message.SetString(lang, "order.notify.generic.body", defaultGenericBody)

	message.SetString(lang, "order.notify.customer.PREPARING.title", "Order confirmed")
	message.SetString(lang, "order.notify.customer.PREPARING.body", "The seller is preparing your items.")
	message.SetString(lang, "order.notify.customer.DELIVERING.title", "Order on its way")
	message.SetString(lang, "order.notify.customer.DELIVERING.body", "Your items have been handed to the carrier.")
	message.SetString(lang, "order.notify.customer.DELIVERED.title", "Order delivered")
	message.SetString(lang, "order.notify.customer.DELIVERED.body", "Your items were delivered. Confirm receipt to complete the order.")
	message.SetString(lang, "order.notify.customer.COMPLETED.title", "Order completed")
	message.SetString(lang, "order.notify.customer.COMPLETED.body", "Thank you for your purchase.")
	message.SetString(lang, "order.notify.customer.CANCELLED.title", "Order cancelled")
	message.SetString(lang, "order.notify.customer.CANCELLED.body", "Your order was cancelled. %s was refunded to your wallet.")
	message.SetString(lang, "order.notify.customer.RETURN_REQUESTED.title", "Return requested")
	message.SetString(lang, "order.notify.customer.RETURN_REQUESTED.body", "Your return request was sent to the seller.")
	message.SetString(lang, "order.notify.customer.RETURN_APPROVED.title", "Return approved")
	message.SetString(lang, "order.notify.customer.RETURN_APPROVED.body", "The seller approved your return. Ship the items back.")
	message.SetString(lang, "order.notify.customer.RETURN_REJECTED.title", "Return rejected")
	message.SetString(lang, "order.notify.customer.RETURN_REJECTED.body", "The seller rejected your return request.")
	message.SetString(lang, "order.notify.customer.RETURNED.title", "Return completed")
	message.SetString(lang, "order.notify.customer.RETURNED.body", "Your return was received by the seller.")

	message.SetString(lang, "order.notify.seller.PENDING.title", "New order")
	message.SetString(lang, "order.notify.seller.PENDING.body", "You have a new order waiting for confirmation.")
	message.SetString(lang, "order.notify.seller.CANCELLED.title", "Order cancelled")
	message.SetString(lang, "order.notify.seller.CANCELLED.body", "The customer cancelled this order. Reserved stock was restored.")
	message.SetString(lang, "order.notify.seller.COMPLETED.title", "Order completed")
	message.SetString(lang, "order.notify.seller.COMPLETED.body", "The customer confirmed receipt. Your revenue was credited.")
	message.SetString(lang, "order.notify.seller.RETURN_REQUESTED.title", "Return requested")
	message.SetString(lang, "order.notify.seller.RETURN_REQUESTED.body", "The customer requested a return. Review and respond.")
	message.SetString(lang, "order.notify.seller.RETURNED.title", "Return completed")
	message.SetString(lang, "order.notify.seller.RETURNED.body", "The returned items were marked as received.")
}
