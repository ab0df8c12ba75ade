// Package notify renders and dispatches fulfillment status notifications
// outside the order transaction. Failures are logged and counted, never
// surfaced to the caller.
package notify

import (
	"fmt"

	"golang.org/x/text/message"

	"github.com/wharfside/marketplace/internal/services/order/domain"
)

const (
	defaultGenericTitle = "Order update"
	defaultGenericBody  = "One of your orders has a new status."
)

// Audience identifies which side of the combo a notification addresses.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceSeller   Audience = "seller"
)

// Localizer is the minimal message-printer contract required by the renderer.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Output is localized copy for one status notification.
type Output struct {
	Title string
	Body  string
}

// Render returns localized copy for a combo status change. Cancellation copy
// includes the refunded amount.
func Render(loc Localizer, audience Audience, status domain.Status, refundAmount int64) Output {
	prefix := fmt.Sprintf("order.notify.%s.%s", audience, status)
	title := localize(loc, prefix+".title")
	var body string
	if status == domain.StatusCancelled && audience == AudienceCustomer {
		body = localize(loc, prefix+".body", formatMoney(refundAmount))
	} else {
		body = localize(loc, prefix+".body")
	}
	if title == prefix+".title" || body == prefix+".body" {
		return genericOutput(loc)
	}
	return Output{Title: title, Body: body}
}

func genericOutput(loc Localizer) Output {
	return Output{
		Title: localize(loc, "order.notify.generic.title"),
		Body:  localize(loc, "order.notify.generic.body"),
	}
}

func localize(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}

// formatMoney renders minor units as a dollar amount.
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
