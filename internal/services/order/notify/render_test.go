package notify

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wharfside/marketplace/internal/services/order/domain"
)

func TestRenderCancellationIncludesRefund(t *testing.T) {
	t.Parallel()

	printer := message.NewPrinter(language.English)
	output := Render(printer, AudienceCustomer, domain.StatusCancelled, 9_300)
	if output.Title != "Order cancelled" {
		t.Fatalf("unexpected title %q", output.Title)
	}
	if !strings.Contains(output.Body, "$93.00") {
		t.Fatalf("expected refund amount in body, got %q", output.Body)
	}
}

func TestRenderPortuguese(t *testing.T) {
	t.Parallel()

	printer := message.NewPrinter(language.BrazilianPortuguese)
	output := Render(printer, AudienceCustomer, domain.StatusCancelled, 1_050)
	if output.Title != "Pedido cancelado" {
		t.Fatalf("unexpected title %q", output.Title)
	}
	if !strings.Contains(output.Body, "$10.50") {
		t.Fatalf("expected refund amount in body, got %q", output.Body)
	}
}

func TestRenderFallsBackToGeneric(t *testing.T) {
	t.Parallel()

	printer := message.NewPrinter(language.English)
	// Sellers get no PREPARING copy; the generic template covers it.
	output := Render(printer, AudienceSeller, domain.StatusPreparing, 0)
	if output.Title != defaultGenericTitle {
		t.Fatalf("expected generic title, got %q", output.Title)
	}
}

func TestRenderEveryCustomerStatusHasCopy(t *testing.T) {
	t.Parallel()

	printer := message.NewPrinter(language.English)
	statuses := []domain.Status{
		domain.StatusPreparing, domain.StatusDelivering, domain.StatusDelivered,
		domain.StatusCompleted, domain.StatusCancelled,
		domain.StatusReturnRequested, domain.StatusReturnApproved,
		domain.StatusReturnRejected, domain.StatusReturned,
	}
	for _, status := range statuses {
		output := Render(printer, AudienceCustomer, status, 100)
		if output.Title == defaultGenericTitle {
			t.Errorf("status %s fell back to generic copy", status)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cents int64
		want  string
	}{
		{9_300, "$93.00"},
		{5, "$0.05"},
		{0, "$0.00"},
		{-150, "-$1.50"},
	}
	for _, tc := range cases {
		if got := formatMoney(tc.cents); got != tc.want {
			t.Errorf("formatMoney(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
