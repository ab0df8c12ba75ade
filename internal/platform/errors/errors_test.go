package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := New(CodeOrderItemsEmpty, "order items are required")
	if !stderrors.Is(err, New(CodeOrderItemsEmpty, "different message")) {
		t.Fatal("expected code match")
	}
	if stderrors.Is(err, New(CodeNotFound, "not found")) {
		t.Fatal("expected code mismatch")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := Wrap(CodeActionFailed, "persist order", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause in chain")
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	if got := CodeOf(New(CodeComboNotOwned, "not yours")); got != CodeComboNotOwned {
		t.Fatalf("code = %q, want %q", got, CodeComboNotOwned)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestKindMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code Code
		kind Kind
	}{
		{CodeOrderItemsEmpty, KindValidation},
		{CodeComboInvalidStatusTransition, KindValidation},
		{CodeComboNotOwned, KindAuthorization},
		{CodeAuthTokenInvalid, KindUnauthenticated},
		{CodeNotFound, KindNotFound},
		{CodeActionFailed, KindActionFailed},
		{CodeUnknown, KindActionFailed},
	}
	for _, tc := range cases {
		if got := tc.code.Kind(); got != tc.kind {
			t.Fatalf("%s kind = %d, want %d", tc.code, got, tc.kind)
		}
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
	}{
		{CodeOrderTooManyItems, http.StatusUnprocessableEntity},
		{CodeOrderNotOwned, http.StatusForbidden},
		{CodeAuthTokenInvalid, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeActionFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.code.HTTPStatus(); got != tc.status {
			t.Fatalf("%s status = %d, want %d", tc.code, got, tc.status)
		}
	}
}
