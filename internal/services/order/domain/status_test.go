package domain

import (
	"errors"
	"testing"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
)

func TestValidNextEdges(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from Status
		want []Status
	}{
		{StatusPending, []Status{StatusCancelled, StatusPreparing}},
		{StatusPreparing, []Status{StatusCancelled, StatusDelivering}},
		{StatusDelivering, []Status{StatusCancelled, StatusDelivered}},
		{StatusDelivered, []Status{StatusCompleted, StatusReturnRequested}},
		{StatusCompleted, []Status{StatusReturnRequested}},
		{StatusReturnRequested, []Status{StatusReturnApproved, StatusReturnRejected}},
		{StatusReturnApproved, []Status{StatusReturned}},
		{StatusCancelled, nil},
		{StatusReturnRejected, nil},
		{StatusReturned, nil},
	}
	for _, tc := range cases {
		got := ValidNext(tc.from)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.from, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.from, tc.want, got)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	terminals := []Status{StatusCancelled, StatusReturned, StatusReturnRejected}
	for _, s := range terminals {
		if !IsTerminal(s) {
			t.Errorf("expected %s terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusDelivered, StatusCompleted} {
		if IsTerminal(s) {
			t.Errorf("expected %s non-terminal", s)
		}
	}
}

func TestCheckTransitionRejectsSelf(t *testing.T) {
	t.Parallel()

	err := CheckTransition(StatusPending, StatusPending)
	if apperrors.CodeOf(err) != apperrors.CodeComboSelfTransition {
		t.Fatalf("expected self-transition code, got %v", err)
	}
}

func TestCheckTransitionRejectsSkippedStep(t *testing.T) {
	t.Parallel()

	err := CheckTransition(StatusPending, StatusDelivered)
	if apperrors.CodeOf(err) != apperrors.CodeComboInvalidStatusTransition {
		t.Fatalf("expected invalid-transition code, got %v", err)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatal("expected structured error")
	}
	if appErr.Metadata["ValidNext"] != "CANCELLED, PREPARING" {
		t.Fatalf("expected valid next statuses in metadata, got %q", appErr.Metadata["ValidNext"])
	}
}

func TestCheckTransitionRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	err := CheckTransition(StatusPending, Status("SHIPPED"))
	if apperrors.CodeOf(err) != apperrors.CodeComboUnknownStatus {
		t.Fatalf("expected unknown-status code, got %v", err)
	}
}

func TestCheckTransitionAllowsGraphEdges(t *testing.T) {
	t.Parallel()

	for from, targets := range statusGraph {
		for _, to := range targets {
			if err := CheckTransition(from, to); err != nil {
				t.Errorf("%s -> %s: unexpected error %v", from, to, err)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	if _, err := ParseStatus("DELIVERING"); err != nil {
		t.Fatalf("expected DELIVERING to parse: %v", err)
	}
	if _, err := ParseStatus("delivering"); err == nil {
		t.Fatal("expected lowercase label to be rejected")
	}
}

func TestEveryStatusReachesATerminal(t *testing.T) {
	t.Parallel()

	for start := range statusGraph {
		seen := map[Status]bool{}
		queue := []Status{start}
		found := false
		for len(queue) > 0 {
			s := queue[0]
			queue = queue[1:]
			if seen[s] {
				continue
			}
			seen[s] = true
			if IsTerminal(s) {
				found = true
				break
			}
			queue = append(queue, statusGraph[s]...)
		}
		if !found {
			t.Errorf("status %s cannot reach a terminal state", start)
		}
	}
}
