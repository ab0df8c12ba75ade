// Package domain holds the pure order-processing rules: intake validation,
// per-seller combo splitting, the fulfillment status machine, delivery
// metadata rules, and fee settlement arithmetic.
package domain

import (
	"fmt"
	"sort"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
)

// Status is a fulfillment status of a seller combo.
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusPreparing       Status = "PREPARING"
	StatusDelivering      Status = "DELIVERING"
	StatusDelivered       Status = "DELIVERED"
	StatusCompleted       Status = "COMPLETED"
	StatusCancelled       Status = "CANCELLED"
	StatusReturnRequested Status = "RETURN_REQUESTED"
	StatusReturnApproved  Status = "RETURN_APPROVED"
	StatusReturnRejected  Status = "RETURN_REJECTED"
	StatusReturned        Status = "RETURNED"
)

// statusGraph is the adjacency set of permitted transitions.
var statusGraph = map[Status][]Status{
	StatusPending:         {StatusPreparing, StatusCancelled},
	StatusPreparing:       {StatusDelivering, StatusCancelled},
	StatusDelivering:      {StatusDelivered, StatusCancelled},
	StatusDelivered:       {StatusCompleted, StatusReturnRequested},
	StatusCompleted:       {StatusReturnRequested},
	StatusReturnRequested: {StatusReturnApproved, StatusReturnRejected},
	StatusReturnApproved:  {StatusReturned},
	StatusCancelled:       {},
	StatusReturnRejected:  {},
	StatusReturned:        {},
}

// ParseStatus validates a status label from the wire.
func ParseStatus(label string) (Status, error) {
	s := Status(label)
	if _, ok := statusGraph[s]; !ok {
		return "", apperrors.WithMetadata(apperrors.CodeComboUnknownStatus,
			fmt.Sprintf("unknown fulfillment status %q", label),
			map[string]string{"Status": label})
	}
	return s, nil
}

// ValidNext returns the permitted target statuses, sorted for stable output.
func ValidNext(from Status) []Status {
	next := statusGraph[from]
	out := make([]Status, len(next))
	copy(out, next)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanTransition reports whether the from→to edge exists in the status graph.
func CanTransition(from, to Status) bool {
	for _, s := range statusGraph[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no outgoing transition exists.
func IsTerminal(s Status) bool {
	return len(statusGraph[s]) == 0
}

// CheckTransition validates a requested from→to transition and returns a
// structured validation error naming the valid next statuses on failure.
func CheckTransition(from, to Status) error {
	if _, ok := statusGraph[from]; !ok {
		return apperrors.WithMetadata(apperrors.CodeComboUnknownStatus,
			fmt.Sprintf("unknown fulfillment status %q", from),
			map[string]string{"Status": string(from)})
	}
	if _, ok := statusGraph[to]; !ok {
		return apperrors.WithMetadata(apperrors.CodeComboUnknownStatus,
			fmt.Sprintf("unknown fulfillment status %q", to),
			map[string]string{"Status": string(to)})
	}
	if from == to {
		return apperrors.WithMetadata(apperrors.CodeComboSelfTransition,
			fmt.Sprintf("combo is already %s", from),
			map[string]string{"Status": string(from)})
	}
	if !CanTransition(from, to) {
		return apperrors.WithMetadata(apperrors.CodeComboInvalidStatusTransition,
			fmt.Sprintf("cannot move fulfillment from %s to %s", from, to),
			map[string]string{
				"FromStatus": string(from),
				"ToStatus":   string(to),
				"ValidNext":  statusLabels(ValidNext(from)),
			})
	}
	return nil
}

func statusLabels(statuses []Status) string {
	if len(statuses) == 0 {
		return "none"
	}
	out := ""
	for i, s := range statuses {
		if i > 0 {
			out += ", "
		}
		out += string(s)
	}
	return out
}
