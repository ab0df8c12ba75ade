package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
)

// DeliveryType identifies how a seller hands a combo to the customer.
type DeliveryType string

const (
	// DeliveryManual is an in-person handoff; no carrier tracking exists.
	DeliveryManual DeliveryType = "MANUAL"
	// DeliveryStandard is a regular carrier shipment.
	DeliveryStandard DeliveryType = "STANDARD"
	// DeliveryExpress is an expedited carrier shipment.
	DeliveryExpress DeliveryType = "EXPRESS"
)

var deliveryTypes = map[DeliveryType]bool{
	DeliveryManual:   true,
	DeliveryStandard: true,
	DeliveryExpress:  true,
}

// DeliveryInfo is the shipment metadata required to move a combo into
// DELIVERING.
type DeliveryInfo struct {
	Type         DeliveryType
	TrackingCode string
}

// Validate enforces the DELIVERING prerequisites: a known delivery type,
// and a tracking code for any carrier shipment.
func (d DeliveryInfo) Validate() error {
	if d.Type == "" {
		return apperrors.New(apperrors.CodeComboDeliveryTypeRequired,
			"delivery type is required to start delivering")
	}
	if !deliveryTypes[d.Type] {
		return apperrors.WithMetadata(apperrors.CodeComboDeliveryTypeRequired,
			fmt.Sprintf("unknown delivery type %q", d.Type),
			map[string]string{"DeliveryType": string(d.Type)})
	}
	if d.Type != DeliveryManual && strings.TrimSpace(d.TrackingCode) == "" {
		return apperrors.WithMetadata(apperrors.CodeComboTrackingCodeRequired,
			"tracking code is required for carrier delivery",
			map[string]string{"DeliveryType": string(d.Type)})
	}
	return nil
}

// ValidateEvidence enforces the DELIVERED prerequisite: at least one
// non-empty evidence image URL.
func ValidateEvidence(images []string) error {
	count := 0
	for _, url := range images {
		if strings.TrimSpace(url) != "" {
			count++
		}
	}
	if count == 0 {
		return apperrors.New(apperrors.CodeComboEvidenceRequired,
			"at least one delivery evidence image is required")
	}
	return nil
}
