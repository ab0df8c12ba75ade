// Package voucher calls the remote voucher collaborator to validate and
// apply discount codes during order intake.
package voucher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
	"github.com/wharfside/marketplace/internal/platform/timeouts"
)

// Client talks to the voucher service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Discount is the validated outcome for a voucher code.
type Discount struct {
	Code   string
	Amount int64
}

// NewClient creates a voucher client for the given base URL. An empty base
// URL yields a disabled client: Validate rejects every code.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.RemoteCall}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// Enabled reports whether a voucher endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discount"`
	Reason   string `json:"reason"`
}

// Validate checks a voucher code against an order total. A rejected code is
// a validation error; transport trouble or a timeout is an action failure.
func (c *Client) Validate(ctx context.Context, code string, orderTotal int64) (Discount, error) {
	if !c.Enabled() {
		return Discount{}, apperrors.WithMetadata(apperrors.CodeVoucherRejected,
			"voucher service is not configured",
			map[string]string{"Code": code})
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.RemoteCall)
	defer cancel()

	var response validateResponse
	err := c.post(ctx, "/vouchers/validate", map[string]any{
		"code":  code,
		"total": orderTotal,
	}, &response)
	if err != nil {
		return Discount{}, err
	}
	if !response.Valid {
		reason := response.Reason
		if reason == "" {
			reason = "voucher rejected"
		}
		return Discount{}, apperrors.WithMetadata(apperrors.CodeVoucherRejected,
			reason, map[string]string{"Code": code})
	}
	return Discount{Code: code, Amount: response.Discount}, nil
}

// Apply consumes a validated voucher for a persisted order. The order
// stands even when apply fails; the caller surfaces the failure.
func (c *Client) Apply(ctx context.Context, code, orderID string) error {
	if !c.Enabled() {
		return apperrors.New(apperrors.CodeActionFailed,
			"voucher service is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.RemoteCall)
	defer cancel()

	return c.post(ctx, "/vouchers/apply", map[string]any{
		"code":     code,
		"order_id": orderID,
	}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeActionFailed, "encode voucher request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeActionFailed, "build voucher request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeActionFailed, "call voucher service", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return apperrors.New(apperrors.CodeActionFailed,
			fmt.Sprintf("voucher service returned status %d", resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.CodeActionFailed, "decode voucher response", err)
	}
	return nil
}
