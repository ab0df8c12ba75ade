package otel_test

import (
	"context"
	"testing"

	"github.com/wharfside/marketplace/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("WHARFSIDE_OTEL_ENDPOINT", "")
	t.Setenv("WHARFSIDE_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("WHARFSIDE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("WHARFSIDE_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Use a non-routable address so no actual export happens.
	t.Setenv("WHARFSIDE_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("WHARFSIDE_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Shutdown should flush cleanly even though the endpoint is unreachable.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
