package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestBreakerProvider_PassesThrough(t *testing.T) {
	inner := &stubProvider{name: "stub"}
	provider := NewBreakerProvider(inner)

	outputFile := filepath.Join(t.TempDir(), "out.mp3")
	if err := provider.GenerateAudio(context.Background(), "das Haus", outputFile); err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("Expected 1 inner call, got %d", inner.calls)
	}
	if provider.Name() != "stub" {
		t.Errorf("Breaker should report the inner provider name, got '%s'", provider.Name())
	}
}

func TestBreakerProvider_TripsAfterConsecutiveFailures(t *testing.T) {
	inner := &stubProvider{name: "stub", err: fmt.Errorf("service down")}
	provider := NewBreakerProvider(inner)

	outputFile := filepath.Join(t.TempDir(), "out.mp3")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := provider.GenerateAudio(ctx, "das Haus", outputFile); err == nil {
			t.Fatalf("Call %d should have failed", i+1)
		}
	}

	if inner.calls != 5 {
		t.Fatalf("Expected 5 inner calls before tripping, got %d", inner.calls)
	}

	// Breaker is open now: the next call fails without reaching the provider.
	err := provider.GenerateAudio(ctx, "das Haus", outputFile)
	if err == nil {
		t.Fatal("Expected error from open breaker")
	}
	if !strings.Contains(err.Error(), "temporarily disabled") {
		t.Errorf("Expected open-breaker error, got: %v", err)
	}
	if inner.calls != 5 {
		t.Errorf("Open breaker still reached the provider: %d calls", inner.calls)
	}

	if provider.IsAvailable() == nil {
		t.Error("Open breaker should report unavailable")
	}
}

func TestBreakerProvider_RecoversAfterSuccess(t *testing.T) {
	inner := &stubProvider{name: "stub", err: fmt.Errorf("flaky")}
	provider := NewBreakerProvider(inner)

	outputFile := filepath.Join(t.TempDir(), "out.mp3")
	ctx := context.Background()

	// A few failures, but below the trip threshold.
	for i := 0; i < 4; i++ {
		provider.GenerateAudio(ctx, "das Haus", outputFile)
	}

	inner.err = nil
	if err := provider.GenerateAudio(ctx, "das Haus", outputFile); err != nil {
		t.Fatalf("Recovered provider should succeed: %v", err)
	}
	if provider.IsAvailable() != nil {
		t.Error("Closed breaker should report available")
	}
}
