package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func trippableConfig() Config {
	return Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestExecute_Success(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.(string) != "ok" {
		t.Errorf("expected result 'ok', got %v", result)
	}
	if cb.IsOpen() {
		t.Error("breaker should remain closed after success")
	}
}

func TestExecute_TripsAfterFailures(t *testing.T) {
	cb := New(trippableConfig())
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, boom
		})
	}

	if !cb.IsOpen() {
		t.Fatalf("breaker should be open after repeated failures, state=%v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		t.Error("function must not run while circuit is open")
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestName(t *testing.T) {
	cb := New(ClaudeAPIConfig())
	if cb.Name() != "claude-api" {
		t.Errorf("expected name 'claude-api', got %q", cb.Name())
	}
}
