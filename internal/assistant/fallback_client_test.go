package assistant

import (
	"context"
	"errors"
	"testing"
)

func TestFallbackClientPrimarySucceeds(t *testing.T) {
	primary := &stubLLM{resp: LLMResponse{Text: "primary"}}
	secondary := &stubLLM{resp: LLMResponse{Text: "secondary"}}
	client := NewFallbackLLMClient(primary, secondary, nil)

	resp, err := client.Complete(context.Background(), LLMRequest{})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if resp.Text != "primary" {
		t.Errorf("expected primary response, got %q", resp.Text)
	}
	if secondary.calls != 0 {
		t.Error("secondary should not be called when primary succeeds")
	}
}

func TestFallbackClientUsesSecondary(t *testing.T) {
	primary := &stubLLM{err: errors.New("primary down")}
	secondary := &stubLLM{resp: LLMResponse{Text: "secondary"}}
	client := NewFallbackLLMClient(primary, secondary, nil)

	resp, err := client.Complete(context.Background(), LLMRequest{})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if resp.Text != "secondary" {
		t.Errorf("expected secondary response, got %q", resp.Text)
	}
}

func TestFallbackClientNoSecondary(t *testing.T) {
	primary := &stubLLM{err: errors.New("primary down")}
	client := NewFallbackLLMClient(primary, nil, nil)

	if _, err := client.Complete(context.Background(), LLMRequest{}); err == nil {
		t.Fatal("expected error when primary fails with no secondary")
	}
}

func TestFallbackClientBothFail(t *testing.T) {
	primary := &stubLLM{err: errors.New("primary down")}
	secondary := &stubLLM{err: errors.New("secondary down")}
	client := NewFallbackLLMClient(primary, secondary, nil)

	_, err := client.Complete(context.Background(), LLMRequest{})
	if err == nil || err.Error() != "secondary down" {
		t.Fatalf("expected the last attempt's error, got %v", err)
	}
}
