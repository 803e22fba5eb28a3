package gemini

import (
	"context"
	"testing"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "", "")
	if err != ErrMissingAPIKey {
		t.Fatalf("New() error = %v, want %v", err, ErrMissingAPIKey)
	}
}

func TestNewDefaultsModel(t *testing.T) {
	c, err := New(context.Background(), "test-key", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.Model(); got != DefaultModel {
		t.Errorf("Model() = %q, want %q", got, DefaultModel)
	}
}
