package factory

import (
	"context"
	"testing"

	"github.com/happythoughts/thoughts-service/internal/config"
)

func TestNewStoreSQLite(t *testing.T) {
	cfg := config.NewForTesting()
	st, err := NewStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewStore returned error for sqlite: %v", err)
	}
	if st == nil {
		t.Fatalf("expected store instance, got nil")
	}
	if err := st.HealthPing(context.Background()); err != nil {
		t.Fatalf("health ping failed: %v", err)
	}
}

func TestNewStoreUnknownDriver(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "oracle"
	if _, err := NewStore(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
