package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	logx "courierbot/pkg/logx"
)

// The memory and sqlite drivers share one contract: no native expiry,
// last-write-wins Put, idempotent Delete, Keys listing for the sweeper.
func sweptStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := Open(Config{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "markers.db"),
		BusyTimeout: time.Second,
	}, logx.Nop())
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestSweptStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, st := range sweptStores(t) {
		t.Run(name, func(t *testing.T) {
			if st.NativeTTL() {
				t.Fatalf("%s store must not report native TTL", name)
			}
			if err := st.Ping(ctx); err != nil {
				t.Fatalf("Ping: %v", err)
			}

			if _, ok, err := st.Get(ctx, "t3_x"); err != nil || ok {
				t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
			}

			if err := st.Put(ctx, "t3_x", 100, 30*time.Minute); err != nil {
				t.Fatalf("Put: %v", err)
			}
			// Overwrite: at most one marker per thread, last write wins.
			if err := st.Put(ctx, "t3_x", 200, 30*time.Minute); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			ts, ok, err := st.Get(ctx, "t3_x")
			if err != nil || !ok || ts != 200 {
				t.Fatalf("Get = (%d, %v, %v), want (200, true, nil)", ts, ok, err)
			}

			if err := st.Put(ctx, "t3_y", 300, 30*time.Minute); err != nil {
				t.Fatalf("Put second thread: %v", err)
			}
			keys, err := st.Keys(ctx)
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if len(keys) != 2 {
				t.Fatalf("Keys = %v, want 2 entries", keys)
			}

			if err := st.Delete(ctx, "t3_x"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := st.Delete(ctx, "t3_x"); err != nil {
				t.Fatalf("Delete absent: %v", err)
			}
			if _, ok, _ := st.Get(ctx, "t3_x"); ok {
				t.Fatal("marker survived Delete")
			}
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "etcd"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenDefaultsToMemory(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()
	if st.NativeTTL() {
		t.Fatal("memory store must not report native TTL")
	}
}
