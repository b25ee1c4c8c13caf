package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"courierbot/internal/store"
	logx "courierbot/pkg/logx"
)

// faultyStore wraps a real store and fails reads for selected threads.
type faultyStore struct {
	store.Store
	badReads map[string]bool
}

func (f *faultyStore) Get(ctx context.Context, threadID string) (int64, bool, error) {
	if f.badReads[threadID] {
		return 0, false, errors.New("corrupt entry")
	}
	return f.Store.Get(ctx, threadID)
}

func TestSweepBoundary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	st := store.NewMemory()

	// 1801s old: past the window, must go. 1799s old: still fresh, must stay.
	if err := st.Put(ctx, "t3_old", now.Unix()-1801, 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Put(ctx, "t3_fresh", now.Unix()-1799, 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Exactly one window old: age >= window means expired.
	if err := st.Put(ctx, "t3_exact", now.Unix()-1800, 0); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := New(st, 30*time.Minute, logx.Nop(), WithClock(func() time.Time { return now }))
	if removed := s.Sweep(ctx, now); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	if _, ok, _ := st.Get(ctx, "t3_old"); ok {
		t.Fatal("expired marker survived sweep")
	}
	if _, ok, _ := st.Get(ctx, "t3_exact"); ok {
		t.Fatal("boundary marker survived sweep")
	}
	if _, ok, _ := st.Get(ctx, "t3_fresh"); !ok {
		t.Fatal("fresh marker was swept")
	}
}

func TestSweepSkipsUnreadableEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	mem := store.NewMemory()
	_ = mem.Put(ctx, "t3_bad", now.Unix()-9999, 0)
	_ = mem.Put(ctx, "t3_old", now.Unix()-9999, 0)

	st := &faultyStore{Store: mem, badReads: map[string]bool{"t3_bad": true}}
	s := New(st, 30*time.Minute, logx.Nop())

	// The unreadable entry must not abort the pass; the readable one goes.
	if removed := s.Sweep(ctx, now); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok, _ := mem.Get(ctx, "t3_old"); ok {
		t.Fatal("readable expired marker survived sweep")
	}
	if _, ok, _ := mem.Get(ctx, "t3_bad"); !ok {
		t.Fatal("unreadable marker should be left for the next pass")
	}
}

func TestSweepEmptyStore(t *testing.T) {
	t.Parallel()
	s := New(store.NewMemory(), 30*time.Minute, logx.Nop())
	if removed := s.Sweep(context.Background(), time.Now()); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
}
