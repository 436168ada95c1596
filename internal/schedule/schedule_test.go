package schedule_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/webtools-dev/tsdiag/internal/diag"
	"github.com/webtools-dev/tsdiag/internal/schedule"
	"github.com/webtools-dev/tsdiag/internal/store"
)

type fakePublisher struct {
	mu    sync.Mutex
	calls []struct {
		source diag.Source
		count  int
	}
}

func (p *fakePublisher) Publish(_ context.Context, source diag.Source, batch store.Vec) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, struct {
		source diag.Source
		count  int
	}{source, len(batch)})
	return len(batch)
}

func (p *fakePublisher) Clear() {}

func (p *fakePublisher) callCount(source diag.Source) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c.source == source {
			n++
		}
	}
	return n
}

type fakeTsStore struct{}

func (fakeTsStore) Update(store.Vec) {}

type notification struct {
	source      diag.Source
	batchIndex  int
	messagesLen int
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (n *fakeNotifier) NotifyBatch(source diag.Source, batchIndex, messagesLen int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{source, batchIndex, messagesLen})
}

func (n *fakeNotifier) snapshot() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.calls...)
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

// TestSchedulerCancelsSupersededTypeCheck: enqueuing two updates in rapid
// succession cancels the first update's debounced type-check task before
// it ever calls the generator, while the batch-completion notification for
// the first batch is still delivered with messages_len=0.
func TestSchedulerCancelsSupersededTypeCheck(t *testing.T) {
	os.Setenv("TSDIAG_DIAGNOSTIC_BATCH_NOTIFICATIONS", "1")
	defer os.Unsetenv("TSDIAG_DIAGNOSTIC_BATCH_NOTIFICATIONS")

	var typeCheckCalls int32
	generators := schedule.Generators{
		TypeCheck: func(ctx context.Context, snapshot schedule.Snapshot) (store.Vec, error) {
			atomic.AddInt32(&typeCheckCalls, 1)
			return store.Vec{{Specifier: "file:///a.ts"}}, nil
		},
		Module: func(ctx context.Context, snapshot schedule.Snapshot) (store.Vec, error) {
			return store.Vec{}, nil
		},
		Lint: func(ctx context.Context, snapshot schedule.Snapshot) (store.Vec, error) {
			return store.Vec{}, nil
		},
	}

	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := schedule.New(logger, generators, publisher, fakeTsStore{})
	server.SetNotifier(notifier)

	ctx := context.Background()
	server.Start(ctx)
	defer server.Stop()

	server.SendUpdate("snapshot-1")
	server.SendUpdate("snapshot-2") // enqueued well within the 200ms debounce window

	// Wait for both batches' type-check notifications to land.
	waitUntil(t, time.Second, func() bool {
		typeChecks := 0
		for _, n := range notifier.snapshot() {
			if n.source == diag.SourceTypeCheck {
				typeChecks++
			}
		}
		return typeChecks >= 2
	})

	// Batch indices come from a package-global counter shared across the
	// whole test binary, so don't assume literal values of 1 and 2 —
	// instead take the first two type-check notifications observed, in
	// the order the notifier recorded them.
	var typeCheckNotifications []notification
	for _, n := range notifier.snapshot() {
		if n.source == diag.SourceTypeCheck {
			typeCheckNotifications = append(typeCheckNotifications, n)
		}
	}
	if len(typeCheckNotifications) < 2 {
		t.Fatalf("got %d type-check notifications, want at least 2", len(typeCheckNotifications))
	}
	batch1, batch2 := typeCheckNotifications[0], typeCheckNotifications[1]
	if batch1.batchIndex == batch2.batchIndex {
		t.Fatalf("both notifications share batch index %d, want distinct batches", batch1.batchIndex)
	}
	if batch1.messagesLen != 0 {
		t.Errorf("first batch's type-check messages_len = %d, want 0 (cancelled before debounce elapsed)", batch1.messagesLen)
	}

	if got := atomic.LoadInt32(&typeCheckCalls); got != 1 {
		t.Errorf("type-check generator called %d times, want exactly 1 (only the surviving batch)", got)
	}
	if publisher.callCount(diag.SourceTypeCheck) != 1 {
		t.Errorf("publisher invoked for type-check %d times, want 1", publisher.callCount(diag.SourceTypeCheck))
	}
}

// TestSendUpdateBeforeStartReturnsError covers the synchronous
// not-started error SendUpdate owes its caller when the worker goroutine
// was never launched.
func TestSendUpdateBeforeStartReturnsError(t *testing.T) {
	generators := schedule.Generators{
		TypeCheck: func(ctx context.Context, s schedule.Snapshot) (store.Vec, error) { return nil, nil },
		Module:    func(ctx context.Context, s schedule.Snapshot) (store.Vec, error) { return nil, nil },
		Lint:      func(ctx context.Context, s schedule.Snapshot) (store.Vec, error) { return nil, nil },
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := schedule.New(logger, generators, &fakePublisher{}, fakeTsStore{})

	err := server.SendUpdate("snapshot")
	if !errors.Is(err, schedule.ErrNotStarted) {
		t.Errorf("SendUpdate before Start returned %v, want %v", err, schedule.ErrNotStarted)
	}
}

func TestSchedulerClearResetsPublisher(t *testing.T) {
	generators := schedule.Generators{
		TypeCheck: func(ctx context.Context, s schedule.Snapshot) (store.Vec, error) { return nil, nil },
		Module:    func(ctx context.Context, s schedule.Snapshot) (store.Vec, error) { return nil, nil },
		Lint:      func(ctx context.Context, s schedule.Snapshot) (store.Vec, error) { return nil, nil },
	}
	var cleared int32
	publisher := &clearTrackingPublisher{fakePublisher: &fakePublisher{}, cleared: &cleared}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := schedule.New(logger, generators, publisher, fakeTsStore{})

	server.Start(context.Background())
	defer server.Stop()

	server.SendClear()
	waitUntil(t, time.Second, func() bool { return atomic.LoadInt32(&cleared) == 1 })
}

type clearTrackingPublisher struct {
	*fakePublisher
	cleared *int32
}

func (p *clearTrackingPublisher) Clear() {
	atomic.AddInt32(p.cleared, 1)
}
