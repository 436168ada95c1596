// Package schedule implements the diagnostics server: a single dedicated
// worker that receives update/clear messages and fans each update out to
// three chained generator tasks (type-check, module resolution, lint),
// cancelling and rechaining on every new update so producers never race
// each other but never block the update channel either.
package schedule

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/webtools-dev/tsdiag/internal/diag"
	"github.com/webtools-dev/tsdiag/internal/store"
)

// ErrNotStarted is returned by SendUpdate when called before Start has
// launched the worker goroutine.
var ErrNotStarted = errors.New("diagnostics server not started")

// typeCheckDebounce is the delay the type-check task waits after the prior
// chain link completes, before actually calling the external checker.
// 150ms between keystrokes is about 45 WPM, so this needs to be longer
// than that but short enough not to read as UI lag; 200ms is the
// compromise the rest of this design inherits.
const typeCheckDebounce = 200 * time.Millisecond

// Update carries everything a scheduled pass needs to generate all three
// diagnostic streams for the current workspace state.
type Update struct {
	Snapshot Snapshot
}

// Snapshot is opaque to the scheduler: it is handed unchanged to each of
// the three Generators.
type Snapshot any

// Generators bundles the three per-source diagnostic producers the
// scheduler drives. Each receives the context for its chain (carrying
// cancellation) and the snapshot from the triggering Update.
type Generators struct {
	TypeCheck func(ctx context.Context, snapshot Snapshot) (store.Vec, error)
	Module    func(ctx context.Context, snapshot Snapshot) (store.Vec, error)
	Lint      func(ctx context.Context, snapshot Snapshot) (store.Vec, error)
}

// Publisher is the subset of internal/publish.Publisher the scheduler
// needs.
type Publisher interface {
	Publish(ctx context.Context, source diag.Source, batch store.Vec) int
	Clear()
}

// TsStore receives the type-check chain's batch before publication, so
// readers see the new store contents no later than the new diagnostics
// hit the editor.
type TsStore interface {
	Update(batch store.Vec)
}

// BatchNotifier is called after every chain finishes, when batch-index
// notifications are enabled, so a test or client awaiting a specific
// generation can be unblocked even when cancellation produced zero
// messages.
type BatchNotifier interface {
	NotifyBatch(source diag.Source, batchIndex, messagesLen int)
}

type message struct {
	update *Update // nil for a Clear message
	batch  int     // 0 when batch notifications are disabled
}

// Server is the running scheduler. Construct with New and start the
// worker with Start; send work with SendUpdate/SendClear.
type Server struct {
	logger     *slog.Logger
	generators Generators
	publisher  Publisher
	tsStore    TsStore
	notifier   BatchNotifier // nil disables batch notifications

	ch      chan message
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	started atomic.Bool
}

// New constructs a Server. Call Start to begin processing; SendUpdate
// returns ErrNotStarted until Start has been called.
func New(logger *slog.Logger, generators Generators, publisher Publisher, tsStore TsStore) *Server {
	s := &Server{
		logger:     logger,
		generators: generators,
		publisher:  publisher,
		tsStore:    tsStore,
		ch:         make(chan message, 64),
	}
	if shouldSendBatchNotifications() {
		s.notifier = noopNotifier{} // replaced by SetNotifier in real wiring
	}
	return s
}

// SetNotifier installs a batch notifier, overriding the default no-op
// used when batch notifications are enabled but no client wired one up.
func (s *Server) SetNotifier(n BatchNotifier) {
	s.notifier = n
}

// shouldSendBatchNotifications gates the per-batch completion
// notification behind an environment variable, matching the original
// implementation's internal sync flag: most editors don't need it, but
// tests and clients doing their own backpressure can opt in.
func shouldSendBatchNotifications() bool {
	_, ok := os.LookupEnv("TSDIAG_DIAGNOSTIC_BATCH_NOTIFICATIONS")
	return ok
}

type noopNotifier struct{}

func (noopNotifier) NotifyBatch(diag.Source, int, int) {}

var batchCounter struct {
	mu  sync.Mutex
	cur int
}

func nextBatchIndex() int {
	batchCounter.mu.Lock()
	defer batchCounter.mu.Unlock()
	batchCounter.cur++
	return batchCounter.cur
}

// Start launches the dedicated worker goroutine. It returns once the
// worker is ready to receive.
func (s *Server) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.started.Store(true)
	go s.run(ctx)
}

// Stop cancels all in-flight chains and waits for the worker to exit.
func (s *Server) Stop() {
	close(s.ch)
	s.wg.Wait()
}

// SendUpdate enqueues a new workspace snapshot to diagnose. It never
// blocks on in-flight generator work — only on the (buffered) channel
// send itself. Calling it before Start returns ErrNotStarted without
// touching the channel.
func (s *Server) SendUpdate(snapshot Snapshot) error {
	if !s.started.Load() {
		return ErrNotStarted
	}
	batch := 0
	if s.notifier != nil {
		batch = nextBatchIndex()
	}
	s.ch <- message{update: &Update{Snapshot: snapshot}, batch: batch}
	return nil
}

// SendClear cancels all in-flight chains and empties the publisher.
func (s *Server) SendClear() {
	s.ch <- message{}
}

func (s *Server) run(ctx context.Context) {
	defer s.wg.Done()

	token, tokenCancel := context.WithCancel(ctx)
	var typeDone, moduleDone, lintDone chan struct{}

	for msg := range s.ch {
		if msg.update == nil {
			tokenCancel()
			token, tokenCancel = context.WithCancel(ctx)
			s.publisher.Clear()
			continue
		}

		tokenCancel()
		token, tokenCancel = context.WithCancel(ctx)
		thisToken := token

		previousType, previousModule, previousLint := typeDone, moduleDone, lintDone
		typeDone = make(chan struct{})
		moduleDone = make(chan struct{})
		lintDone = make(chan struct{})

		go s.runChain(thisToken, previousType, typeDone, diag.SourceTypeCheck, msg.batch, msg.update.Snapshot, true)
		go s.runChain(thisToken, previousModule, moduleDone, diag.SourceModule, msg.batch, msg.update.Snapshot, false)
		go s.runChain(thisToken, previousLint, lintDone, diag.SourceLint, msg.batch, msg.update.Snapshot, false)
	}
	tokenCancel()
}

// runChain waits for the previous link in this source's chain, optionally
// debounces, runs the generator, publishes, and (when requested) notifies
// batch completion unconditionally — even when cancelled — so a client
// awaiting batch_index is never wedged.
func (s *Server) runChain(token context.Context, previous <-chan struct{}, done chan<- struct{}, source diag.Source, batch int, snapshot Snapshot, debounce bool) {
	defer close(done)

	if previous != nil {
		<-previous
	}

	if debounce {
		select {
		case <-token.Done():
			if s.notifier != nil && batch != 0 {
				s.notifier.NotifyBatch(source, batch, 0)
			}
			return
		case <-time.After(typeCheckDebounce):
		}
	}

	generator := s.generatorFor(source)
	result, err := generator(token, snapshot)
	if err != nil {
		if token.Err() == nil {
			s.logger.Error("generating diagnostics", "source", source.Label(), "error", err)
		}
		result = nil
	}

	messagesLen := 0
	if token.Err() == nil {
		if source == diag.SourceTypeCheck {
			s.tsStore.Update(result)
		}
		messagesLen = s.publisher.Publish(token, source, result)
	}

	if s.notifier != nil && batch != 0 {
		s.notifier.NotifyBatch(source, batch, messagesLen)
	}
}

func (s *Server) generatorFor(source diag.Source) func(context.Context, Snapshot) (store.Vec, error) {
	switch source {
	case diag.SourceTypeCheck:
		return s.generators.TypeCheck
	case diag.SourceModule:
		return s.generators.Module
	default:
		return s.generators.Lint
	}
}
