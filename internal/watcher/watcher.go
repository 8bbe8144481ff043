package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/JPM1118/assetconv/internal/convert"
)

// Config holds watcher configuration.
type Config struct {
	Input        string
	PollInterval time.Duration
}

// Update is sent after every conversion attempt.
type Update struct {
	State State
	// Result is nil when the attempt failed.
	Result *convert.Result
	// Changed is true when the status differs from the previous attempt.
	Changed bool
}

// Watcher re-runs a conversion whenever its input changes.
type Watcher struct {
	conv      convert.Converter
	cfg       Config
	state     State
	lastPrint string
	updateCh  chan Update
	triggerCh chan struct{}
	mu        sync.Mutex
}

// New creates a watcher. Call Start() to begin polling.
func New(conv convert.Converter, cfg Config) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Watcher{
		conv:      conv,
		cfg:       cfg,
		state:     State{Input: cfg.Input, Status: StatusPending},
		updateCh:  make(chan Update, 4),
		triggerCh: make(chan struct{}, 1),
	}
}

// Updates returns the channel that receives conversion updates.
func (w *Watcher) Updates() <-chan Update {
	return w.updateCh
}

// State returns a snapshot of the current state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start runs the polling loop in the background until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// TriggerNow requests an immediate conversion, even if the input is unchanged.
func (w *Watcher) TriggerNow() {
	select {
	case w.triggerCh <- struct{}{}:
	default:
		// Already triggered, skip
	}
}

func (w *Watcher) run(ctx context.Context) {
	w.cycle(ctx, true)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cycle(ctx, false)
		case <-w.triggerCh:
			w.cycle(ctx, true)
			ticker.Reset(w.cfg.PollInterval)
		}
	}
}

// cycle converts the input if it changed since the last successful run.
// force skips both the change check and the failure backoff.
func (w *Watcher) cycle(ctx context.Context, force bool) {
	now := time.Now()

	w.mu.Lock()
	ready := force || w.state.ShouldRun(now)
	w.mu.Unlock()
	if !ready {
		return
	}

	fp, err := w.conv.Fingerprint()
	if err != nil {
		w.fail(ctx, now, err)
		return
	}

	w.mu.Lock()
	unchanged := fp == w.lastPrint && w.state.Status == StatusOK
	w.mu.Unlock()
	if unchanged && !force {
		return
	}

	res, err := w.conv.Convert(ctx)
	if err != nil {
		w.fail(ctx, now, err)
		return
	}

	w.mu.Lock()
	w.lastPrint = fp
	changed := w.state.RecordSuccess(now)
	w.mu.Unlock()

	w.emit(Update{State: w.State(), Result: &res, Changed: changed})
}

func (w *Watcher) fail(ctx context.Context, now time.Time, err error) {
	if ctx.Err() != nil {
		return // shutting down
	}
	w.mu.Lock()
	changed := w.state.RecordFailure(w.cfg.PollInterval, now, err)
	w.mu.Unlock()

	w.emit(Update{State: w.State(), Changed: changed})
}

func (w *Watcher) emit(u Update) {
	// Non-blocking send: if the channel is full, drop the oldest
	select {
	case w.updateCh <- u:
	default:
		select {
		case <-w.updateCh:
		default:
		}
		select {
		case w.updateCh <- u:
		default:
		}
	}
}
