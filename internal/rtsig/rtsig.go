// Package rtsig bridges POSIX real-time signals to in-process wake events.
//
// An external `kill -$((SIGRTMIN+n)) <pid>` is the conventional way to ask
// a status bar to refresh one module immediately. This package converts
// those signals into receives on per-module wake channels:
//
//   - [Bridge.Bind] reserves a signal index and returns its wake channel
//   - [Bridge.Start] registers the bound signals and runs the dispatch loop
//
// The dispatch loop is an ordinary goroutine reading from an os/signal
// channel, so waking a producer involves no signal-handler-safety
// restrictions. Delivery is deliberately lossy: wake channels have
// capacity one, and rapid repeated signals coalesce into a single wake.
// Every wake triggers a full recompute, so nothing is lost.
package rtsig

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Signal indices are offsets from SIGRTMIN. The kernel provides more
// real-time signals than this, but the configuration surface caps the
// range so bindings stay within what every libc reserves for programs.
const (
	MinIndex = 0
	MaxIndex = 30
)

// rtMin is SIGRTMIN on Linux. The Go runtime does not expose the libc
// constant; 34 accounts for the two signals glibc reserves internally.
const rtMin = 34

// SignalFor returns the OS signal for a real-time signal index, or an
// error if the index is outside [MinIndex, MaxIndex].
func SignalFor(index int) (syscall.Signal, error) {
	if index < MinIndex || index > MaxIndex {
		return 0, fmt.Errorf("real-time signal index must be between %d and %d, got %d", MinIndex, MaxIndex, index)
	}
	return syscall.Signal(rtMin + index), nil
}

// Source abstracts signal registration so tests can deliver signals
// without involving the OS.
type Source interface {
	// Notify registers the channel to receive the given signals.
	Notify(c chan<- os.Signal, sig ...os.Signal)

	// Stop unregisters the channel.
	Stop(c chan<- os.Signal)
}

// osSource is the production [Source], delegating to os/signal.
type osSource struct{}

func (osSource) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (osSource) Stop(c chan<- os.Signal)                     { signal.Stop(c) }

// Bridge owns the table from bound signal indices to wake channels.
//
// All Bind calls must happen before Start. The table is read-only once
// the dispatch loop is running, so lookups need no locking.
type Bridge struct {
	source Source
	wakes  map[int]chan struct{}
	sigCh  chan os.Signal
	logger *slog.Logger
}

// NewBridge creates a [Bridge] using the real OS signal source.
func NewBridge(logger *slog.Logger) *Bridge {
	return newBridge(osSource{}, logger)
}

// newBridge is the injectable constructor used by tests.
func newBridge(source Source, logger *slog.Logger) *Bridge {
	return &Bridge{
		source: source,
		wakes:  make(map[int]chan struct{}),
		// buffered so a burst of signals is not dropped by the runtime
		// while the dispatch loop is mid-iteration
		sigCh:  make(chan os.Signal, 64),
		logger: logger,
	}
}

// Bind reserves the given signal index and returns the channel that will
// receive a wake each time the signal is delivered. An index outside the
// valid range or already bound is a configuration error.
func (b *Bridge) Bind(index int) (<-chan struct{}, error) {
	if _, err := SignalFor(index); err != nil {
		return nil, err
	}
	if _, taken := b.wakes[index]; taken {
		return nil, fmt.Errorf("real-time signal index %d is bound twice", index)
	}
	ch := make(chan struct{}, 1)
	b.wakes[index] = ch
	return ch, nil
}

// Start registers every bound signal with the source and launches the
// dispatch loop. The loop runs until ctx is done. Start must be called
// after all Bind calls; binding after Start is not supported.
func (b *Bridge) Start(ctx context.Context) {
	if len(b.wakes) == 0 {
		return
	}
	sigs := make([]os.Signal, 0, len(b.wakes))
	for index := range b.wakes {
		sig, _ := SignalFor(index) // indices were validated in Bind
		sigs = append(sigs, sig)
	}
	b.source.Notify(b.sigCh, sigs...)

	go func() {
		defer b.source.Stop(b.sigCh)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-b.sigCh:
				b.dispatch(sig)
			}
		}
	}()
}

// dispatch wakes the producer bound to the delivered signal. Signals
// outside the real-time range, or in range but unbound, are ignored
// without logging an error — the documented fail-silent policy.
func (b *Bridge) dispatch(sig os.Signal) {
	num, ok := sig.(syscall.Signal)
	if !ok {
		return
	}
	index := int(num) - rtMin
	if index < MinIndex || index > MaxIndex {
		return
	}
	wake, bound := b.wakes[index]
	if !bound {
		return
	}
	select {
	case wake <- struct{}{}:
		b.logger.Debug("signal wake delivered", "signal_index", index)
	default:
		// a wake is already pending; coalesce
	}
}
