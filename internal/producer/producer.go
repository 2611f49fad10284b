package producer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/barline/barline/internal/slots"
)

// ComputeFunc performs one refresh: fetch the underlying data and format
// it as a single bar field.
//
// ok reports whether the refresh produced a value to publish. A false
// return means the data source was unavailable this cycle and the
// previous slot content must be retained. ComputeFunc never returns an
// error: data-source failures are a normal, recoverable condition here.
type ComputeFunc func() (text string, ok bool)

// Spec describes one module's scheduling and computation. It is the
// runtime counterpart of a configuration descriptor and is immutable
// once the producer is running.
type Spec struct {
	// Name identifies the module in logs.
	Name string

	// Interval is the timer period. Zero means the producer never wakes
	// on a timer and refreshes only when Wake fires.
	Interval time.Duration

	// Wake delivers out-of-band refresh triggers from the signal bridge.
	// May be nil for interval-only modules; a nil channel simply never
	// fires in the select.
	Wake <-chan struct{}

	// Compute produces the module's output.
	Compute ComputeFunc
}

// Producer owns one module's refresh loop. It writes to exactly one slot
// index on its board and shares no other state with the rest of the
// system.
type Producer struct {
	spec   Spec
	board  *slots.Board
	index  int
	logger *slog.Logger
}

// New creates a [Producer] publishing to board at the given index.
func New(spec Spec, board *slots.Board, index int, logger *slog.Logger) *Producer {
	return &Producer{
		spec:   spec,
		board:  board,
		index:  index,
		logger: logger,
	}
}

// Run executes the refresh loop until ctx is done. It is meant to be
// launched on its own goroutine and never returns an error: every
// failure mode inside a cycle is absorbed by the failure policy.
//
// Scheduling variants:
//
//   - interval only: compute immediately, then on every tick
//   - signal only (Interval == 0): wait for the first wake before the
//     first compute; a signal-driven module displays nothing until its
//     first trigger
//   - interval and signal: whichever fires first triggers the cycle; a
//     signal landing just before a tick causes two computes in quick
//     succession, which is harmless because computes are idempotent
func (p *Producer) Run(ctx context.Context) {
	if p.spec.Interval <= 0 {
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.spec.Wake:
			}
			p.refresh()
		}
	}

	p.refresh()
	ticker := time.NewTicker(p.spec.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.spec.Wake:
		}
		p.refresh()
	}
}

// refresh runs one compute-and-publish cycle with panic recovery. A
// panicking compute is logged with a correlation ID and the cycle is
// dropped; the loop keeps running.
func (p *Producer) refresh() {
	text, ok, err := p.safeCompute()
	if err != nil {
		return
	}
	if !ok {
		// data source unavailable; keep the previous slot content
		p.logger.Debug("refresh skipped", "module", p.spec.Name)
		return
	}
	p.board.Publish(p.index, text)
}

// safeCompute calls the compute function with panic recovery. A panic is
// logged with a correlation ID and full stack so the root cause can be
// found without crashing the bar.
func (p *Producer) safeCompute() (text string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("module compute panic",
				"module", p.spec.Name,
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("compute panic (correlation_id: %s)", correlationID)
		}
	}()
	text, ok = p.spec.Compute()
	return text, ok, nil
}
