package barline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/barline/barline/internal/producer"
	"github.com/barline/barline/internal/render"
	"github.com/barline/barline/internal/rtsig"
	"github.com/barline/barline/internal/slots"
)

// Defaults mirror a plain dwm setup: fields on the top bar separated by
// spaces, a pipe-separated bottom bar, and the extrabar ";" split.
const (
	defaultTopDelimiter    = " "
	defaultBottomDelimiter = " | "
	defaultGroupDelimiter  = ";"
	defaultDateFormat      = "Mon Jan _2 15:04 MST"
	defaultBatteryDir      = "/sys/class/power_supply/BAT0"
	defaultThermalDir      = "/sys/class/thermal/thermal_zone0"
)

// Renderer is the display surface the composed status line is pushed
// to. Implementations must swallow failures: the surface is an external
// collaborator that may be temporarily unreachable, and the next
// aggregator wake retries naturally. The default pushes to the X root
// window name via xsetroot.
type Renderer interface {
	// SetStatus replaces the displayed status line with text.
	SetStatus(text string)
}

// Bar is the orchestrator for module scheduling, aggregation, and
// rendering.
//
// Bar coordinates one goroutine per module, a real-time signal bridge,
// and one aggregator loop per bar group. It is created with [New] using
// functional options and started with [Bar.Start].
//
// The typical lifecycle is:
//
//	bar, err := barline.New(barline.WithTopModules(modules...))
//	if err != nil {
//	    slog.Error("failed to create bar", "error", err)
//	    os.Exit(1)
//	}
//	bar.Start(context.Background()) // blocks; run until killed
//
// The caller controls the lifecycle via the context; a status bar
// normally runs for the life of the session and is stopped by killing
// the process.
type Bar struct {
	top         []Module
	bottom      []Module
	topDelim    string
	bottomDelim string
	groupDelim  string
	dateFormat  string
	batteryDir  string
	thermalDir  string
	filesystems []string
	renderer    Renderer
	logger      *slog.Logger
}

// New creates a [Bar] with the given options.
//
// At least one top module must be configured via [WithTopModules].
// Signal bindings must be unique across both groups: a real-time signal
// wakes exactly one module.
//
// Example:
//
//	date, _ := barline.NewModule("date", barline.WithRefreshInterval(time.Minute))
//	mail, _ := barline.NewModule("~/.scripts/checkmail", barline.External(), barline.WithSignal(8))
//	bar, err := barline.New(
//	    barline.WithTopModules(date, mail),
//	    barline.WithBottomDelimiter(" | "),
//	)
func New(opts ...Option) (*Bar, error) {
	cfg := &barConfig{
		topDelim:    defaultTopDelimiter,
		bottomDelim: defaultBottomDelimiter,
		groupDelim:  defaultGroupDelimiter,
		dateFormat:  defaultDateFormat,
		batteryDir:  defaultBatteryDir,
		thermalDir:  defaultThermalDir,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.top) == 0 {
		return nil, errors.New("at least one top module is required")
	}

	// every signal index wakes exactly one module
	bound := make(map[int]string)
	for _, m := range append(append([]Module{}, cfg.top...), cfg.bottom...) {
		if m.signal == noSignal {
			continue
		}
		if other, taken := bound[m.signal]; taken {
			return nil, fmt.Errorf("%w: index %d bound by both %q and %q", ErrBadSignal, m.signal, other, m.name)
		}
		bound[m.signal] = m.name
	}

	if len(cfg.filesystems) == 0 {
		cfg.filesystems = []string{"/"}
	}
	if cfg.renderer == nil {
		cfg.renderer = render.XRoot{}
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Bar{
		top:         cfg.top,
		bottom:      cfg.bottom,
		topDelim:    cfg.topDelim,
		bottomDelim: cfg.bottomDelim,
		groupDelim:  cfg.groupDelim,
		dateFormat:  cfg.dateFormat,
		batteryDir:  cfg.batteryDir,
		thermalDir:  cfg.thermalDir,
		filesystems: cfg.filesystems,
		renderer:    cfg.renderer,
		logger:      logger,
	}, nil
}

// TopModules returns a copy of the configured top-group modules.
func (b *Bar) TopModules() []Module {
	return append([]Module(nil), b.top...)
}

// BottomModules returns a copy of the configured bottom-group modules.
func (b *Bar) BottomModules() []Module {
	return append([]Module(nil), b.bottom...)
}

// Start launches every module loop, the signal bridge, and the
// aggregators, then blocks until ctx is done.
//
// During execution:
//
//   - interval modules compute immediately, then on each tick
//   - signal-only modules wait for their first real-time signal
//   - any publish wakes the owning group's aggregator, which re-reads
//     every slot in that group and pushes the recomposed line to the
//     renderer
//
// Start returns nil when ctx is cancelled. A bar in production is run
// with a background context and stopped by killing the process.
func (b *Bar) Start(ctx context.Context) error {
	b.logger.Info("barline starting",
		"top_modules", len(b.top),
		"bottom_modules", len(b.bottom),
	)

	bridge := rtsig.NewBridge(b.logger)
	comp := &composer{
		groupDelim: b.groupDelim,
		twoGroups:  len(b.bottom) > 0,
	}

	topBoard := slots.NewBoard(len(b.top))
	if err := b.launchGroup(ctx, bridge, topBoard, b.top); err != nil {
		return err
	}

	var bottomBoard *slots.Board
	if len(b.bottom) > 0 {
		bottomBoard = slots.NewBoard(len(b.bottom))
		if err := b.launchGroup(ctx, bridge, bottomBoard, b.bottom); err != nil {
			return err
		}
	}

	bridge.Start(ctx)

	go b.aggregate(ctx, topBoard, b.topDelim, comp.updateTop)
	if bottomBoard != nil {
		go b.aggregate(ctx, bottomBoard, b.bottomDelim, comp.updateBottom)
	}

	<-ctx.Done()
	b.logger.Info("barline stopped")
	return nil
}

// launchGroup binds signals and starts one producer goroutine per module
// in the group, in configured order.
func (b *Bar) launchGroup(ctx context.Context, bridge *rtsig.Bridge, board *slots.Board, modules []Module) error {
	for i, m := range modules {
		var wake <-chan struct{}
		if m.signal != noSignal {
			ch, err := bridge.Bind(m.signal)
			if err != nil {
				return fmt.Errorf("%w: module %q: %v", ErrBadSignal, m.name, err)
			}
			wake = ch
		}

		compute, err := b.buildCompute(m)
		if err != nil {
			return err
		}

		p := producer.New(producer.Spec{
			Name:     m.name,
			Interval: m.interval,
			Wake:     wake,
			Compute:  compute,
		}, board, i, b.logger)
		go p.Run(ctx)
	}
	return nil
}

// buildCompute dispatches a module descriptor to its compute function.
// This is the single point tying the closed set of module tags to their
// implementations.
func (b *Bar) buildCompute(m Module) (producer.ComputeFunc, error) {
	if m.kind == KindExternal {
		return producer.Command(m.name, b.logger), nil
	}
	switch m.name {
	case "date":
		return producer.Date(b.dateFormat), nil
	case "battery":
		return producer.Battery(b.batteryDir), nil
	case "cpu":
		return producer.CPU(b.thermalDir), nil
	case "ram":
		return producer.RAM(), nil
	case "disk":
		return producer.Disk(b.filesystems), nil
	default:
		// NewModule validates names; reaching this is a bug
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, m.name)
	}
}

// aggregate is one bar group's consumer loop: wait for the group's
// change event, rebuild the group string from every slot, and push the
// recomposed line to the renderer.
//
// The rebuild is unconditional — the event carries no information about
// which slot changed, and several publishes may have coalesced into this
// one wake, so the loop must re-read all slots every time. Rebuilding an
// unchanged group yields an identical string, so spurious wakes are
// harmless.
func (b *Bar) aggregate(ctx context.Context, board *slots.Board, delim string, update func(string) string) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-board.Changed():
		}
		line := update(board.Join(delim))
		b.renderer.SetStatus(line)
	}
}

// composer joins the two group strings into the final status line. Both
// aggregator loops write through it, so access is serialized.
type composer struct {
	mu         sync.Mutex
	top        string
	bottom     string
	groupDelim string
	twoGroups  bool
}

// updateTop stores a freshly joined top-group string and returns the
// recomposed line.
func (c *composer) updateTop(text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.top = text
	return c.composeLocked()
}

// updateBottom stores a freshly joined bottom-group string and returns
// the recomposed line.
func (c *composer) updateBottom(text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bottom = text
	return c.composeLocked()
}

// composeLocked builds the rendered line. A single group renders its
// joined fields unchanged. With two groups the top is padded with one
// space on each side and the group delimiter splits the halves, matching
// what dwm's extrabar patch expects to parse.
func (c *composer) composeLocked() string {
	if !c.twoGroups {
		return c.top
	}
	return " " + c.top + " " + c.groupDelim + c.bottom
}
