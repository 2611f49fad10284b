// Package barline composes a one-line status text for dwm from a fixed
// set of concurrently scheduled modules.
//
// Each module — a built-in data source or an external command — runs on
// its own goroutine, refreshing on a fixed interval, on a POSIX
// real-time signal, or on whichever fires first. Every refresh writes
// the module's formatted field into its output slot and wakes the bar
// group's aggregator, which re-reads all slots, joins them with the
// configured delimiters, and pushes the line to the display surface
// (the X root window name, by default).
//
// # Quick Start
//
// Build modules, assemble a bar, and start it:
//
//	date, _ := barline.NewModule("date", barline.WithRefreshInterval(time.Minute), barline.WithSignal(1))
//	bat, _ := barline.NewModule("battery", barline.WithRefreshInterval(5*time.Second), barline.WithSignal(2))
//	mail, _ := barline.NewModule("~/.scripts/checkmail", barline.External(), barline.WithSignal(8))
//
//	bar, _ := barline.New(
//	    barline.WithTopModules(mail),
//	    barline.WithBottomModules(date, bat),
//	)
//	bar.Start(context.Background())
//
// # Refresh signals
//
// A module bound to signal index n refreshes immediately when the
// process receives SIGRTMIN+n:
//
//	kill -$((34+8)) $(pidof barline)   # refresh the mail module now
//
// The barline CLI wraps this as `barline refresh --module NAME`.
//
// # Failure policy
//
// Data sources fail silently: an unreadable sysfs file keeps the
// previous field text, a failing external command blanks its field, and
// a renderer that cannot reach the display drops the update until the
// next wake. Only configuration errors terminate the process, at
// startup, with a distinct exit code per failure category.
package barline
