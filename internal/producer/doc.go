// Package producer runs the per-module refresh loops.
//
// This package is internal to barline. Each configured module gets one
// [Producer] running on its own goroutine, scheduled by a fixed interval,
// by a real-time signal wake, or by both. On every activation a producer
// computes one formatted string and publishes it to its output slot.
//
// The main components are:
//
//   - [Producer]: the scheduling loop around a compute function
//   - [ComputeFunc]: one refresh — fetch, format, report success
//   - builtin constructors ([Date], [Battery], [CPU], [RAM], [Disk])
//   - [Command]: the external-command module
//
// Failure policy: a compute that cannot fetch its data reports ok=false
// and the previous slot content is retained; external commands publish an
// empty string instead. Panics inside a compute are recovered and logged
// with a correlation ID. A producer loop never terminates the process.
package producer
