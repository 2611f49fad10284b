// Package slots provides the shared output cells for one bar group.
//
// This package is internal to barline and holds the text each producer
// most recently published, plus the change event the group's aggregator
// waits on. It is the synchronization boundary between producer
// goroutines and the aggregator.
//
// The main components are:
//
//   - [Board]: fixed-size collection of text cells for one bar group
//   - [Board.Publish]: single-writer slot update plus change notification
//   - [Board.Join]: aggregator-side read of every cell in configured order
//
// Each cell has exactly one writer (the producer assigned its index) and
// one reader (the group aggregator). Locks are scoped to a single cell
// access and are never held across the change notification, so a producer
// can never block the aggregator for longer than one cell copy, and vice
// versa.
package slots
