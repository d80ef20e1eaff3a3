// Package dynamo provides the core data primitives shared by the simulator.
//
// The package defines the mutable particle store and the read-only views
// handed to everything outside the core:
//
//   - [State]: asteroid columns (structure-of-arrays) plus the planet list
//   - [Planet]: a massive body, stored row-wise
//   - [Snapshot]: a detached copy of a [State] for renderers and metrics
//   - [Metric], [Observer]: hooks fed with snapshots by the headless driver
//
// # Ownership
//
// A State is owned by exactly one simulator. Nothing outside the core keeps
// a reference into it between steps; consumers call [State.SnapshotInto]
// and read the copy.
//
// # Thread Safety
//
// State is NOT thread-safe. Step calls must be serialized by the driver.
package dynamo
