// Package harness runs benchmark sweeps over the engines.
//
// A sweep is described by a Config, usually loaded from YAML:
//
//	name: selection-nearly-sorted
//	category: selection        # selection | sorting | all
//	sizes: [100000, 1000000]
//	distributions: [nearly_sorted]
//	repeats: 10
//	rank: 6
//	seed: 42
//	verify: true
//
// The config is validated against an embedded CUE schema before any work
// starts. A Runner then walks distributions, sizes and repeats in that
// order, regenerates each input from Seed+repeat, and runs every engine of
// the category on it. Each invocation becomes one store.Measurement,
// handed to the Recorder (normally a *store.Store) as soon as it exists.
//
// # Determinism
//
// Inputs and pivot streams both derive from Seed, so two sweeps with the
// same config produce identical comparison counts and memory estimates.
// Only wall-clock timings differ, and those can be pinned with WithClock.
//
// # Failure policy
//
// An engine error or a verification mismatch is recorded on its
// measurement (Measurement.Error) and the sweep moves on. With FailFast
// the sweep stops at the first failure and Run returns it. Either way the
// run is finished with status failed. Cancelling the context stops the
// sweep at the next repeat boundary with status cancelled.
package harness
