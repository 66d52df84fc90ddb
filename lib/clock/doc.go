// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock instead of calling time.Now directly.
// In production, Real() provides the standard library behavior. In
// tests, Fake() provides a clock that moves only when Advance or Set is
// called, so relative-time labels ("3m ago") and locally stamped
// timestamps are deterministic.
//
// # Wiring Pattern
//
// Add a Clock field to structs that read the time:
//
//	type Projector struct {
//	    clock clock.Clock
//	}
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
//	projector := activity.NewProjector(fake)
//	fake.Advance(90 * time.Second)
package clock
