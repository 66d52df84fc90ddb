// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestFakeNowStandsStill(t *testing.T) {
	fake := Fake(epoch)
	if got := fake.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
	if got := fake.Now(); !got.Equal(epoch) {
		t.Errorf("second Now() = %v, want %v", got, epoch)
	}
}

func TestFakeAdvance(t *testing.T) {
	fake := Fake(epoch)
	fake.Advance(90 * time.Second)

	want := epoch.Add(90 * time.Second)
	if got := fake.Now(); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
	if got := fake.Since(epoch); got != 90*time.Second {
		t.Errorf("Since(epoch) = %v, want 90s", got)
	}
}

func TestFakeAdvanceBackward(t *testing.T) {
	fake := Fake(epoch)
	fake.Advance(-time.Minute)
	if got := fake.Since(epoch); got != -time.Minute {
		t.Errorf("Since(epoch) = %v, want -1m", got)
	}
}

func TestFakeSet(t *testing.T) {
	fake := Fake(epoch)
	target := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	fake.Set(target)
	if got := fake.Now(); !got.Equal(target) {
		t.Errorf("Now() = %v, want %v", got, target)
	}
}

func TestFakeConcurrentAdvance(t *testing.T) {
	fake := Fake(epoch)

	var group sync.WaitGroup
	for range 50 {
		group.Add(1)
		go func() {
			defer group.Done()
			fake.Advance(time.Second)
			_ = fake.Now()
		}()
	}
	group.Wait()

	if got := fake.Since(epoch); got != 50*time.Second {
		t.Errorf("Since(epoch) = %v, want 50s", got)
	}
}

func TestRealSince(t *testing.T) {
	wall := Real()
	start := wall.Now()
	if elapsed := wall.Since(start); elapsed < 0 {
		t.Errorf("Since(start) = %v, want >= 0", elapsed)
	}
}
