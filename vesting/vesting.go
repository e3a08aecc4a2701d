// Package vesting implements linear time-based release of purchased
// token allocations. Release is computed on demand from wall-clock time;
// there are no timers.
package vesting

import "math/bits"

// Window is a vesting window in unix seconds. End must be strictly after
// Start; a zero-length window would make the release computation divide
// by zero and is rejected up front.
type Window struct {
	Start int64
	End   int64
}

// Validate rejects inverted and zero-length windows.
func (w Window) Validate() error {
	if w.End < w.Start {
		return ErrWindowInverted
	}
	if w.End == w.Start {
		return ErrZeroWindow
	}
	return nil
}

// Duration returns the window length in seconds.
func (w Window) Duration() int64 { return w.End - w.Start }

// Record tracks one (share, holder, channel) vesting position.
// Purchased only ever increases; Released only ever increases, bounded by
// Purchased.
type Record struct {
	Purchased uint64
	Released  uint64
}

// Releasable returns how many units may be released from rec at time now:
// the linearly vested amount, capped at Purchased, minus what was already
// released. Monotone in now, zero before the window starts.
func Releasable(rec Record, win Window, now int64) (uint64, error) {
	if err := win.Validate(); err != nil {
		return 0, err
	}
	if rec.Released > rec.Purchased {
		return 0, ErrReleasedExceedsPurchased
	}
	if now <= win.Start || rec.Purchased == rec.Released {
		return 0, nil
	}

	elapsed := now - win.Start
	duration := win.Duration()
	if elapsed > duration {
		elapsed = duration
	}

	// vested = purchased * elapsed / duration; the quotient fits uint64
	// because elapsed <= duration.
	hi, lo := bits.Mul64(rec.Purchased, uint64(elapsed))
	vested, _ := bits.Div64(hi, lo, uint64(duration))

	if vested <= rec.Released {
		return 0, nil
	}
	return vested - rec.Released, nil
}
