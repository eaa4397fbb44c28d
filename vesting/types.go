// Package vesting implements the annual supply-expansion schedule: one mint
// event per fixed 365-day year whose output unlocks in three time-gated
// tranches per calendar-year cohort, at a mint rate that decays yearly down
// to a floor.
package vesting

import (
	"errors"
	"math/big"
)

// ErrWaitingTimeNotCompleted is returned when the annual mint event fires
// before a full year has elapsed since the last tracked year started.
var ErrWaitingTimeNotCompleted = errors.New("vesting: waiting time not completed")

// Cohort is the in-memory view of one calendar-year vesting cohort. Each
// release flag flips exactly once, only after its time threshold elapses.
type Cohort struct {
	TotalAmount          *big.Int
	NineMonthReleased    bool
	TwelveMonthReleased  bool
	FifteenMonthReleased bool
}

// fullyReleased reports whether all three tranches are out.
func (c *Cohort) fullyReleased() bool {
	return c.NineMonthReleased && c.TwelveMonthReleased && c.FifteenMonthReleased
}
