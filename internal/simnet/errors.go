package simnet

import (
	"errors"

	"github.com/larryruane/minesim/internal/scheduler"
)

// Error kinds the core distinguishes. Only scheduler-level invariant
// violations are fatal; block-validation and missing-parent outcomes are
// handled locally inside processPending and never surfaced.
var (
	// ErrScheduleInPast aliases the scheduler's own sentinel so callers of
	// Simulate can check for it with errors.Is without importing the
	// scheduler package themselves, while still matching whatever the
	// scheduler actually returns.
	ErrScheduleInPast = scheduler.ErrScheduleInPast

	// ErrNoMiners is returned when a Config names zero miners.
	ErrNoMiners = errors.New("simnet: at least one miner is required")

	// ErrStrategy is returned for an unrecognized Strategy value.
	ErrStrategy = errors.New("simnet: unknown strategy")

	// ErrHashrateSum is returned when explicit hashrates are supplied but
	// don't sum to 1 within tolerance.
	ErrHashrateSum = errors.New("simnet: hashrates must sum to 1")
)
