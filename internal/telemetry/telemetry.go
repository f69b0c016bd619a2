// Package telemetry defines the pluggable sink the simulator core reports
// to, so the core never depends on a particular metrics or storage backend.
package telemetry

import "github.com/larryruane/minesim/internal/chain"

// Sink receives per-miner, per-block, and per-link records as the simulation
// runs. The core must tolerate a no-op Sink; implementations must tolerate
// being called from a single goroutine only (the simulator never calls
// concurrently).
type Sink interface {
	RegisterMiner(id int, hashrateBlocksPerSec, verifyRate float64)
	RegisterBlock(minerID int, hash chain.Hash, height int64)
	RegisterLink(srcID, dstID int)
}

// Noop is the default Sink: it does nothing. The core must tolerate it.
type Noop struct{}

func (Noop) RegisterMiner(int, float64, float64)  {}
func (Noop) RegisterBlock(int, chain.Hash, int64) {}
func (Noop) RegisterLink(int, int)                {}
