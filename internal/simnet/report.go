package simnet

import "github.com/larryruane/minesim/internal/chain"

// MinerReport summarizes one miner's final state at the end of a run.
type MinerReport struct {
	ID              int
	TotalMined      int
	ChainHeadHash   chain.Hash
	ChainHeadHeight int64
	Blocks          map[chain.Hash]chain.Block
}

// Report is the result of a completed Simulate call: one MinerReport per
// miner, plus the final virtual time reached.
type Report struct {
	EndTime float64
	Miners  []MinerReport
}
