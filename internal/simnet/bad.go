package simnet

import (
	"github.com/larryruane/minesim/internal/chain"
	"github.com/larryruane/minesim/internal/idalloc"
	"github.com/larryruane/minesim/internal/scheduler"
	"github.com/larryruane/minesim/internal/telemetry"
)

// BadVariant represents a >=50% censoring attacker: foreign blocks are
// stored (so a BlockRequest from peers can still be answered) but never
// adopted as chain_head. Only self-mined blocks can advance the head and
// are announced. This variant only makes sense with Hashrate > 0.5;
// otherwise the miner falls permanently behind the honest chain.
type BadVariant struct{}

func (BadVariant) AddBlock(m *Miner, sched *scheduler.Scheduler, b chain.Block) {
	m.Blocks[b.Hash] = b
	m.sink.RegisterBlock(m.ID, b.Hash, b.Height)
	if !m.hasHead {
		m.ChainHead = b.Hash
		m.hasHead = true
		return
	}
	if b.MinerID != m.ID {
		return
	}
	if b.Height > m.Blocks[m.ChainHead].Height {
		m.ChainHead = b.Hash
		m.announceHead(sched, b.Hash)
	}
}

// NewBad constructs a majority-censoring miner.
func NewBad(alloc idalloc.Allocator, hashrate, verifyRate float64, sink telemetry.Sink, net *Network, seed int64) *Miner {
	m := newMiner(alloc, hashrate, verifyRate, sink, net, seed)
	m.variant = BadVariant{}
	return m
}
