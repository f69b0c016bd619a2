package simnet

import (
	"github.com/larryruane/minesim/internal/chain"
	"github.com/larryruane/minesim/internal/idalloc"
	"github.com/larryruane/minesim/internal/scheduler"
	"github.com/larryruane/minesim/internal/telemetry"
)

// HonestVariant maintains chain_head strictly by the longest-chain rule:
// any block taller than the current head is adopted and announced. Ties
// (equal height) do not cause a re-org; first-seen wins.
type HonestVariant struct{}

func (HonestVariant) AddBlock(m *Miner, sched *scheduler.Scheduler, b chain.Block) {
	m.Blocks[b.Hash] = b
	m.sink.RegisterBlock(m.ID, b.Hash, b.Height)
	if !m.hasHead {
		m.ChainHead = b.Hash
		m.hasHead = true
		return
	}
	if b.Height > m.Blocks[m.ChainHead].Height {
		m.ChainHead = b.Hash
		m.announceHead(sched, b.Hash)
	}
}

// NewHonest constructs an honest miner: mines, validates, gossips, and
// maintains chain_head by the longest-chain rule.
func NewHonest(alloc idalloc.Allocator, hashrate, verifyRate float64, sink telemetry.Sink, net *Network, seed int64) *Miner {
	m := newMiner(alloc, hashrate, verifyRate, sink, net, seed)
	m.variant = HonestVariant{}
	return m
}
