package simnet

import (
	"github.com/larryruane/minesim/internal/chain"
	"github.com/larryruane/minesim/internal/idalloc"
	"github.com/larryruane/minesim/internal/scheduler"
	"github.com/larryruane/minesim/internal/telemetry"
)

// SelfishVariant withholds self-mined blocks on a private branch and
// reveals them according to the classic selfish-mining release policy.
// ChainHead (on the shared Miner) denotes the private tip; PublicHead is
// the tip this miner believes the rest of the network has converged on.
type SelfishVariant struct {
	PublicHead       chain.Hash
	hasPublicHead    bool
	PrivateBranchLen int
}

func (sv *SelfishVariant) AddBlock(m *Miner, sched *scheduler.Scheduler, b chain.Block) {
	m.Blocks[b.Hash] = b
	m.sink.RegisterBlock(m.ID, b.Hash, b.Height)

	if !m.hasHead {
		m.ChainHead = b.Hash
		m.hasHead = true
		sv.PublicHead = b.Hash
		sv.hasPublicHead = true
		return
	}

	if b.MinerID == m.ID && b.Height > m.Blocks[m.ChainHead].Height {
		deltaPrev := m.Blocks[m.ChainHead].Height - m.Blocks[sv.PublicHead].Height
		m.ChainHead = b.Hash
		sv.PrivateBranchLen++
		if deltaPrev == 0 && sv.PrivateBranchLen == 2 {
			m.announceHead(sched, m.ChainHead)
			sv.PrivateBranchLen = 0
		}
	}

	if b.MinerID != m.ID && b.Height > m.Blocks[sv.PublicHead].Height {
		deltaPrev := m.Blocks[m.ChainHead].Height - m.Blocks[sv.PublicHead].Height
		sv.PublicHead = b.Hash
		switch {
		case deltaPrev <= 0:
			// Behind or tied with the public chain: concede.
			m.ChainHead = b.Hash
			sv.PrivateBranchLen = 0
		case deltaPrev == 1:
			// Race: publish the private tip to contest the tie.
			m.announceHead(sched, m.ChainHead)
		case deltaPrev == 2:
			// Opponent caught up to one behind: publish everything and win.
			m.announceHead(sched, m.ChainHead)
			sv.PrivateBranchLen = 0
		default:
			// Leak the private lead one block at a time. The delta>=6
			// adjustment is preserved deliberately even without a clean
			// textual justification for it.
			adj := int64(0)
			if deltaPrev >= 6 {
				adj = 1
			}
			target := b.Height + adj
			iter := m.ChainHead
			for m.Blocks[iter].Height != target {
				iter = m.Blocks[iter].PrevHash
			}
			m.announceHead(sched, iter)
		}
	}
}

// NewSelfish constructs a selfish-mining miner.
func NewSelfish(alloc idalloc.Allocator, hashrate, verifyRate float64, sink telemetry.Sink, net *Network, seed int64) *Miner {
	m := newMiner(alloc, hashrate, verifyRate, sink, net, seed)
	m.variant = &SelfishVariant{}
	return m
}
