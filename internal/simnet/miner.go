package simnet

import (
	"github.com/larryruane/minesim/internal/chain"
	"github.com/larryruane/minesim/internal/idalloc"
	"github.com/larryruane/minesim/internal/scheduler"
	"github.com/larryruane/minesim/internal/simlog"
	"github.com/larryruane/minesim/internal/telemetry"
)

// Variant is the chain-adoption policy that differs between the honest,
// majority-censoring, and selfish strategies. Everything else — the mining
// loop, validation, and gossip dispatch — is shared by every variant and
// lives on Miner itself.
type Variant interface {
	// AddBlock integrates a validated block B into the miner's local view,
	// following the variant's chain-head adoption and announcement policy.
	AddBlock(m *Miner, sched *scheduler.Scheduler, b chain.Block)
}

// Miner is the shared per-miner state and behavior: mining, validating,
// gossiping, and tracking a chain head. The head-adoption policy is
// delegated to Variant so Honest, Bad, and Selfish share one implementation
// of everything else.
type Miner struct {
	ID         int
	Hashrate   float64 // fraction of total network hash power, (0, 1]
	VerifyRate float64

	Blocks    map[chain.Hash]chain.Block
	ChainHead chain.Hash
	hasHead   bool
	Pending   []chain.Block

	TotalMined int

	socket  *Socket
	sink    telemetry.Sink
	variant Variant
	rnd     *minerRand

	miningHandle         scheduler.Handle
	miningActive         bool
	integrationScheduled bool
	arrivals             []chain.Block

	// schedErr records a scheduler-level failure from startMining (only
	// possible if the scheduler itself is buggy). It is checked by
	// Simulate once RunUntil returns, since startMining is reached from
	// deep inside scheduled callbacks with no direct caller to return to.
	schedErr error
}

// newMiner builds the shared state; variant-specific constructors
// (NewHonest, NewBad, NewSelfish) wrap this with their own Variant.
func newMiner(alloc idalloc.Allocator, hashrate, verifyRate float64, sink telemetry.Sink, net *Network, seed int64) *Miner {
	id := alloc.NextID(idalloc.Miners)
	m := &Miner{
		ID:         id,
		Hashrate:   hashrate,
		VerifyRate: verifyRate,
		Blocks:     make(map[chain.Hash]chain.Block),
		sink:       sink,
		socket:     net.Socket(id),
		rnd:        newMinerRand(seed, id),
	}
	m.socket.OnEvent(m.handleEvent)
	return m
}

// Start seeds the chain with the genesis block and begins mining. There is
// no separate "integration loop" or "network loop" goroutine: both are
// realized as callbacks the scheduler invokes directly.
func (m *Miner) Start(sched *scheduler.Scheduler, genesis chain.Block) {
	m.sink.RegisterMiner(m.ID, m.Hashrate*NetBlockRate, m.VerifyRate)
	m.variant.AddBlock(m, sched, genesis)
	m.startMining(sched)
}

// startMining draws a fresh block size and inter-arrival delay and
// schedules the "mined" wake-up. Because the exponential distribution is
// memoryless, restarting from scratch after an interruption is statistically
// correct.
func (m *Miner) startMining(sched *scheduler.Scheduler) {
	size := m.rnd.blockSize(chain.MaxBlockSize)
	rate := m.Hashrate * NetBlockRate
	delay := m.rnd.miningDelay(rate)

	h, err := sched.ScheduleAt(sched.Now()+delay, func(s *scheduler.Scheduler) {
		m.miningActive = false
		parent := m.Blocks[m.ChainHead]
		b := chain.New(m.ChainHead, parent.Height+1, s.Now(), m.ID, size, 1)
		m.TotalMined++
		simlog.Trace("mined", simlog.Fields{"miner": m.ID, "height": b.Height, "hash": b.Hash.String(), "now": s.Now()})
		m.onArrival(s, b)
	})
	if err != nil {
		// Can only happen if delay < 0, which a well-formed Exponential
		// sampler never produces; treat as a scheduler bug like any other.
		// There's no direct caller to return this to — startMining runs
		// deep inside scheduled callbacks — so record it for Simulate to
		// pick up and return once RunUntil finishes.
		simlog.Error("failed to schedule mining wake-up", simlog.Fields{"miner": m.ID, "err": err.Error()})
		m.schedErr = err
		return
	}
	m.miningHandle = h
	m.miningActive = true
}

// interruptMining cancels the in-flight mining attempt, if any, discarding
// its elapsed virtual time: interruption is lossy by design.
func (m *Miner) interruptMining(sched *scheduler.Scheduler) {
	if m.miningActive {
		sched.Cancel(m.miningHandle)
		m.miningActive = false
	}
}

// onArrival is the shared entry point for both "locally mined" and
// "received from a peer" blocks. The first arrival since the last time
// mining resumed interrupts mining and schedules a zero-delay integration
// activation; integrationScheduled then stays true for the *entire*
// processPending/validateAt pass, not just until that pass starts, so a
// block arriving mid-validation cannot spawn a second, overlapping
// integration pass — it is folded into the next round validateAt runs
// before mining is allowed to resume (see validateAt).
func (m *Miner) onArrival(sched *scheduler.Scheduler, b chain.Block) {
	m.arrivals = append(m.arrivals, b)
	if m.integrationScheduled {
		return
	}
	m.integrationScheduled = true
	m.interruptMining(sched)
	sched.ScheduleAt(sched.Now(), func(s *scheduler.Scheduler) {
		m.processPending(s)
	})
}

// processPending drains the current arrivals into Pending and validates them
// one at a time, each costing b.Size/VerifyRate of virtual time, chained
// through the scheduler so other miners' events can interleave between
// validations exactly as they would in a true discrete-event simulation.
// Blocks whose parent is still unknown are re-queued for a later pass.
func (m *Miner) processPending(sched *scheduler.Scheduler) {
	batch := m.arrivals
	m.arrivals = nil
	m.Pending = append(m.Pending, batch...)
	pending := m.Pending
	m.Pending = nil
	m.validateAt(sched, pending, 0, nil)
}

func (m *Miner) validateAt(sched *scheduler.Scheduler, batch []chain.Block, i int, survivors []chain.Block) {
	if i >= len(batch) {
		m.Pending = append(m.Pending, survivors...)
		if len(m.arrivals) > 0 {
			// Blocks arrived while this pass was validating; fold them into
			// another round rather than letting mining resume in between.
			m.processPending(sched)
			return
		}
		m.integrationScheduled = false
		m.startMining(sched)
		return
	}
	b := batch[i]
	cost := b.Size / m.VerifyRate
	sched.ScheduleAt(sched.Now()+cost, func(s *scheduler.Scheduler) {
		switch m.classify(b) {
		case 1:
			m.variant.AddBlock(m, s, b)
		case 0:
			m.requestBlock(s, b.PrevHash)
			survivors = append(survivors, b)
		case -1:
			simlog.Trace("dropping invalid block", simlog.Fields{"miner": m.ID, "hash": b.Hash.String()})
		}
		m.validateAt(s, batch, i+1, survivors)
	})
}

// classify reports 1 valid, 0 unknown-parent, -1 invalid. A self-mined
// block whose declared parent is no longer this miner's own chain head is
// invalid — the miner has already moved on — which for SelfishMiner
// correctly compares against the *private* tip, since that is what
// ChainHead denotes there too.
func (m *Miner) classify(b chain.Block) int {
	if b.MinerID == m.ID && b.PrevHash != m.ChainHead {
		return -1
	}
	parent, ok := m.Blocks[b.PrevHash]
	if !ok {
		return 0
	}
	if b.Height != parent.Height+1 {
		return -1
	}
	return 1
}

// announceHead broadcasts HEAD_NEW for hash, the new chain tip.
func (m *Miner) announceHead(sched *scheduler.Scheduler, hash chain.Hash) {
	m.socket.Broadcast(sched, HeadNew, hash, chain.Block{})
}

// requestBlock broadcasts a BLOCK_REQUEST for a still-unknown parent hash.
func (m *Miner) requestBlock(sched *scheduler.Scheduler, hash chain.Hash) {
	m.socket.Broadcast(sched, BlockRequest, hash, chain.Block{})
}

// handleEvent is the network loop's dispatch, invoked directly by the
// scheduler when an Event is delivered to this miner's socket. It runs
// only when a peer sends something: a miner that no peer links to never
// receives anything to dispatch.
func (m *Miner) handleEvent(sched *scheduler.Scheduler, ev Event) {
	switch ev.Action {
	case BlockRequest:
		if b, ok := m.Blocks[ev.Hash]; ok {
			_ = m.socket.SendEvent(sched, ev.Origin, BlockResponse, b.Hash, b)
		}
	case BlockResponse:
		m.onArrival(sched, ev.Block)
	case HeadNew:
		if _, ok := m.Blocks[ev.Hash]; !ok {
			m.requestBlock(sched, ev.Hash)
		}
	}
}

// AddLink registers an outbound link to peer, with the given delay, and
// reports it to telemetry.
func (m *Miner) AddLink(dest int, delay float64) {
	m.socket.AddLink(Link{SourceID: m.ID, DestID: dest, Delay: delay})
	m.sink.RegisterLink(m.ID, dest)
}
