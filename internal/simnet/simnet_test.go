package simnet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/larryruane/minesim/internal/chain"
	"github.com/larryruane/minesim/internal/idalloc"
	"github.com/larryruane/minesim/internal/scheduler"
	"github.com/larryruane/minesim/internal/telemetry"
)

// assertLinkedAncestry walks a miner's own ancestor chain from head back to
// genesis, checking that every non-genesis block's height is its parent's
// height + 1 and that every ancestor is actually known to the miner.
func assertLinkedAncestry(t *testing.T, blocks map[chain.Hash]chain.Block, head chain.Hash) {
	t.Helper()
	h, ok := blocks[head]
	require.True(t, ok, "chain head must be a known block")
	for !h.PrevHash.IsGenesis() {
		parent, ok := blocks[h.PrevHash]
		require.True(t, ok, "every non-genesis ancestor must be known")
		require.Equal(t, parent.Height+1, h.Height)
		h = parent
	}
}

func baseConfig(numMiners int, strategy Strategy, seed int64) Config {
	return Config{
		NumMiners:    numMiners,
		DurationDays: 1,
		Strategy:     strategy,
		Seed:         seed,
		Telemetry:    telemetry.Noop{},
		IDAlloc:      idalloc.NewCounter(),
	}
}

// S1: honest miners converge to linked, consistent chains.
func TestHonestMinersConverge(t *testing.T) {
	cfg := baseConfig(3, Honest, 42)
	cfg.Hashrates = []float64{0.34, 0.33, 0.33}
	cfg.DurationDays = 2.5 // 216,000 s of virtual time, about 360 network blocks

	report, err := Simulate(cfg)
	require.NoError(t, err)
	require.Len(t, report.Miners, 3)

	var heights []int64
	for _, m := range report.Miners {
		assertLinkedAncestry(t, m.Blocks, m.ChainHeadHash)
		heights = append(heights, m.ChainHeadHeight)
	}
	// Every miner saw a fully-connected mesh with tiny link delay, so their
	// final heights should agree within one block.
	min, max := heights[0], heights[0]
	for _, h := range heights {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	require.LessOrEqual(t, max-min, int64(1))
}

// Boundary case: a single miner with no links mines indefinitely and its
// chain head advances by exactly one block per mined block; there is no
// network traffic to go wrong.
func TestSingleMinerNoLinks(t *testing.T) {
	cfg := baseConfig(1, Honest, 7)
	cfg.DurationDays = 1

	report, err := Simulate(cfg)
	require.NoError(t, err)
	require.Len(t, report.Miners, 1)
	m := report.Miners[0]
	require.Greater(t, m.TotalMined, 0)
	require.Equal(t, int64(m.TotalMined), m.ChainHeadHeight)
	assertLinkedAncestry(t, m.Blocks, m.ChainHeadHash)
}

// Boundary case: a miner with hashrate 1 never forks against itself.
func TestSoleMinerHasNoOrphans(t *testing.T) {
	cfg := baseConfig(1, Honest, 99)
	cfg.Hashrates = []float64{1}
	cfg.DurationDays = 1

	report, err := Simulate(cfg)
	require.NoError(t, err)
	m := report.Miners[0]
	require.Equal(t, int64(len(m.Blocks)-1), m.ChainHeadHeight, "every mined block but genesis lies on the head path")
}

// S3: a >=50% censoring miner never adopts a foreign block, so at the end
// of the run its own chain head is a block it mined itself.
func TestBadMinerCensorsForeignBlocks(t *testing.T) {
	cfg := baseConfig(2, Bad, 7)
	cfg.Hashrates = []float64{0.6, 0.4}
	cfg.DurationDays = 5

	report, err := Simulate(cfg)
	require.NoError(t, err)
	require.Len(t, report.Miners, 2)

	bad := report.Miners[0]
	head := bad.Blocks[bad.ChainHeadHash]
	require.Equal(t, bad.ID, head.MinerID, "a censoring miner's head is always self-mined")
}

// S5: a miner starved of direct announcements (large delay on its only
// inbound-from-A link) still catches up via an intermediary through
// BLOCK_REQUEST/BLOCK_RESPONSE after learning of an unknown head.
func TestCatchUpThroughIntermediary(t *testing.T) {
	net := NewNetwork()
	alloc := idalloc.NewCounter()
	sink := telemetry.Noop{}

	a := NewHonest(alloc, 0.5, DefaultVerifyRate, sink, net, 11)
	b := NewHonest(alloc, 0.3, DefaultVerifyRate, sink, net, 11)
	c := NewHonest(alloc, 0.2, DefaultVerifyRate, sink, net, 11)

	// A and C are barely connected (huge delay); B bridges them quickly.
	a.AddLink(b.ID, 0.02)
	b.AddLink(a.ID, 0.02)
	b.AddLink(c.ID, 0.02)
	c.AddLink(b.ID, 0.02)
	a.AddLink(c.ID, 10_000)
	c.AddLink(a.ID, 10_000)

	genesis := chain.NewGenesis()
	sched := scheduler.New()
	a.Start(sched, genesis)
	b.Start(sched, genesis)
	c.Start(sched, genesis)

	sched.RunUntil(50_000)

	require.Greater(t, c.Blocks[c.ChainHead].Height, int64(0), "C must have advanced past genesis via B")
	assertLinkedAncestry(t, c.Blocks, c.ChainHead)
}

// S6: identical seed and topology reproduce byte-identical per-miner block
// sets and chain heads.
func TestDeterminism(t *testing.T) {
	cfg := baseConfig(3, Selfish, 2024)
	cfg.Hashrates = []float64{0.4, 0.3, 0.3}
	cfg.DurationDays = 3

	r1, err := Simulate(cfg)
	require.NoError(t, err)
	r2, err := Simulate(cfg)
	require.NoError(t, err)

	require.Equal(t, r1.EndTime, r2.EndTime)
	require.Len(t, r2.Miners, len(r1.Miners))
	for i := range r1.Miners {
		require.Equal(t, r1.Miners[i].ChainHeadHash, r2.Miners[i].ChainHeadHash)
		require.Equal(t, r1.Miners[i].TotalMined, r2.Miners[i].TotalMined)
		require.Equal(t, r1.Miners[i].Blocks, r2.Miners[i].Blocks)
	}
}

// Hashrates must sum to 1; an obviously wrong split is rejected rather
// than silently normalized.
func TestHashrateSumIsValidated(t *testing.T) {
	cfg := baseConfig(2, Honest, 1)
	cfg.Hashrates = []float64{0.9, 0.9}
	_, err := Simulate(cfg)
	require.ErrorIs(t, err, ErrHashrateSum)
}

func TestUnknownStrategyIsRejected(t *testing.T) {
	_, err := ParseStrategy("greedy")
	require.ErrorIs(t, err, ErrStrategy)
}
