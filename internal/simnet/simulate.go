// Package simnet is the simulation core: it owns the scheduler, the
// miners, and the network, and exposes one entry point, Simulate.
package simnet

import (
	"fmt"

	"github.com/larryruane/minesim/internal/chain"
	"github.com/larryruane/minesim/internal/scheduler"
	"github.com/larryruane/minesim/internal/simlog"
)

const secondsPerDay = 86400.0

// Simulate runs one discrete-event simulation to completion and returns a
// per-miner report. Given a fixed seed and topology, it is fully
// reproducible.
func Simulate(cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	if cfg.Topology == nil && cfg.NumMiners <= 0 {
		return nil, ErrNoMiners
	}

	sched := scheduler.New()
	net := NewNetwork()
	genesis := chain.NewGenesis()

	var miners []*Miner
	var err error
	if cfg.Topology != nil {
		miners, err = buildFromTopology(cfg, net)
	} else {
		miners, err = buildDefaultMesh(cfg, net)
	}
	if err != nil {
		return nil, err
	}

	for _, m := range miners {
		m.Start(sched, genesis)
	}

	endTime := cfg.DurationDays * secondsPerDay
	sched.RunUntil(endTime)

	for _, m := range miners {
		if m.schedErr != nil {
			return nil, fmt.Errorf("simnet: miner %d: %w", m.ID, m.schedErr)
		}
	}

	report := &Report{EndTime: sched.Now()}
	for _, m := range miners {
		blocks := make(map[chain.Hash]chain.Block, len(m.Blocks))
		for h, b := range m.Blocks {
			blocks[h] = b
		}
		head := m.Blocks[m.ChainHead]
		report.Miners = append(report.Miners, MinerReport{
			ID:              m.ID,
			TotalMined:      m.TotalMined,
			ChainHeadHash:   m.ChainHead,
			ChainHeadHeight: head.Height,
			Blocks:          blocks,
		})
	}
	simlog.Info("simulation complete", simlog.Fields{
		"miners": len(miners), "end_time": report.EndTime, "strategy": cfg.Strategy.String(),
	})
	return report, nil
}

// newVariant constructs the ith miner under cfg.Strategy: only index 0 runs
// the distinguished (bad/selfish) strategy — one attacker among otherwise-
// honest peers; Strategy==Honest makes every miner honest.
func newVariant(i int, cfg Config, hashrate float64, net *Network) *Miner {
	strategy := Honest
	if i == 0 {
		strategy = cfg.Strategy
	}
	switch strategy {
	case Bad:
		return NewBad(cfg.IDAlloc, hashrate, cfg.VerifyRate, cfg.Telemetry, net, cfg.Seed)
	case Selfish:
		return NewSelfish(cfg.IDAlloc, hashrate, cfg.VerifyRate, cfg.Telemetry, net, cfg.Seed)
	default:
		return NewHonest(cfg.IDAlloc, hashrate, cfg.VerifyRate, cfg.Telemetry, net, cfg.Seed)
	}
}

// buildDefaultMesh constructs NumMiners miners, hashrates from cfg.Hashrates
// (or an equal split), connected as a fully-connected symmetric mesh with
// cfg.LinkDelay on every link.
func buildDefaultMesh(cfg Config, net *Network) ([]*Miner, error) {
	if cfg.NumMiners <= 0 {
		return nil, ErrNoMiners
	}
	hashrates := cfg.Hashrates
	if hashrates == nil {
		hashrates = make([]float64, cfg.NumMiners)
		for i := range hashrates {
			hashrates[i] = 1.0 / float64(cfg.NumMiners)
		}
	}
	if len(hashrates) != cfg.NumMiners {
		return nil, fmt.Errorf("simnet: %d hashrates for %d miners", len(hashrates), cfg.NumMiners)
	}
	var sum float64
	for _, h := range hashrates {
		sum += h
	}
	if sum < 0.999 || sum > 1.001 {
		return nil, ErrHashrateSum
	}

	miners := make([]*Miner, cfg.NumMiners)
	for i := range miners {
		miners[i] = newVariant(i, cfg, hashrates[i], net)
	}
	for i := range miners {
		for j := range miners {
			if i == j {
				continue
			}
			miners[i].AddLink(miners[j].ID, cfg.LinkDelay)
		}
	}
	return miners, nil
}

// buildFromTopology constructs miners from an explicit topology.Spec: one
// miner per line, with its own hashrate and an explicit, possibly
// asymmetric, set of outbound peers.
func buildFromTopology(cfg Config, net *Network) ([]*Miner, error) {
	spec := cfg.Topology
	byName := make(map[string]*Miner, len(spec.Miners))
	miners := make([]*Miner, 0, len(spec.Miners))
	for i, ms := range spec.Miners {
		m := newVariant(i, cfg, ms.Hashrate, net)
		byName[ms.Name] = m
		miners = append(miners, m)
	}
	for _, ms := range spec.Miners {
		m := byName[ms.Name]
		for _, p := range ms.Peers {
			peer, ok := byName[p.Name]
			if !ok {
				return nil, fmt.Errorf("simnet: topology references unknown peer %q", p.Name)
			}
			m.AddLink(peer.ID, p.Delay)
		}
	}
	return miners, nil
}
