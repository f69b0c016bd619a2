package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/larryruane/minesim/internal/chain"
)

// PrometheusSink reports simulation activity as Prometheus collectors.
// Register it with a *prometheus.Registry and expose that registry on an
// HTTP handler (done by cmd/minesim when --metrics-addr is set); the
// simulator core itself never imports net/http.
type PrometheusSink struct {
	blocksMined  *prometheus.CounterVec
	chainHeight  *prometheus.GaugeVec
	linksCreated prometheus.Counter
	hashrate     *prometheus.GaugeVec

	// maxHeight tracks the highest height seen per miner so RegisterBlock
	// can report a monotonic gauge without reading Prometheus state back.
	// The simulator core only ever calls a Sink from one goroutine, so this
	// needs no synchronization.
	maxHeight map[int]int64
}

// NewPrometheusSink builds and registers the simulator's collectors against reg.
func NewPrometheusSink(reg *prometheus.Registry) *PrometheusSink {
	s := &PrometheusSink{
		blocksMined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minesim",
			Name:      "blocks_mined_total",
			Help:      "Blocks registered to a miner, by miner id.",
		}, []string{"miner"}),
		chainHeight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "minesim",
			Name:      "chain_height",
			Help:      "Highest block height registered for a miner.",
		}, []string{"miner"}),
		linksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minesim",
			Name:      "links_created_total",
			Help:      "Directed links added between miners.",
		}),
		hashrate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "minesim",
			Name:      "miner_hashrate_blocks_per_sec",
			Help:      "Configured mining rate for a miner, in blocks per virtual second.",
		}, []string{"miner"}),
		maxHeight: make(map[int]int64),
	}
	reg.MustRegister(s.blocksMined, s.chainHeight, s.linksCreated, s.hashrate)
	return s
}

func (s *PrometheusSink) RegisterMiner(id int, hashrateBlocksPerSec, _ float64) {
	s.hashrate.WithLabelValues(strconv.Itoa(id)).Set(hashrateBlocksPerSec)
}

func (s *PrometheusSink) RegisterBlock(minerID int, _ chain.Hash, height int64) {
	label := strconv.Itoa(minerID)
	s.blocksMined.WithLabelValues(label).Inc()
	if height > s.maxHeight[minerID] {
		s.maxHeight[minerID] = height
		s.chainHeight.WithLabelValues(label).Set(float64(height))
	}
}

func (s *PrometheusSink) RegisterLink(int, int) {
	s.linksCreated.Inc()
}
