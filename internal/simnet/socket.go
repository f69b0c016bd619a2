package simnet

import (
	"errors"

	"github.com/larryruane/minesim/internal/chain"
	"github.com/larryruane/minesim/internal/scheduler"
	"github.com/larryruane/minesim/internal/simlog"
)

// ErrUnknownPeer is returned when a Socket is asked to send to a
// destination it has no outbound Link to. In a well-formed topology this
// never happens; it is fatal only in the sense that the caller decides
// whether to treat it as such — the Socket itself just reports it.
var ErrUnknownPeer = errors.New("simnet: no outbound link to destination")

// Network routes Events between per-miner Sockets. There is no blocked
// "receive()" caller to wake: delivery means the scheduler pops the
// delivery activation and invokes the destination Socket's onEvent
// callback directly, in the same activation that advances now to the
// delivery time.
type Network struct {
	sockets map[int]*Socket
}

// NewNetwork returns an empty socket registry.
func NewNetwork() *Network {
	return &Network{sockets: make(map[int]*Socket)}
}

// Socket returns (creating if necessary) the Socket owned by miner id.
func (n *Network) Socket(id int) *Socket {
	s, ok := n.sockets[id]
	if !ok {
		s = &Socket{ownerID: id, outLinks: make(map[int]Link), net: n}
		n.sockets[id] = s
	}
	return s
}

// Socket is a per-miner set of outbound Links plus the dispatch callback
// invoked when an Event for this miner is delivered.
type Socket struct {
	ownerID int
	// outLinks holds the Link data, keyed by destination, for O(1) lookup
	// in SendEvent. outOrder holds the same destinations in the order they
	// were added, since ranging over a map would make Broadcast's
	// scheduler-insertion order (and therefore tie-break order for equal
	// deliver_at) vary from run to run even with a fixed seed.
	outLinks map[int]Link
	outOrder []int
	net      *Network
	onEvent  func(sched *scheduler.Scheduler, ev Event)
}

// OnEvent registers the callback invoked whenever an Event arrives for this
// socket's owner. Only the owning Miner calls this, once, at construction.
func (s *Socket) OnEvent(fn func(sched *scheduler.Scheduler, ev Event)) {
	s.onEvent = fn
}

// AddLink registers an outbound link. Idempotent on (src, dst): re-adding a
// link to the same destination is a no-op.
func (s *Socket) AddLink(l Link) {
	if _, ok := s.outLinks[l.DestID]; ok {
		return
	}
	s.outLinks[l.DestID] = l
	s.outOrder = append(s.outOrder, l.DestID)
}

// HasLinks reports whether this socket has any outbound link at all; a
// miner with none cannot send anything to its peers.
func (s *Socket) HasLinks() bool { return len(s.outLinks) > 0 }

// SendEvent schedules delivery of action/payload to dst at now + link delay.
func (s *Socket) SendEvent(sched *scheduler.Scheduler, dst int, action Action, hash chain.Hash, block chain.Block) error {
	link, ok := s.outLinks[dst]
	if !ok {
		simlog.Warn("dropping event to unknown peer", simlog.Fields{
			"from": s.ownerID, "to": dst, "action": action.String(),
		})
		return ErrUnknownPeer
	}
	ev := Event{
		Action:    action,
		Origin:    s.ownerID,
		Dest:      dst,
		Hash:      hash,
		Block:     block,
		DeliverAt: sched.Now() + link.Delay,
	}
	_, err := sched.ScheduleAt(ev.DeliverAt, func(sc *scheduler.Scheduler) {
		dest, ok := s.net.sockets[dst]
		if !ok || dest.onEvent == nil {
			return
		}
		dest.onEvent(sc, ev)
	})
	return err
}

// Broadcast calls SendEvent on every outbound link, in the order the links
// were added, so that a set of events sharing one deliver_at (the common
// case: every link in a default mesh carries the same delay) are always
// inserted into the scheduler in the same order given the same topology.
func (s *Socket) Broadcast(sched *scheduler.Scheduler, action Action, hash chain.Hash, block chain.Block) {
	for _, dst := range s.outOrder {
		_ = s.SendEvent(sched, dst, action, hash, block)
	}
}
