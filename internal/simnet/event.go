package simnet

import "github.com/larryruane/minesim/internal/chain"

// Action tags the kind of wire message carried by an Event.
type Action int

const (
	BlockRequest Action = iota
	BlockResponse
	HeadNew
	BlockNew
)

func (a Action) String() string {
	switch a {
	case BlockRequest:
		return "BLOCK_REQUEST"
	case BlockResponse:
		return "BLOCK_RESPONSE"
	case HeadNew:
		return "HEAD_NEW"
	case BlockNew:
		return "BLOCK_NEW"
	default:
		return "UNKNOWN"
	}
}

// Event is a tagged message travelling on a Link. Payload is a block-hash
// for BlockRequest/HeadNew, or a full Block for BlockResponse.
type Event struct {
	Action    Action
	Origin    int
	Dest      int
	Hash      chain.Hash
	Block     chain.Block
	DeliverAt float64
}
