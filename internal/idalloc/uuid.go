package idalloc

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// UUIDAllocator is an Allocator for callers that run many simulation
// workers against a shared namespace without a shared counter service.
// Each instance draws a random 63-bit per-namespace offset from a UUIDv4
// at construction time, then increments from there, so ids allocated by
// distinct instances are extremely unlikely to collide even though no
// coordination between instances occurs.
type UUIDAllocator struct {
	next [3]int64
}

// NewUUIDAllocator seeds each namespace's counter from a fresh UUIDv4.
func NewUUIDAllocator() *UUIDAllocator {
	a := &UUIDAllocator{}
	for ns := range a.next {
		id := uuid.New()
		a.next[ns] = int64(id[0])<<56 | int64(id[1])<<48 | int64(id[2])<<40 | int64(id[3])<<32 |
			int64(id[4])<<24 | int64(id[5])<<16 | int64(id[6])<<8 | int64(id[7])
		if a.next[ns] < 0 {
			a.next[ns] = -a.next[ns]
		}
	}
	return a
}

func (a *UUIDAllocator) NextID(ns Namespace) int {
	return int(atomic.AddInt64(&a.next[ns], 1) - 1)
}
