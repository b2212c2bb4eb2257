package viewmodel

import (
	"context"
	"sync"
)

// requestSlot serializes one kind of request. Starting a request cancels the
// previous one; responses carrying a stale sequence are dropped.
type requestSlot struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func (s *requestSlot) begin(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.seq++
	s.cancel = cancel
	return ctx, s.seq
}

func (s *requestSlot) current(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq == seq
}

// end releases the context of seq if no newer request replaced it.
func (s *requestSlot) end(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == seq && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// stop cancels the in-flight request and invalidates its response.
func (s *requestSlot) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}
