package overlay

// FrameID identifies a requested redraw.
type FrameID uint64

type pendingFrame struct {
	id FrameID
	fn func()
}

// FrameScheduler coalesces redraw requests. At most one frame is pending at
// any time: a new Request cancels the one before it. Frames run only when
// Flush is called, standing in for the next animation frame.
//
// FrameScheduler is not safe for concurrent use.
type FrameScheduler struct {
	last      FrameID
	pending   *pendingFrame
	cancelled int
	ran       int
}

// Request schedules fn for the next Flush, replacing any pending frame.
func (s *FrameScheduler) Request(fn func()) FrameID {
	if s.pending != nil {
		s.Cancel(s.pending.id)
	}
	s.last++
	s.pending = &pendingFrame{id: s.last, fn: fn}
	return s.last
}

// Cancel drops the frame with the given id if it is still pending.
func (s *FrameScheduler) Cancel(id FrameID) bool {
	if s.pending == nil || s.pending.id != id {
		return false
	}
	s.pending = nil
	s.cancelled++
	return true
}

// Pending reports whether a frame is waiting to run.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Flush runs the pending frame, if any, and reports whether one ran.
func (s *FrameScheduler) Flush() bool {
	p := s.pending
	if p == nil {
		return false
	}
	s.pending = nil
	s.ran++
	p.fn()
	return true
}

// Stats returns how many frames have run and how many were superseded or
// cancelled before running.
func (s *FrameScheduler) Stats() (ran, cancelled int) {
	return s.ran, s.cancelled
}
