package layout

import "github.com/zjrosen/ezwrite/internal/log"

// Scheduler coalesces layout requests into deferred passes.
//
// Every Request bumps a generation; the owner arranges for Fire(gen) to be
// called later (e.g. from a timer tick). Only the latest generation runs, so
// a burst of edits yields one pass and a pending request is superseded rather
// than accumulated. A pass that triggers another request while running is
// never re-entered; the request stays pending for the next Fire.
//
// The scheduler belongs to the single event loop and is not safe for
// concurrent use.
type Scheduler struct {
	pass    func()
	gen     uint64
	pending bool
	running bool
	passes  int
}

// NewScheduler creates a scheduler that runs pass.
func NewScheduler(pass func()) *Scheduler {
	return &Scheduler{pass: pass}
}

// Request marks a layout as needed and returns its generation.
func (s *Scheduler) Request() uint64 {
	s.gen++
	s.pending = true
	return s.gen
}

// Fire runs the pass if gen is still the latest pending request.
func (s *Scheduler) Fire(gen uint64) bool {
	if gen != s.gen || !s.pending {
		log.Debug(log.CatLayout, "layout superseded", "gen", gen, "latest", s.gen)
		return false
	}
	return s.RunNow()
}

// RunNow runs the pass immediately unless one is already running.
func (s *Scheduler) RunNow() bool {
	if s.running {
		log.Debug(log.CatLayout, "layout already running")
		return false
	}
	s.running = true
	defer func() { s.running = false }()

	s.pending = false
	if s.pass != nil {
		s.pass()
	}
	s.passes++
	return true
}

// Pending reports whether a request is waiting for a pass.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Running reports whether a pass is in progress.
func (s *Scheduler) Running() bool {
	return s.running
}

// Passes returns how many passes have run.
func (s *Scheduler) Passes() int {
	return s.passes
}
