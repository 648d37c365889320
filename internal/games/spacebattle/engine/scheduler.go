package engine

// timer is a pending callback. A zero interval means the timer fires once.
type timer struct {
	key      string
	due      float64
	interval float64
	seq      int
	fn       func()
}

// Scheduler runs keyed callbacks against the simulation clock. It never
// spawns goroutines: callbacks run inside Advance, in due order, on the
// caller's goroutine. Scheduling under an existing key replaces that timer.
type Scheduler struct {
	now    float64
	seq    int
	timers []*timer
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After runs fn once, delay seconds from now.
func (s *Scheduler) After(key string, delay float64, fn func()) {
	s.add(key, delay, 0, fn)
}

// Every runs fn first after delay seconds, then every interval seconds
// until cancelled.
func (s *Scheduler) Every(key string, delay, interval float64, fn func()) {
	if interval <= 0 {
		return
	}
	s.add(key, delay, interval, fn)
}

func (s *Scheduler) add(key string, delay, interval float64, fn func()) {
	s.Cancel(key)
	if delay < 0 {
		delay = 0
	}
	s.seq++
	s.timers = append(s.timers, &timer{
		key:      key,
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	})
}

// Cancel removes the timer registered under key, if any.
func (s *Scheduler) Cancel(key string) {
	for i, t := range s.timers {
		if t.key == key {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// CancelAll removes every pending timer.
func (s *Scheduler) CancelAll() {
	s.timers = nil
}

// Advance moves the clock to now and runs every callback that has come due,
// earliest first. A repeating timer that fell behind fires once per missed
// interval. Callbacks may schedule or cancel timers, including their own.
func (s *Scheduler) Advance(now float64) {
	if now < s.now {
		return
	}
	for {
		next := s.earliestDue(now)
		if next == nil {
			break
		}
		// The clock reads the due time while the callback runs so that
		// timers it schedules are relative to the moment it fired.
		s.now = next.due
		if next.interval > 0 {
			next.due += next.interval
			s.seq++
			next.seq = s.seq
		} else {
			s.Cancel(next.key)
		}
		next.fn()
	}
	s.now = now
}

func (s *Scheduler) earliestDue(now float64) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > now {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
