package alarmclock

import (
	"sync"
	"time"

	"traychime/internal/core/model"
)

// Config contains runtime options for Clock.
type Config struct {
	TickInterval time.Duration
	Now          func() time.Time
}

// ModeAt derives the mode from wall-clock time, the work-hour window and an
// optional pause deadline. A zero pauseUntil means no pause is set. Pause
// overrides the work-hour window; once the deadline passes, the mode reverts
// to whatever the window yields.
func ModeAt(now time.Time, hours model.WorkHours, pauseUntil time.Time) Mode {
	if !pauseUntil.IsZero() && now.Before(pauseUntil) {
		return ModePaused
	}
	if hours.Contains(now.Hour()) {
		return ModeActive
	}
	return ModeInactive
}

// fireStamp records the minute a chime last fired in, so ticks shorter than
// a minute fire at most once per matching minute.
type fireStamp struct {
	hour   int
	minute int
}

var noFire = fireStamp{hour: -1, minute: -1}

// Clock is a state machine that fires half-past and hour chimes during work
// hours, observing an optional pause deadline.
type Clock struct {
	mu         sync.Mutex
	hours      model.WorkHours
	options    Config
	pauseUntil time.Time
	lastMode   Mode
	lastFired  fireStamp
	events     []chan Event
	stopCh     chan struct{}
	running    bool
}

// New creates a Clock for the given work-hour window.
func New(hours model.WorkHours, options Config) *Clock {
	if options.TickInterval <= 0 {
		options.TickInterval = 5 * time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Clock{
		hours:     hours,
		options:   options,
		lastFired: noFire,
		stopCh:    make(chan struct{}),
	}
}

// Subscribe registers a new observer channel.
func (clock *Clock) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	clock.mu.Lock()
	clock.events = append(clock.events, ch)
	clock.mu.Unlock()
	return ch
}

// Start launches the ticking loop and announces the initial mode.
func (clock *Clock) Start() {
	now := clock.options.Now()

	clock.mu.Lock()
	if clock.running {
		clock.mu.Unlock()
		return
	}
	clock.running = true
	clock.lastMode = ModeAt(now, clock.hours, clock.pauseUntil)
	mode := clock.lastMode
	until := clock.pauseUntil
	clock.mu.Unlock()

	clock.emit(Event{Type: EventModeChange, Mode: mode, PauseUntil: until, At: now})

	go clock.run()
}

// Stop terminates the ticking loop and closes observers.
func (clock *Clock) Stop() {
	clock.mu.Lock()
	if !clock.running {
		clock.mu.Unlock()
		return
	}
	close(clock.stopCh)
	clock.running = false
	events := clock.events
	clock.events = nil
	clock.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// PauseFor suppresses chimes until now + minutes and returns the deadline.
// Any positive duration is accepted; the menu offers 30 and 60.
func (clock *Clock) PauseFor(minutes int) time.Time {
	now := clock.options.Now()

	clock.mu.Lock()
	clock.pauseUntil = now.Add(time.Duration(minutes) * time.Minute)
	deadline := clock.pauseUntil
	mode := ModeAt(now, clock.hours, clock.pauseUntil)
	changed := mode != clock.lastMode
	clock.lastMode = mode
	clock.mu.Unlock()

	if changed {
		clock.emit(Event{Type: EventModeChange, Mode: mode, PauseUntil: deadline, At: now})
	}
	return deadline
}

// Resume clears the pause deadline immediately.
func (clock *Clock) Resume() {
	now := clock.options.Now()

	clock.mu.Lock()
	clock.pauseUntil = time.Time{}
	mode := ModeAt(now, clock.hours, time.Time{})
	changed := mode != clock.lastMode
	clock.lastMode = mode
	clock.mu.Unlock()

	if changed {
		clock.emit(Event{Type: EventModeChange, Mode: mode, At: now})
	}
}

// UpdateWorkHours replaces the work-hour window. An invalid window is
// rejected with ErrInvalidRange and the previous window is kept.
func (clock *Clock) UpdateWorkHours(hours model.WorkHours) error {
	if err := hours.Validate(); err != nil {
		return err
	}
	now := clock.options.Now()

	clock.mu.Lock()
	clock.hours = hours
	mode := ModeAt(now, clock.hours, clock.pauseUntil)
	until := clock.pauseUntil
	changed := mode != clock.lastMode
	clock.lastMode = mode
	clock.mu.Unlock()

	if changed {
		clock.emit(Event{Type: EventModeChange, Mode: mode, PauseUntil: until, At: now})
	}
	return nil
}

// WorkHours returns the current window.
func (clock *Clock) WorkHours() model.WorkHours {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.hours
}

// Mode derives the current mode from wall-clock time.
func (clock *Clock) Mode() Mode {
	now := clock.options.Now()
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return ModeAt(now, clock.hours, clock.pauseUntil)
}

// PauseUntil returns the pause deadline, zero when no pause is set.
func (clock *Clock) PauseUntil() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.pauseUntil
}

func (clock *Clock) run() {
	ticker := time.NewTicker(clock.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-clock.stopCh:
			return
		case <-ticker.C:
			clock.tick(clock.options.Now())
		}
	}
}

func (clock *Clock) tick(now time.Time) {
	clock.mu.Lock()
	if !clock.running {
		clock.mu.Unlock()
		return
	}

	// An elapsed deadline is cleared here rather than by a scheduled
	// callback; the next comparison below then reverts the mode.
	if !clock.pauseUntil.IsZero() && !now.Before(clock.pauseUntil) {
		clock.pauseUntil = time.Time{}
	}

	mode := ModeAt(now, clock.hours, clock.pauseUntil)
	if mode != clock.lastMode {
		clock.lastMode = mode
		clock.emitLocked(Event{Type: EventModeChange, Mode: mode, PauseUntil: clock.pauseUntil, At: now})
	}

	stamp := fireStamp{hour: now.Hour(), minute: now.Minute()}
	if mode != ModeActive {
		if stamp != clock.lastFired {
			clock.lastFired = noFire
		}
		clock.mu.Unlock()
		return
	}

	var kind model.ChimeKind
	switch now.Minute() {
	case 29:
		kind = model.ChimeHalfPast
	case 59:
		kind = model.ChimeHour
	default:
		clock.lastFired = noFire
		clock.mu.Unlock()
		return
	}

	if stamp == clock.lastFired {
		clock.mu.Unlock()
		return
	}
	clock.lastFired = stamp
	clock.emitLocked(Event{Type: EventChime, Mode: mode, Kind: kind, At: now})
	clock.mu.Unlock()
}

func (clock *Clock) emit(event Event) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.emitLocked(event)
}

// emitLocked fans the event out with non-blocking sends; a slow observer
// drops events rather than stalling the tick.
func (clock *Clock) emitLocked(event Event) {
	events := append([]chan Event(nil), clock.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
