package countdown

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/zendworks/go-session-keeper/credentials"
)

// DefaultThresholdSeconds is the low-water mark: once the countdown reaches
// this many seconds (or less), the refresh trigger fires.
const DefaultThresholdSeconds = 10

// State of a Scheduler. A scheduler moves Idle -> Running -> Terminated and
// never re-arms; a fresh page context constructs a fresh scheduler.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// CancelFunc stops a running scheduler before its threshold fires. Safe to
// call more than once and after termination.
type CancelFunc func()

// Scheduler re-evaluates the session clock once per interval, publishes a
// formatted countdown through onTick, and fires onThreshold exactly once when
// remaining time crosses the low-water threshold. After the threshold fires
// no further ticks occur.
type Scheduler struct {
	interval  time.Duration
	threshold int
	nowTime   func() time.Time
	onPending func()

	lock  sync.Mutex
	state State
}

// SchedulerOption modifies a Scheduler before it starts.
type SchedulerOption func(*Scheduler)

// WithInterval overrides the one second tick interval (primarily for testing).
func WithInterval(interval time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.interval = interval
	}
}

// WithThreshold overrides the low-water threshold in seconds.
func WithThreshold(seconds int) SchedulerOption {
	return func(s *Scheduler) {
		s.threshold = seconds
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.nowTime = nowFunc
	}
}

// WithPendingSignal registers a callback invoked once, on the first tick,
// marking that reauthentication is pending. The signal is never retracted by
// the scheduler; a successful refresh restarts the page context instead.
func WithPendingSignal(onPending func()) SchedulerOption {
	return func(s *Scheduler) {
		s.onPending = onPending
	}
}

// NewScheduler creates an Idle scheduler.
func NewScheduler(options ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		interval:  time.Second,
		threshold: DefaultThresholdSeconds,
		nowTime:   time.Now,
		state:     StateIdle,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// State reports the scheduler's current state.
func (s *Scheduler) State() State {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state
}

// Start transitions Idle -> Running and begins ticking against the
// snapshot's expiry. It returns a cancel handle for external termination
// (logout). Starting a non-idle scheduler is an error: the fire-once
// discipline requires a fresh instance per page context.
func (s *Scheduler) Start(snapshot credentials.Snapshot, onTick func(countdown string), onThreshold func()) (CancelFunc, error) {
	if onTick == nil || onThreshold == nil {
		return nil, errors.New("[Scheduler.Start] onTick and onThreshold are required")
	}

	s.lock.Lock()
	if s.state != StateIdle {
		s.lock.Unlock()
		return nil, errors.Errorf("[Scheduler.Start] scheduler is %s, not idle", s.state)
	}
	s.state = StateRunning
	s.lock.Unlock()

	stop := make(chan struct{})
	go s.run(snapshot.Expiry, onTick, onThreshold, stop)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.terminate()
			close(stop)
		})
	}, nil
}

func (s *Scheduler) run(expiry time.Time, onTick func(string), onThreshold func(), stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	pendingSignalled := false
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining := SecondsRemaining(expiry, s.nowTime())
			onTick(FormatClock(remaining))

			if !pendingSignalled {
				pendingSignalled = true
				if s.onPending != nil {
					s.onPending()
				}
			}

			if remaining <= s.threshold {
				// Cancel our own recurring timer before handing off; the
				// trigger's outcome is the coordinator's problem from here.
				ticker.Stop()
				s.terminate()
				onThreshold()
				return
			}
		}
	}
}

func (s *Scheduler) terminate() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state = StateTerminated
}
