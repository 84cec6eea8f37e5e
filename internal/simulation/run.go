package simulation

import (
	"sync"
	"time"

	"github.com/jengzang/checkin-backend-go/internal/models"
)

// minBattery is the floor of the simulated battery drain
const minBattery = 30

// run is one active walk of a route for one subject
type run struct {
	id        string
	subjectID models.SubjectID
	route     models.Route
	opts      models.SimulationOptions
	startedAt time.Time

	// mu serializes ticks with halt; cursor and stopped are guarded by it
	mu      sync.Mutex
	cursor  int
	stopped bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func newRun(id string, subjectID models.SubjectID, route models.Route, opts models.SimulationOptions, now time.Time) *run {
	return &run{
		id:        id,
		subjectID: subjectID,
		route:     route,
		opts:      opts,
		startedAt: now,
		stopCh:    make(chan struct{}),
	}
}

// battery drains two points per emitted route point, never below minBattery
func (r *run) battery() int {
	level := r.opts.BatteryLevel - r.cursor*2
	if level < minBattery {
		return minBattery
	}
	return level
}

// markStopped must be called with mu held
func (r *run) markStopped() {
	r.stopped = true
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// halt stops the run and waits for an in-flight tick to finish.
// It returns the number of points emitted.
func (r *run) halt() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markStopped()
	return r.cursor
}

func (r *run) snapshot() models.ActiveSimulation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.ActiveSimulation{
		RunID:             r.id,
		UserID:            r.subjectID,
		RouteName:         r.route.Name,
		StartTime:         r.startedAt,
		CurrentPointIndex: r.cursor,
		TotalPoints:       len(r.route.Points),
		Options:           r.opts,
	}
}
