// Package simulation replays routes as synthetic tracking data.
//
// Each active run owns a goroutine driven by a ticker. A tick emits the next
// route point through the Tracker; the last tick optionally clocks the
// subject out, then the run removes itself. At most one run exists per
// subject: starting a new one halts the previous.
package simulation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jengzang/checkin-backend-go/internal/clock"
	"github.com/jengzang/checkin-backend-go/internal/models"
)

const minTickInterval = time.Millisecond

// RouteStore is the route catalog consumed by the engine
type RouteStore interface {
	Get(name string) (*models.Route, bool)
	Insert(name string, points []models.RoutePoint) (*models.RouteInsertResult, error)
}

// Tracker stores emitted tracking events
type Tracker interface {
	Append(ctx context.Context, subjectID models.SubjectID, in models.TrackingInput) (models.TrackingEvent, error)
}

// StatusUpdater applies work status transitions
type StatusUpdater interface {
	Transition(ctx context.Context, subjectID models.SubjectID, status models.WorkStatus) (models.StatusRecord, error)
}

// Config tunes the engine
type Config struct {
	// IntervalUnit is the real duration of one interval second. Zero means time.Second.
	IntervalUnit time.Duration
}

// Engine owns the active simulation runs
type Engine struct {
	routes  RouteStore
	tracker Tracker
	status  StatusUpdater
	clock   clock.Clock
	logger  *zap.Logger
	unit    time.Duration

	mu   sync.Mutex
	runs map[models.SubjectID]*run
}

// NewEngine creates a new simulation engine
func NewEngine(cfg Config, routes RouteStore, tracker Tracker, status StatusUpdater, clk clock.Clock, logger *zap.Logger) *Engine {
	unit := cfg.IntervalUnit
	if unit <= 0 {
		unit = time.Second
	}
	return &Engine{
		routes:  routes,
		tracker: tracker,
		status:  status,
		clock:   clk,
		logger:  logger,
		unit:    unit,
		runs:    make(map[models.SubjectID]*run),
	}
}

// Start begins walking routeName for subjectID, replacing any run the
// subject already has. It returns once the run is scheduled.
func (e *Engine) Start(ctx context.Context, subjectID models.SubjectID, routeName string, opts models.SimulationOptions) (*models.SimulationStartResult, error) {
	route, ok := e.routes.Get(routeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrRouteNotFound, routeName)
	}

	r := newRun(uuid.NewString(), subjectID, *route, opts, e.clock.Now())

	e.mu.Lock()
	prev := e.runs[subjectID]
	e.runs[subjectID] = r
	e.mu.Unlock()

	if prev != nil {
		done := prev.halt()
		e.logger.Info("simulation superseded",
			zap.String("run_id", prev.id),
			zap.Int64("user_id", int64(subjectID)),
			zap.Int("points_completed", done),
		)
	}

	if opts.AutoClockIn {
		r.mu.Lock()
		if !r.stopped {
			e.clockIn(ctx, r)
		}
		r.mu.Unlock()
	}

	// a concurrent Start for the same subject may already have replaced r
	e.mu.Lock()
	superseded := e.runs[subjectID] != r
	e.mu.Unlock()
	if superseded {
		e.logger.Info("simulation superseded before its first tick",
			zap.String("run_id", r.id),
			zap.Int64("user_id", int64(subjectID)),
		)
		return &models.SimulationStartResult{
			RunID:             r.id,
			UserID:            subjectID,
			RouteName:         routeName,
			Status:            "superseded",
			TotalPoints:       len(route.Points),
			EstimatedDuration: float64(len(route.Points)) * opts.IntervalSeconds,
		}, nil
	}

	go e.loop(r)

	e.logger.Info("simulation started",
		zap.String("run_id", r.id),
		zap.Int64("user_id", int64(subjectID)),
		zap.String("route", routeName),
		zap.Int("points", len(route.Points)),
		zap.Float64("interval_seconds", opts.IntervalSeconds),
	)

	return &models.SimulationStartResult{
		RunID:             r.id,
		UserID:            subjectID,
		RouteName:         routeName,
		Status:            "started",
		TotalPoints:       len(route.Points),
		EstimatedDuration: float64(len(route.Points)) * opts.IntervalSeconds,
	}, nil
}

// Stop halts the subject's run. No tick emits after Stop returns.
func (e *Engine) Stop(subjectID models.SubjectID) (*models.SimulationStopResult, error) {
	e.mu.Lock()
	r, ok := e.runs[subjectID]
	if ok {
		delete(e.runs, subjectID)
	}
	e.mu.Unlock()

	if !ok {
		return nil, models.ErrNoActiveSimulation
	}

	completed := r.halt()
	e.logger.Info("simulation stopped",
		zap.String("run_id", r.id),
		zap.Int64("user_id", int64(subjectID)),
		zap.Int("points_completed", completed),
	)

	return &models.SimulationStopResult{
		RunID:           r.id,
		UserID:          subjectID,
		RouteName:       r.route.Name,
		Status:          "stopped",
		StartTime:       r.startedAt,
		EndTime:         e.clock.Now(),
		PointsCompleted: completed,
	}, nil
}

// ListActive returns a summary of every running simulation ordered by subject
func (e *Engine) ListActive() []models.ActiveSimulation {
	e.mu.Lock()
	runs := make([]*run, 0, len(e.runs))
	for _, r := range e.runs {
		runs = append(runs, r)
	}
	e.mu.Unlock()

	// snapshots lock each run, so they are taken outside e.mu
	out := make([]models.ActiveSimulation, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// AddRoute adds or replaces a route in the underlying catalog
func (e *Engine) AddRoute(name string, points []models.RoutePoint) (*models.RouteInsertResult, error) {
	return e.routes.Insert(name, points)
}

// Shutdown halts every run
func (e *Engine) Shutdown() {
	e.mu.Lock()
	runs := e.runs
	e.runs = make(map[models.SubjectID]*run)
	e.mu.Unlock()

	for _, r := range runs {
		r.halt()
	}
}

func (e *Engine) loop(r *run) {
	ticker := time.NewTicker(tickInterval(r.opts.IntervalSeconds, e.unit))
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if done := e.tick(r); done {
				return
			}
		}
	}
}

// tickInterval converts interval seconds to a ticker period, saturating
// instead of overflowing
func tickInterval(seconds float64, unit time.Duration) time.Duration {
	d := seconds * float64(unit)
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	if d < float64(minTickInterval) {
		return minTickInterval
	}
	return time.Duration(d)
}

// tick emits the point under the cursor and advances it. It reports whether
// the run is over.
func (e *Engine) tick(r *run) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return true
	}

	ctx := context.Background()
	total := len(r.route.Points)

	if r.cursor < total {
		e.emit(ctx, r, r.opts.TrackingType, r.route.Points[r.cursor], r.battery())
		r.cursor++
	}
	if r.cursor < total {
		return false
	}

	if r.opts.AutoClockOut {
		e.emit(ctx, r, models.TrackingClockOut, r.route.Points[total-1], r.battery())
		e.transition(ctx, r, models.StatusNotWorking)
	}
	e.finish(r)
	return true
}

// finish removes a completed run; r.mu must be held
func (e *Engine) finish(r *run) {
	r.markStopped()

	e.mu.Lock()
	if e.runs[r.subjectID] == r {
		delete(e.runs, r.subjectID)
	}
	e.mu.Unlock()

	e.logger.Info("simulation completed",
		zap.String("run_id", r.id),
		zap.Int64("user_id", int64(r.subjectID)),
		zap.Int("points_completed", r.cursor),
	)
}

// clockIn emits the clock-in event at the route start; r.mu must be held
func (e *Engine) clockIn(ctx context.Context, r *run) {
	kind, status := models.TrackingClockInRemote, models.StatusWorkingRemote
	if strings.Contains(r.route.Name, "Office") {
		kind, status = models.TrackingClockInOffice, models.StatusWorkingOffice
	}
	e.emit(ctx, r, kind, r.route.Points[0], r.battery())
	e.transition(ctx, r, status)
}

func (e *Engine) emit(ctx context.Context, r *run, kind models.TrackingType, p models.RoutePoint, battery int) {
	accuracy := r.opts.Accuracy
	network := r.opts.NetworkType
	_, err := e.tracker.Append(ctx, r.subjectID, models.TrackingInput{
		TrackingType: kind,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Accuracy:     &accuracy,
		BatteryLevel: &battery,
		NetworkType:  &network,
	})
	if err != nil {
		e.logger.Warn("simulation emit failed",
			zap.String("run_id", r.id),
			zap.String("tracking_type", string(kind)),
			zap.Error(err),
		)
	}
}

func (e *Engine) transition(ctx context.Context, r *run, status models.WorkStatus) {
	if _, err := e.status.Transition(ctx, r.subjectID, status); err != nil {
		e.logger.Warn("simulation status change failed",
			zap.String("run_id", r.id),
			zap.Int64("user_id", int64(r.subjectID)),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}
