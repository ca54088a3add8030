package internal

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Event is one pre-digested browser event delivered to the tracker, one JSON
// object per line on the event stream
type Event struct {
	Type  string `json:"type"` // "focus" or "blur"
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
}

// Event types
const (
	EventFocus = "focus"
	EventBlur  = "blur"
)

// ParseEvent decodes a single event line
func ParseEvent(line []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	switch ev.Type {
	case EventFocus, EventBlur:
		return &ev, nil
	default:
		return nil, fmt.Errorf("unknown event type: %q", ev.Type)
	}
}

// Runner drives the tracking loop: it consumes focus/blur events, flushes the
// current session on a periodic tick, evaluates goals after each tick, sweeps
// retention every sweepEvery ticks, and resets goal notification flags at
// each local midnight.
//
// Everything runs on one goroutine, so handler bodies never interleave;
// suspension points are only the store calls inside each handler. A handler
// failure is logged and dropped, the next tick retries naturally.
type Runner struct {
	store        *Store
	tracker      *SessionTracker
	agg          *StatsAggregator
	engine       *GoalEngine
	tickInterval time.Duration
	sweepEvery   int
	now          func() time.Time
}

// NewRunner creates a Runner with the default 60s tick and a retention sweep
// every 10th tick
func NewRunner(store *Store, tracker *SessionTracker, agg *StatsAggregator, engine *GoalEngine) *Runner {
	return &Runner{
		store:        store,
		tracker:      tracker,
		agg:          agg,
		engine:       engine,
		tickInterval: 60 * time.Second,
		sweepEvery:   10,
		now:          time.Now,
	}
}

// Run consumes events from r until it closes or the context is canceled
func (r *Runner) Run(ctx context.Context, events io.Reader) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(events)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	midnight := time.NewTimer(untilNextMidnight(r.now()))
	defer midnight.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			r.shutdown()
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				r.shutdown()
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			r.handleEvent(line)

		case <-ticker.C:
			ticks++
			r.handleTick(ticks)

		case <-midnight.C:
			if err := r.engine.ResetDailyFlags(); err != nil {
				LogError("Midnight reset failed: %v", err)
			}
			midnight.Reset(untilNextMidnight(r.now()))
		}
	}
}

// handleEvent dispatches one event line to the tracker
func (r *Runner) handleEvent(line []byte) {
	ev, err := ParseEvent(line)
	if err != nil {
		LogWarn("Dropping event: %v", err)
		return
	}

	switch ev.Type {
	case EventFocus:
		if err := r.tracker.HandleFocus(ev.URL, ev.Title); err != nil {
			LogError("Focus handler failed: %v", err)
		}
	case EventBlur:
		if err := r.tracker.HandleBlur(); err != nil {
			LogError("Blur handler failed: %v", err)
		}
	}
}

// handleTick flushes the session, checks goals, and periodically sweeps
// retention. Steps are sequenced: the flush write lands before the goal
// evaluation reads the counters.
func (r *Runner) handleTick(ticks int) {
	if err := r.tracker.Tick(); err != nil {
		LogError("Tick flush failed: %v", err)
	}

	if err := r.engine.CheckAndNotify(); err != nil {
		LogError("Goal check failed: %v", err)
	}

	if r.sweepEvery > 0 && ticks%r.sweepEvery == 0 {
		settings, err := r.store.Settings()
		if err != nil {
			LogError("Failed to load settings for sweep: %v", err)
			return
		}
		if err := r.agg.SweepRetention(settings.DataRetention); err != nil {
			LogError("Retention sweep failed: %v", err)
		}
	}
}

// shutdown flushes the current session so time tracked up to exit is not lost
func (r *Runner) shutdown() {
	if err := r.tracker.HandleBlur(); err != nil {
		LogError("Final flush failed: %v", err)
	}
}

// untilNextMidnight computes the wait until the next local midnight
func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}
