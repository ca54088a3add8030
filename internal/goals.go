package internal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GoalStatus classifies a goal's progress for the day
type GoalStatus string

const (
	GoalUnder    GoalStatus = "under"
	GoalWarning  GoalStatus = "warning"
	GoalExceeded GoalStatus = "exceeded"
)

// Progress thresholds, in percent of the goal limit
const (
	warningThreshold  = 90
	exceededThreshold = 100
)

// Notifier is the notification sink: fire-and-forget display of a title and
// message. De-duplication is the caller's job, via the notified flags.
type Notifier interface {
	Show(title, message string)
}

// GoalProgress is the per-goal view returned to the UI layer
type GoalProgress struct {
	ID      string     `json:"id"`
	Website string     `json:"website"`
	Type    GoalType   `json:"type"`
	Limit   float64    `json:"limit"`
	Current float64    `json:"current"`
	Percent float64    `json:"percent"`
	Status  GoalStatus `json:"status"`
	Active  bool       `json:"active"`
}

// GoalEngine evaluates active goals against the day's counters and decides
// notification transitions. Notifications are edge-triggered: each severity
// fires once per goal per day, gated by the notified flags, which only the
// midnight reset clears.
type GoalEngine struct {
	store    *Store
	notifier Notifier
	now      func() time.Time
}

// NewGoalEngine creates a GoalEngine
func NewGoalEngine(store *Store, notifier Notifier) *GoalEngine {
	return &GoalEngine{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// classify maps a progress percentage onto a status
func classify(percent float64) GoalStatus {
	switch {
	case percent >= exceededThreshold:
		return GoalExceeded
	case percent >= warningThreshold:
		return GoalWarning
	default:
		return GoalUnder
	}
}

// progressPercent computes how far a goal is toward its limit, 0 when the
// website has no stats yet
func progressPercent(goal *Goal, day *DayStats) float64 {
	if day == nil || goal.Limit <= 0 {
		return 0
	}
	current := goal.Type.CurrentValue(day.Websites[goal.Website])
	return current / goal.Limit * 100
}

// Evaluate checks every active goal against the day's stats and fires at most
// one notification per goal: Exceeded wins over Warning when both are crossed
// in the same pass. Returns whether any notified flag changed, so the caller
// knows to persist the goals.
func (e *GoalEngine) Evaluate(goals []*Goal, day *DayStats) bool {
	changed := false
	for _, goal := range goals {
		if !goal.Active {
			continue
		}

		percent := progressPercent(goal, day)

		if percent >= exceededThreshold && !goal.NotifiedExceeded {
			e.notifier.Show("Goal Exceeded",
				fmt.Sprintf("You've exceeded your %s limit for %s", goalKind(goal.Type), goal.Website))
			goal.NotifiedExceeded = true
			changed = true
		} else if percent >= warningThreshold && percent < exceededThreshold && !goal.NotifiedWarning {
			e.notifier.Show("Goal Warning",
				fmt.Sprintf("You're approaching your %s limit for %s", goalKind(goal.Type), goal.Website))
			goal.NotifiedWarning = true
			changed = true
		}
	}
	return changed
}

func goalKind(t GoalType) string {
	if t == GoalVisitLimit {
		return "visit"
	}
	return "time"
}

// CheckAndNotify runs a throttled goal evaluation: it is a no-op unless at
// least the configured notification frequency has passed since the last
// check. The last-check timestamp is advanced before evaluating so a slow
// notification dispatch cannot cause a re-entrant double check.
func (e *GoalEngine) CheckAndNotify() error {
	settings, err := e.store.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !settings.Notifications {
		return nil
	}

	now := e.now().UnixMilli()
	interval := int64(settings.NotificationFrequency) * 60 * 1000
	if now-settings.LastNotificationCheck < interval {
		return nil
	}

	settings.LastNotificationCheck = now
	if err := e.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	goals, err := e.store.Goals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	if len(goals) == 0 {
		return nil
	}

	day, err := e.store.Stats(DateKey(e.now()))
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	if day == nil {
		return nil
	}

	if e.Evaluate(goals, day) {
		if err := e.store.SaveGoals(goals); err != nil {
			return fmt.Errorf("failed to save goals: %w", err)
		}
	}
	return nil
}

// ResetDailyFlags clears every goal's notified flags. Run once per local
// midnight so each severity can fire again for the new day.
func (e *GoalEngine) ResetDailyFlags() error {
	goals, err := e.store.Goals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	if len(goals) == 0 {
		return nil
	}

	for _, goal := range goals {
		goal.NotifiedWarning = false
		goal.NotifiedExceeded = false
	}

	if err := e.store.SaveGoals(goals); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	LogInfo("Reset notification flags on %d goal(s)", len(goals))
	return nil
}

// Progress builds the per-goal progress view for a day's stats
func (e *GoalEngine) Progress(goals []*Goal, day *DayStats) []GoalProgress {
	result := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		if !goal.Active {
			continue
		}
		percent := progressPercent(goal, day)
		var current float64
		if day != nil {
			current = goal.Type.CurrentValue(day.Websites[goal.Website])
		}
		result = append(result, GoalProgress{
			ID:      goal.ID,
			Website: goal.Website,
			Type:    goal.Type,
			Limit:   goal.Limit,
			Current: current,
			Percent: percent,
			Status:  classify(percent),
			Active:  goal.Active,
		})
	}
	return result
}

// AddGoal validates a goal, assigns it an ID, and appends it to the collection
func (e *GoalEngine) AddGoal(goal *Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}

	goals, err := e.store.Goals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	goal.ID = uuid.New().String()
	goal.Active = true
	goals = append(goals, goal)

	return e.store.SaveGoals(goals)
}

// RemoveGoal deletes a goal by ID
func (e *GoalEngine) RemoveGoal(id string) error {
	goals, err := e.store.Goals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	kept := goals[:0]
	found := false
	for _, goal := range goals {
		if goal.ID == id {
			found = true
			continue
		}
		kept = append(kept, goal)
	}
	if !found {
		return fmt.Errorf("goal not found: %s", id)
	}

	return e.store.SaveGoals(kept)
}

// ToggleGoal flips a goal's active flag
func (e *GoalEngine) ToggleGoal(id string) error {
	goals, err := e.store.Goals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	for _, goal := range goals {
		if goal.ID == id {
			goal.Active = !goal.Active
			return e.store.SaveGoals(goals)
		}
	}
	return fmt.Errorf("goal not found: %s", id)
}
