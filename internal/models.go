package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Session represents one continuous period of active attention on a website
type Session struct {
	Website   string `json:"website"`
	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	StartTime int64  `json:"startTime"` // epoch millis, reset forward on every flush
	IsActive  bool   `json:"isActive"`
}

// StartedAt returns the session start as a time.Time
func (s *Session) StartedAt() time.Time {
	return time.Unix(0, s.StartTime*int64(time.Millisecond))
}

// WebsiteStats holds per-website counters for one day
type WebsiteStats struct {
	TotalTime int64 `json:"totalTime"` // seconds
	Visits    int   `json:"visits"`
}

// DayStats holds aggregated counters for one calendar date.
// TotalTime always equals the sum of the website totals; both are updated
// together and never recomputed independently.
type DayStats struct {
	Date      string                   `json:"date"` // YYYY-MM-DD, local time
	TotalTime int64                    `json:"totalTime"`
	Websites  map[string]*WebsiteStats `json:"websites"`
}

// NewDayStats creates an empty DayStats for a date
func NewDayStats(date string) *DayStats {
	return &DayStats{
		Date:     date,
		Websites: make(map[string]*WebsiteStats),
	}
}

// Website returns the stats entry for a hostname, creating it if absent
func (d *DayStats) Website(host string) *WebsiteStats {
	if d.Websites == nil {
		d.Websites = make(map[string]*WebsiteStats)
	}
	ws, ok := d.Websites[host]
	if !ok {
		ws = &WebsiteStats{}
		d.Websites[host] = ws
	}
	return ws
}

// GoalType distinguishes the two kinds of goals. Each case carries its own
// unit conversion and display unit.
type GoalType int

const (
	// GoalTimeLimit limits minutes spent on a website per day
	GoalTimeLimit GoalType = iota
	// GoalVisitLimit limits the number of visits to a website per day
	GoalVisitLimit
)

// String returns the wire name of the goal type
func (t GoalType) String() string {
	switch t {
	case GoalVisitLimit:
		return "visits"
	default:
		return "limit"
	}
}

// Unit returns the human unit for the goal type
func (t GoalType) Unit() string {
	if t == GoalVisitLimit {
		return "visits"
	}
	return "min"
}

// CurrentValue extracts the goal-relevant counter from a day's website stats.
// Time goals measure minutes, visit goals measure the visit count.
func (t GoalType) CurrentValue(ws *WebsiteStats) float64 {
	if ws == nil {
		return 0
	}
	if t == GoalVisitLimit {
		return float64(ws.Visits)
	}
	return float64(ws.TotalTime) / 60
}

// ParseGoalType parses a wire name into a GoalType
func ParseGoalType(s string) (GoalType, error) {
	switch s {
	case "limit", "time":
		return GoalTimeLimit, nil
	case "visits", "visit":
		return GoalVisitLimit, nil
	default:
		return GoalTimeLimit, fmt.Errorf("unknown goal type: %q", s)
	}
}

// MarshalJSON encodes the goal type as its wire name
func (t GoalType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a goal type from its wire name
func (t *GoalType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseGoalType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Goal is a user-defined daily limit for one website. The notified flags are
// monotone within a calendar day: once set they stay set until the midnight
// reset, which is what prevents duplicate notifications for one crossing.
type Goal struct {
	ID               string   `json:"id"`
	Website          string   `json:"website"`
	Type             GoalType `json:"type"`
	Limit            float64  `json:"value"` // minutes for time goals, count for visit goals
	Active           bool     `json:"active"`
	NotifiedWarning  bool     `json:"notifiedWarning"`
	NotifiedExceeded bool     `json:"notifiedExceeded"`
}

// Validate rejects goals that must not be persisted
func (g *Goal) Validate() error {
	if g.Website == "" {
		return fmt.Errorf("goal website must not be empty")
	}
	if g.Limit <= 0 {
		return fmt.Errorf("goal limit must be positive, got %v", g.Limit)
	}
	return nil
}

// Settings is the process-wide configuration
type Settings struct {
	Notifications         bool  `json:"notifications"`
	NotificationFrequency int   `json:"notificationFrequency"` // minutes between goal checks
	DataRetention         int   `json:"dataRetention"`         // days of stats to keep
	LastNotificationCheck int64 `json:"lastNotificationCheck"` // epoch millis
}

// DefaultSettings returns the settings used before the user changes anything
func DefaultSettings() *Settings {
	return &Settings{
		Notifications:         true,
		NotificationFrequency: 15,
		DataRetention:         30,
	}
}

// SessionRecord is the legacy per-(url, date) aggregation view. It is derived
// from DayStats by RebuildSessionsView and never mutated on its own.
type SessionRecord struct {
	URL         string `json:"url"`
	Date        string `json:"date"`
	Duration    int64  `json:"duration"` // seconds
	Visits      int    `json:"visits"`
	LastUpdated int64  `json:"lastUpdated,omitempty"` // epoch millis
}

// DateKey formats a time as the canonical YYYY-MM-DD stats key, in local time.
// The fixed-width zero-padded format makes lexicographic comparison of keys
// equivalent to date comparison.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
