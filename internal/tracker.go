package internal

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// nonTrackablePrefixes are URL schemes and pages excluded from tracking
var nonTrackablePrefixes = []string{
	"chrome://",
	"chrome-extension://",
	"chrome-devtools://",
	"about:",
	"file://",
}

// IsTrackableURL reports whether a URL is eligible for time tracking:
// an ordinary web page, not a browser-internal or local-file page
func IsTrackableURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	if !strings.HasPrefix(rawURL, "http") {
		return false
	}
	for _, prefix := range nonTrackablePrefixes {
		if strings.HasPrefix(rawURL, prefix) {
			return false
		}
	}
	return true
}

// SessionTracker owns the single current session and moves it between Idle
// (no session) and Tracking (session bound to one website) in response to
// focus and navigation events. Elapsed time is folded into the aggregator on
// every flush.
type SessionTracker struct {
	store *Store
	agg   *StatsAggregator
	now   func() time.Time
}

// NewSessionTracker creates a SessionTracker
func NewSessionTracker(store *Store, agg *StatsAggregator) *SessionTracker {
	return &SessionTracker{
		store: store,
		agg:   agg,
		now:   time.Now,
	}
}

// HandleFocus processes a focus or navigation event for a URL. Non-trackable
// URLs end tracking. Focusing the website already being tracked is a no-op;
// a different website flushes the old session and opens a new one. The visit
// counter is incremented when a session opens, not on flush.
func (t *SessionTracker) HandleFocus(rawURL, title string) error {
	if !IsTrackableURL(rawURL) {
		return t.HandleBlur()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		LogWarn("Ignoring unparseable URL: %s", rawURL)
		return t.HandleBlur()
	}
	website := parsed.Hostname()

	session, err := t.store.CurrentSession()
	if err != nil {
		return fmt.Errorf("failed to load current session: %w", err)
	}

	if session != nil && session.IsActive && session.Website == website {
		// Still on the same website, keep accumulating
		return nil
	}

	if session != nil && session.IsActive {
		if err := t.flush(session, false); err != nil {
			return err
		}
	}

	return t.openSession(website, rawURL, title)
}

// HandleBlur processes loss of focus: flush the current session and go idle
func (t *SessionTracker) HandleBlur() error {
	session, err := t.store.CurrentSession()
	if err != nil {
		return fmt.Errorf("failed to load current session: %w", err)
	}
	if session == nil || !session.IsActive {
		return nil
	}
	return t.flush(session, false)
}

// Tick flushes the current session in place. Called on the periodic timer so
// attribution lag is bounded by the tick interval.
func (t *SessionTracker) Tick() error {
	session, err := t.store.CurrentSession()
	if err != nil {
		return fmt.Errorf("failed to load current session: %w", err)
	}
	if session == nil || !session.IsActive {
		return nil
	}
	return t.flush(session, true)
}

// openSession starts tracking a website and records the visit
func (t *SessionTracker) openSession(website, rawURL, title string) error {
	if title == "" {
		title = website
	}
	session := &Session{
		Website:   website,
		URL:       rawURL,
		Title:     title,
		StartTime: t.now().UnixMilli(),
		IsActive:  true,
	}

	if err := t.store.SaveCurrentSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	LogInfo("Started tracking: %s", website)

	return t.agg.RecordVisit(DateKey(t.now()), website)
}

// flush commits the session's elapsed whole seconds to the aggregator.
// Zero or negative elapsed time is a pure no-op, which guards against clock
// skew and back-to-back flushes. When keepOpen is true the session stays
// active with its clock reset to now; otherwise it ends.
func (t *SessionTracker) flush(session *Session, keepOpen bool) error {
	now := t.now()
	duration := (now.UnixMilli() - session.StartTime) / 1000

	if duration > 0 {
		if err := t.agg.Commit(DateKey(now), session.Website, duration); err != nil {
			return err
		}
	}

	if keepOpen {
		if duration <= 0 {
			return nil
		}
		session.StartTime = now.UnixMilli()
		if err := t.store.SaveCurrentSession(session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	}

	LogInfo("Stopped tracking: %s", session.Website)
	return t.store.ClearCurrentSession()
}
