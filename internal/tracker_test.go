package internal

import (
	"testing"
	"time"
)

func TestIsTrackableURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "empty", url: "", want: false},
		{name: "http page", url: "http://example.com/page", want: true},
		{name: "https page", url: "https://example.com", want: true},
		{name: "chrome internal", url: "chrome://settings", want: false},
		{name: "extension page", url: "chrome-extension://abcdef/popup.html", want: false},
		{name: "devtools", url: "chrome-devtools://devtools/inspector.html", want: false},
		{name: "about page", url: "about:blank", want: false},
		{name: "local file", url: "file:///home/user/doc.html", want: false},
		{name: "ftp", url: "ftp://example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTrackableURL(tt.url); got != tt.want {
				t.Errorf("IsTrackableURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

// newTestTracker builds a tracker over an in-memory store with a mutable clock
func newTestTracker(t *testing.T, start time.Time) (*SessionTracker, *Store, *time.Time) {
	t.Helper()
	store := NewStore(NewMemoryKV())
	agg := NewStatsAggregator(store)
	tracker := NewSessionTracker(store, agg)

	clock := start
	now := func() time.Time { return clock }
	agg.now = now
	tracker.now = now

	return tracker, store, &clock
}

func TestSessionTracker_VisitCountedAtOpen(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tracker, store, clock := newTestTracker(t, start)

	if err := tracker.HandleFocus("https://site.com/a", "Site"); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	// Focusing the same website again must not count another visit
	*clock = clock.Add(30 * time.Second)
	if err := tracker.HandleFocus("https://site.com/b", "Site"); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	day, err := store.Stats(DateKey(start))
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if day == nil {
		t.Fatal("expected stats for today")
	}
	if got := day.Websites["site.com"].Visits; got != 1 {
		t.Errorf("Visits = %d, want 1", got)
	}
}

func TestSessionTracker_SwitchWebsiteFlushesAndCounts(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tracker, store, clock := newTestTracker(t, start)

	if err := tracker.HandleFocus("https://first.com", ""); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	*clock = clock.Add(90 * time.Second)
	if err := tracker.HandleFocus("https://second.com", ""); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	day, err := store.Stats(DateKey(start))
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	first := day.Websites["first.com"]
	if first == nil || first.TotalTime != 90 {
		t.Errorf("first.com totalTime = %v, want 90", first)
	}
	second := day.Websites["second.com"]
	if second == nil || second.Visits != 1 {
		t.Errorf("second.com visits = %v, want 1", second)
	}
	if second.TotalTime != 0 {
		t.Errorf("second.com totalTime = %d, want 0 (just opened)", second.TotalTime)
	}

	session, err := store.CurrentSession()
	if err != nil {
		t.Fatalf("CurrentSession() error = %v", err)
	}
	if session == nil || session.Website != "second.com" {
		t.Errorf("current session = %+v, want second.com", session)
	}
}

func TestSessionTracker_IdempotentFlush(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tracker, store, clock := newTestTracker(t, start)

	if err := tracker.HandleFocus("https://example.com", ""); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	*clock = clock.Add(60 * time.Second)
	if err := tracker.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	// Second flush with no elapsed time must be a pure no-op
	if err := tracker.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	day, err := store.Stats(DateKey(start))
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if got := day.Websites["example.com"].TotalTime; got != 60 {
		t.Errorf("totalTime = %d, want 60 (no double count)", got)
	}
	if day.TotalTime != 60 {
		t.Errorf("day totalTime = %d, want 60", day.TotalTime)
	}
}

func TestSessionTracker_TickKeepsSessionOpen(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tracker, store, clock := newTestTracker(t, start)

	if err := tracker.HandleFocus("https://example.com", ""); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	*clock = clock.Add(60 * time.Second)
	if err := tracker.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	session, err := store.CurrentSession()
	if err != nil {
		t.Fatalf("CurrentSession() error = %v", err)
	}
	if session == nil || !session.IsActive {
		t.Fatal("session should remain active after tick")
	}
	if session.StartTime != clock.UnixMilli() {
		t.Errorf("startTime = %d, want reset to now (%d)", session.StartTime, clock.UnixMilli())
	}
}

func TestSessionTracker_BlurEndsSession(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tracker, store, clock := newTestTracker(t, start)

	if err := tracker.HandleFocus("https://example.com", ""); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	*clock = clock.Add(45 * time.Second)
	if err := tracker.HandleBlur(); err != nil {
		t.Fatalf("HandleBlur() error = %v", err)
	}

	session, err := store.CurrentSession()
	if err != nil {
		t.Fatalf("CurrentSession() error = %v", err)
	}
	if session != nil {
		t.Errorf("session = %+v, want nil after blur", session)
	}

	day, _ := store.Stats(DateKey(start))
	if got := day.Websites["example.com"].TotalTime; got != 45 {
		t.Errorf("totalTime = %d, want 45", got)
	}

	// Blur while idle is a no-op
	if err := tracker.HandleBlur(); err != nil {
		t.Fatalf("HandleBlur() while idle error = %v", err)
	}
}

func TestSessionTracker_NonTrackableURLEndsSession(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tracker, store, clock := newTestTracker(t, start)

	if err := tracker.HandleFocus("https://example.com", ""); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	*clock = clock.Add(10 * time.Second)
	if err := tracker.HandleFocus("chrome://settings", ""); err != nil {
		t.Fatalf("HandleFocus() error = %v", err)
	}

	session, err := store.CurrentSession()
	if err != nil {
		t.Fatalf("CurrentSession() error = %v", err)
	}
	if session != nil {
		t.Errorf("session = %+v, want nil after navigating to internal page", session)
	}

	day, _ := store.Stats(DateKey(start))
	if got := day.Websites["example.com"].TotalTime; got != 10 {
		t.Errorf("totalTime = %d, want 10", got)
	}
}
