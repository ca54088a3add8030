package internal

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Event
		wantErr bool
	}{
		{
			name: "focus event",
			line: `{"type":"focus","url":"https://example.com","title":"Example"}`,
			want: Event{Type: EventFocus, URL: "https://example.com", Title: "Example"},
		},
		{
			name: "blur event",
			line: `{"type":"blur"}`,
			want: Event{Type: EventBlur},
		},
		{name: "unknown type", line: `{"type":"resize"}`, wantErr: true},
		{name: "not json", line: `focus example.com`, wantErr: true},
		{name: "empty object", line: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent([]byte(tt.line))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && *got != tt.want {
				t.Errorf("ParseEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUntilNextMidnight(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.Local)
	d := untilNextMidnight(now)
	if d != 30*time.Minute {
		t.Errorf("untilNextMidnight(23:30) = %v, want 30m", d)
	}

	next := now.Add(d)
	if next.Hour() != 0 || next.Minute() != 0 || next.Day() != 11 {
		t.Errorf("next midnight = %v", next)
	}
}

func newTestRunner(t *testing.T, now time.Time) (*Runner, *Store, *time.Time) {
	t.Helper()
	store := NewStore(NewMemoryKV())
	agg := NewStatsAggregator(store)
	tracker := NewSessionTracker(store, agg)
	engine := NewGoalEngine(store, &recordingNotifier{})
	runner := NewRunner(store, tracker, agg, engine)

	clock := now
	nowFn := func() time.Time { return clock }
	agg.now = nowFn
	tracker.now = nowFn
	engine.now = nowFn
	runner.now = nowFn

	return runner, store, &clock
}

func TestRunner_HandleEvent(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	runner, store, clock := newTestRunner(t, start)

	runner.handleEvent([]byte(`{"type":"focus","url":"https://example.com","title":"Example"}`))

	session, err := store.CurrentSession()
	if err != nil {
		t.Fatalf("CurrentSession() error = %v", err)
	}
	if session == nil || session.Website != "example.com" {
		t.Fatalf("session = %+v, want example.com", session)
	}

	*clock = clock.Add(30 * time.Second)
	runner.handleEvent([]byte(`{"type":"blur"}`))

	session, _ = store.CurrentSession()
	if session != nil {
		t.Errorf("session = %+v, want nil after blur", session)
	}

	day, _ := store.Stats(DateKey(start))
	if got := day.Websites["example.com"].TotalTime; got != 30 {
		t.Errorf("totalTime = %d, want 30", got)
	}

	// Malformed events are dropped without touching state
	runner.handleEvent([]byte(`{"type":"focus","url":`))
	if session, _ := store.CurrentSession(); session != nil {
		t.Errorf("malformed event changed state: %+v", session)
	}
}

func TestRunner_HandleTickSweeps(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	runner, store, _ := newTestRunner(t, start)

	old := DateKey(start.AddDate(0, 0, -40))
	if err := store.SaveStats(old, CreateTestDayStats(old, "old.com", 60, 1)); err != nil {
		t.Fatalf("SaveStats() error = %v", err)
	}

	// Ticks 1..9 do not sweep, tick 10 does
	for tick := 1; tick <= 9; tick++ {
		runner.handleTick(tick)
	}
	if all, _ := store.AllStats(); len(all) != 1 {
		t.Fatal("stats swept before the sweep tick")
	}

	runner.handleTick(10)
	if all, _ := store.AllStats(); len(all) != 0 {
		t.Error("stats not swept on the sweep tick")
	}
}

func TestRunner_RunFlushesOnEOF(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	runner, store, _ := newTestRunner(t, start)
	runner.tickInterval = time.Hour

	// StartTime one minute in the past so the final flush has elapsed time
	session := &Session{
		Website:   "example.com",
		StartTime: start.Add(-time.Minute).UnixMilli(),
		IsActive:  true,
	}
	if err := store.SaveCurrentSession(session); err != nil {
		t.Fatalf("SaveCurrentSession() error = %v", err)
	}

	if err := runner.Run(context.Background(), strings.NewReader("")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	day, _ := store.Stats(DateKey(start))
	if day == nil || day.Websites["example.com"].TotalTime != 60 {
		t.Errorf("final flush missing: %+v", day)
	}
	if session, _ := store.CurrentSession(); session != nil {
		t.Errorf("session = %+v, want cleared on shutdown", session)
	}
}

func TestRunner_RunProcessesEventStream(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	runner, store, _ := newTestRunner(t, start)
	runner.tickInterval = time.Hour

	events := strings.Join([]string{
		`{"type":"focus","url":"https://example.com"}`,
		``,
		`{"type":"focus","url":"https://example.com/other-page"}`,
	}, "\n")

	if err := runner.Run(context.Background(), strings.NewReader(events)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	day, _ := store.Stats(DateKey(start))
	if day == nil {
		t.Fatal("expected stats after event stream")
	}
	if got := day.Websites["example.com"].Visits; got != 1 {
		t.Errorf("visits = %d, want 1 (same website, one session)", got)
	}
}
