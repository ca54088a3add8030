package internal

import (
	"testing"
	"time"
)

func newTestAggregator(t *testing.T, now time.Time) (*StatsAggregator, *Store) {
	t.Helper()
	store := NewStore(NewMemoryKV())
	agg := NewStatsAggregator(store)
	agg.now = FixedClock(now)
	return agg, store
}

func TestStatsAggregator_Conservation(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	agg, store := newTestAggregator(t, now)
	date := DateKey(now)

	commits := []struct {
		website string
		seconds int64
	}{
		{"a.com", 120},
		{"b.com", 45},
		{"a.com", 30},
		{"c.com", 600},
		{"b.com", 5},
	}

	for _, c := range commits {
		if err := agg.Commit(date, c.website, c.seconds); err != nil {
			t.Fatalf("Commit(%s, %d) error = %v", c.website, c.seconds, err)
		}
	}

	day, err := store.Stats(date)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	var sum int64
	for _, ws := range day.Websites {
		sum += ws.TotalTime
	}
	if day.TotalTime != sum {
		t.Errorf("day totalTime = %d, want sum of websites %d", day.TotalTime, sum)
	}
	if day.TotalTime != 800 {
		t.Errorf("day totalTime = %d, want 800", day.TotalTime)
	}
}

func TestStatsAggregator_CommitIgnoresNonPositive(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	agg, store := newTestAggregator(t, now)
	date := DateKey(now)

	if err := agg.Commit(date, "a.com", 0); err != nil {
		t.Fatalf("Commit(0) error = %v", err)
	}
	if err := agg.Commit(date, "a.com", -5); err != nil {
		t.Fatalf("Commit(-5) error = %v", err)
	}

	day, err := store.Stats(date)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if day != nil {
		t.Errorf("stats = %+v, want none for non-positive commits", day)
	}
}

func TestStatsAggregator_RecordVisit(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	agg, store := newTestAggregator(t, now)
	date := DateKey(now)

	for i := 0; i < 3; i++ {
		if err := agg.RecordVisit(date, "a.com"); err != nil {
			t.Fatalf("RecordVisit() error = %v", err)
		}
	}

	day, _ := store.Stats(date)
	if got := day.Websites["a.com"].Visits; got != 3 {
		t.Errorf("visits = %d, want 3", got)
	}
	if day.TotalTime != 0 {
		t.Errorf("totalTime = %d, want 0 (visits do not add time)", day.TotalTime)
	}
}

func TestStatsAggregator_WeeklyTotalsShape(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	agg, _ := newTestAggregator(t, now)

	// Only two of the seven days have data
	if err := agg.Commit(DateKey(now), "a.com", 300); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if err := agg.Commit(DateKey(now.AddDate(0, 0, -3)), "b.com", 60); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	weekly, err := agg.WeeklyTotals()
	if err != nil {
		t.Fatalf("WeeklyTotals() error = %v", err)
	}

	if len(weekly) != 7 {
		t.Fatalf("len(weekly) = %d, want 7", len(weekly))
	}
	if weekly[6].Date != DateKey(now) {
		t.Errorf("last entry date = %s, want today %s", weekly[6].Date, DateKey(now))
	}
	if weekly[0].Date != DateKey(now.AddDate(0, 0, -6)) {
		t.Errorf("first entry date = %s, want %s", weekly[0].Date, DateKey(now.AddDate(0, 0, -6)))
	}
	for i := 1; i < 7; i++ {
		if weekly[i].Date <= weekly[i-1].Date {
			t.Errorf("weekly not ordered oldest first at %d: %s <= %s", i, weekly[i].Date, weekly[i-1].Date)
		}
	}
	if weekly[6].TotalTime != 300 {
		t.Errorf("today totalTime = %d, want 300", weekly[6].TotalTime)
	}
	if weekly[3].TotalTime != 60 {
		t.Errorf("day -3 totalTime = %d, want 60", weekly[3].TotalTime)
	}
	if weekly[1].TotalTime != 0 {
		t.Errorf("empty day totalTime = %d, want 0", weekly[1].TotalTime)
	}
}

func TestStatsAggregator_SweepRetention(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.Local)
	agg, store := newTestAggregator(t, now)

	stats := map[string]*DayStats{
		"2023-01-01": CreateTestDayStats("2023-01-01", "old.com", 100, 1),
		"2024-01-01": CreateTestDayStats("2024-01-01", "recent.com", 200, 2),
	}
	if err := store.SaveAllStats(stats); err != nil {
		t.Fatalf("SaveAllStats() error = %v", err)
	}

	if err := agg.SweepRetention(30); err != nil {
		t.Fatalf("SweepRetention() error = %v", err)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() error = %v", err)
	}
	if _, ok := all["2023-01-01"]; ok {
		t.Error("2023-01-01 should have been swept")
	}
	if _, ok := all["2024-01-01"]; !ok {
		t.Error("2024-01-01 (inside the window) should survive")
	}
	if len(all) != 1 {
		t.Errorf("len(stats) = %d, want 1", len(all))
	}
}

func TestStatsAggregator_SweepRetentionNoChange(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.Local)
	agg, store := newTestAggregator(t, now)

	stats := map[string]*DayStats{
		"2024-01-30": CreateTestDayStats("2024-01-30", "a.com", 100, 1),
	}
	if err := store.SaveAllStats(stats); err != nil {
		t.Fatalf("SaveAllStats() error = %v", err)
	}

	if err := agg.SweepRetention(30); err != nil {
		t.Fatalf("SweepRetention() error = %v", err)
	}

	all, _ := store.AllStats()
	if len(all) != 1 {
		t.Errorf("len(stats) = %d, want 1 (nothing to sweep)", len(all))
	}
}

func TestStatsAggregator_CategoryBreakdown(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	agg, _ := newTestAggregator(t, now)
	date := DateKey(now)

	commits := map[string]int64{
		"www.youtube.com":   1800, // entertainment, 30 min
		"github.com":        600,  // productivity, 10 min
		"some-obscure.site": 300,  // other, 5 min
		"reddit.com":        900,  // social, 15 min
	}
	for website, seconds := range commits {
		if err := agg.Commit(date, website, seconds); err != nil {
			t.Fatalf("Commit(%s) error = %v", website, err)
		}
	}

	breakdown, err := agg.CategoryBreakdown(date)
	if err != nil {
		t.Fatalf("CategoryBreakdown() error = %v", err)
	}

	want := []CategoryTime{
		{Category: "Entertainment", Minutes: 30},
		{Category: "Social", Minutes: 15},
		{Category: "Productivity", Minutes: 10},
		{Category: "Other", Minutes: 5},
	}
	if len(breakdown) != len(want) {
		t.Fatalf("len(breakdown) = %d, want %d: %+v", len(breakdown), len(want), breakdown)
	}
	for i, w := range want {
		if breakdown[i] != w {
			t.Errorf("breakdown[%d] = %+v, want %+v", i, breakdown[i], w)
		}
	}
}

func TestStatsAggregator_CategoryBreakdownEmptyDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	agg, _ := newTestAggregator(t, now)

	breakdown, err := agg.CategoryBreakdown("2024-03-09")
	if err != nil {
		t.Fatalf("CategoryBreakdown() error = %v", err)
	}
	if len(breakdown) != 0 {
		t.Errorf("breakdown = %+v, want empty", breakdown)
	}
}

func TestStatsAggregator_RebuildSessionsView(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	agg, store := newTestAggregator(t, now)

	if err := agg.Commit("2024-03-09", "a.com", 120); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if err := agg.Commit("2024-03-10", "b.com", 60); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if err := agg.RecordVisit("2024-03-10", "b.com"); err != nil {
		t.Fatalf("RecordVisit() error = %v", err)
	}

	if err := agg.RebuildSessionsView(); err != nil {
		t.Fatalf("RebuildSessionsView() error = %v", err)
	}

	records, err := store.SessionsView()
	if err != nil {
		t.Fatalf("SessionsView() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Date != "2024-03-09" || records[0].URL != "a.com" || records[0].Duration != 120 {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].URL != "b.com" || records[1].Visits != 1 {
		t.Errorf("records[1] = %+v", records[1])
	}
}
