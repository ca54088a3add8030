package internal

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// CategoryTime is one category's share of a day, in minutes
type CategoryTime struct {
	Category string `json:"category"`
	Minutes  int    `json:"minutes"`
}

// WeeklyEntry is one day's total in the weekly view
type WeeklyEntry struct {
	Date      string `json:"date"`
	TotalTime int64  `json:"totalTime"` // seconds
}

// StatsAggregator folds elapsed session durations into per-day, per-website
// counters and derives the category/weekly views from them.
//
// Commit and RecordVisit are read-modify-write against the whole stats
// object. The store has no compare-and-swap, so overlapping writers would be
// last-write-wins; the tracker is the only producer in practice.
type StatsAggregator struct {
	store *Store
	now   func() time.Time
}

// NewStatsAggregator creates a StatsAggregator over a store
func NewStatsAggregator(store *Store) *StatsAggregator {
	return &StatsAggregator{
		store: store,
		now:   time.Now,
	}
}

// Commit adds elapsed seconds to a website's counters for a date, creating
// the day and website entries as needed. The day total and the website total
// move together, which is what keeps the conservation invariant.
func (a *StatsAggregator) Commit(date, website string, durationSeconds int64) error {
	if durationSeconds <= 0 {
		return nil
	}

	all, err := a.store.AllStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	day, ok := all[date]
	if !ok {
		day = NewDayStats(date)
		all[date] = day
	}

	ws := day.Website(website)
	ws.TotalTime += durationSeconds
	day.TotalTime += durationSeconds

	if err := a.store.SaveAllStats(all); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	LogDebug("Committed %ds for %s on %s", durationSeconds, website, date)
	return nil
}

// RecordVisit increments a website's visit counter for a date
func (a *StatsAggregator) RecordVisit(date, website string) error {
	all, err := a.store.AllStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	day, ok := all[date]
	if !ok {
		day = NewDayStats(date)
		all[date] = day
	}

	day.Website(website).Visits++

	if err := a.store.SaveAllStats(all); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// CategoryBreakdown classifies every website tracked on a date and sums time
// per category, in minutes, sorted descending by time
func (a *StatsAggregator) CategoryBreakdown(date string) ([]CategoryTime, error) {
	day, err := a.store.Stats(date)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return []CategoryTime{}, nil
	}

	totals := make(map[string]float64)
	for website, ws := range day.Websites {
		totals[Categorize(website)] += float64(ws.TotalTime) / 60
	}

	result := make([]CategoryTime, 0, len(totals))
	for category, minutes := range totals {
		result = append(result, CategoryTime{
			Category: CapitalizeCategory(category),
			Minutes:  int(math.Round(minutes)),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Minutes != result[j].Minutes {
			return result[i].Minutes > result[j].Minutes
		}
		return result[i].Category < result[j].Category
	})

	return result, nil
}

// WeeklyTotals returns the last 7 days' totals, oldest first, with today as
// the last element and zero totals for dates with no entry
func (a *StatsAggregator) WeeklyTotals() ([]WeeklyEntry, error) {
	all, err := a.store.AllStats()
	if err != nil {
		return nil, err
	}

	today := a.now()
	result := make([]WeeklyEntry, 0, 7)
	for i := 6; i >= 0; i-- {
		date := DateKey(today.AddDate(0, 0, -i))
		entry := WeeklyEntry{Date: date}
		if day, ok := all[date]; ok {
			entry.TotalTime = day.TotalTime
		}
		result = append(result, entry)
	}

	return result, nil
}

// SweepRetention deletes every day older than the retention window. The
// cutoff compare is on the YYYY-MM-DD strings; the format is fixed-width so
// string order is date order.
func (a *StatsAggregator) SweepRetention(retentionDays int) error {
	cutoff := DateKey(a.now().AddDate(0, 0, -retentionDays))

	all, err := a.store.AllStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	modified := false
	for date := range all {
		if date < cutoff {
			delete(all, date)
			modified = true
		}
	}

	if !modified {
		return nil
	}

	if err := a.store.SaveAllStats(all); err != nil {
		return fmt.Errorf("failed to save stats after sweep: %w", err)
	}
	LogInfo("Retention sweep removed stats older than %s", cutoff)
	return nil
}

// RebuildSessionsView regenerates the legacy per-(url, date) sessions
// collection from the canonical day stats. The view is export-only; nothing
// reads it back into the aggregation.
func (a *StatsAggregator) RebuildSessionsView() error {
	all, err := a.store.AllStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	now := a.now().UnixMilli()
	var records []*SessionRecord
	for date, day := range all {
		for website, ws := range day.Websites {
			records = append(records, &SessionRecord{
				URL:         website,
				Date:        date,
				Duration:    ws.TotalTime,
				Visits:      ws.Visits,
				LastUpdated: now,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].URL < records[j].URL
	})

	return a.store.SaveSessionsView(records)
}
