package internal

import (
	"math"
	"sort"
	"time"
)

// DomainTime is one website's share of today, in minutes
type DomainTime struct {
	Domain  string `json:"domain"`
	Minutes int    `json:"minutes"`
}

// Report is the aggregated view served to the UI layer: today's totals, the
// category and weekly breakdowns, and per-goal progress.
type Report struct {
	Date         string         `json:"date"`
	TodayMinutes int            `json:"todayMinutes"`
	TopDomains   []DomainTime   `json:"topDomains"`
	Categories   []CategoryTime `json:"categories"`
	Weekly       []WeeklyEntry  `json:"weekly"`
	Goals        []GoalProgress `json:"goals"`
}

// ReportBuilder assembles reports from the store. The current session is
// flushed first so the counters reflect time up to the moment of the query.
type ReportBuilder struct {
	store   *Store
	tracker *SessionTracker
	agg     *StatsAggregator
	engine  *GoalEngine
	now     func() time.Time
}

// NewReportBuilder creates a ReportBuilder
func NewReportBuilder(store *Store, tracker *SessionTracker, agg *StatsAggregator, engine *GoalEngine) *ReportBuilder {
	return &ReportBuilder{
		store:   store,
		tracker: tracker,
		agg:     agg,
		engine:  engine,
		now:     time.Now,
	}
}

// Build assembles today's report
func (b *ReportBuilder) Build() (*Report, error) {
	if err := b.tracker.Tick(); err != nil {
		// Stats are still usable without the in-flight seconds
		LogWarn("Failed to flush session before report: %v", err)
	}

	date := DateKey(b.now())
	report := &Report{Date: date}

	day, err := b.store.Stats(date)
	if err != nil {
		return nil, err
	}

	if day != nil {
		report.TodayMinutes = int(math.Round(float64(day.TotalTime) / 60))
		for domain, ws := range day.Websites {
			report.TopDomains = append(report.TopDomains, DomainTime{
				Domain:  domain,
				Minutes: int(math.Round(float64(ws.TotalTime) / 60)),
			})
		}
		sort.Slice(report.TopDomains, func(i, j int) bool {
			if report.TopDomains[i].Minutes != report.TopDomains[j].Minutes {
				return report.TopDomains[i].Minutes > report.TopDomains[j].Minutes
			}
			return report.TopDomains[i].Domain < report.TopDomains[j].Domain
		})
	}

	if report.Categories, err = b.agg.CategoryBreakdown(date); err != nil {
		return nil, err
	}
	if report.Weekly, err = b.agg.WeeklyTotals(); err != nil {
		return nil, err
	}

	goals, err := b.store.Goals()
	if err != nil {
		return nil, err
	}
	report.Goals = b.engine.Progress(goals, day)

	return report, nil
}
