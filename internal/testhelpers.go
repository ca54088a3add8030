package internal

import "time"

// MemoryKV is an in-memory KV used by tests
type MemoryKV struct {
	data map[string]string

	// FailSets makes every Set return this error when non-nil
	FailSets error
}

// NewMemoryKV creates an empty MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value for a key
func (m *MemoryKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores a value
func (m *MemoryKV) Set(key, value string) error {
	if m.FailSets != nil {
		return m.FailSets
	}
	m.data[key] = value
	return nil
}

// Delete removes keys
func (m *MemoryKV) Delete(keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Len returns the number of stored keys
func (m *MemoryKV) Len() int {
	return len(m.data)
}

// CreateTestDayStats creates a DayStats with one website entry
func CreateTestDayStats(date, website string, totalTime int64, visits int) *DayStats {
	day := NewDayStats(date)
	day.Websites[website] = &WebsiteStats{TotalTime: totalTime, Visits: visits}
	day.TotalTime = totalTime
	return day
}

// CreateTestGoal creates an active goal with an ID
func CreateTestGoal(id, website string, goalType GoalType, limit float64) *Goal {
	return &Goal{
		ID:      id,
		Website: website,
		Type:    goalType,
		Limit:   limit,
		Active:  true,
	}
}

// FixedClock returns a now() func pinned to t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
