// Package tracker implements the activity ledger and the derived
// statistics kept alongside it: per-day aggregates, the user profile and
// the consecutive-day streak. Every mutation recomputes the affected
// aggregates wholesale; nothing is patched incrementally.
package tracker

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/amsaleh/daytrack/internal/store"
)

type Manager struct {
	store *store.Store
	now   func() time.Time
}

func New(s *store.Store) *Manager {
	return &Manager{store: s, now: time.Now}
}

// ValidationError reports a rejected write at the ledger boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AddInput carries the fields of a new ledger entry. Points is the base
// rate per 30-minute unit; the stored record's Points field is derived.
type AddInput struct {
	ActivityID        string
	Name              string
	Description       string
	Category          store.Category
	Duration          int // minutes
	Points            int // per 30-minute unit
	Notes             string
	CustomTitle       string
	CustomDescription string
}

// UpdatePatch carries the editable fields of an existing record. The
// record's date, activity reference and timestamps are frozen after
// creation, so they are not representable here.
type UpdatePatch struct {
	Duration          *int
	CustomTitle       *string
	CustomDescription *string
	Notes             *string
}

func (m *Manager) today() string {
	return m.now().UTC().Format(store.DateFormat)
}

// scalePoints derives record points from the base rate and duration,
// linearly against the 30-minute unit.
func scalePoints(base, durationMin int) int {
	return int(math.Round(float64(base) * float64(durationMin) / float64(store.PointsUnitMin)))
}

func (m *Manager) newRecordID() string {
	return fmt.Sprintf("activity_%d_%s", m.now().UnixMilli(), uuid.NewString()[:8])
}

// logs reads the full ledger, degrading to empty on storage failure.
func (m *Manager) logs() []store.ActivityRecord {
	logs, err := m.store.Logs()
	if err != nil {
		return nil
	}
	return logs
}

func (m *Manager) dailyStats() []store.DailyStat {
	stats, err := m.store.DailyStats()
	if err != nil {
		return nil
	}
	return stats
}

func (m *Manager) validate(input AddInput) error {
	if input.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if !input.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", input.Category)}
	}
	catalog, err := m.store.Catalog()
	if err == nil {
		if _, ok := catalog.Find(input.ActivityID); !ok {
			return &ValidationError{Field: "activityId", Reason: fmt.Sprintf("not in catalog: %q", input.ActivityID)}
		}
	}
	return nil
}

// AddActivity appends a record for targetDate (today when empty) and
// recomputes that day's aggregate and the profile.
func (m *Manager) AddActivity(input AddInput, targetDate string) (*store.ActivityRecord, error) {
	if err := m.validate(input); err != nil {
		return nil, err
	}

	now := m.now().UTC()
	date := targetDate
	if date == "" {
		date = now.Format(store.DateFormat)
	} else if _, err := time.Parse(store.DateFormat, date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: fmt.Sprintf("want YYYY-MM-DD, got %q", date)}
	}

	rec := store.ActivityRecord{
		ID:                m.newRecordID(),
		ActivityID:        input.ActivityID,
		UserID:            "user_1",
		Date:              date,
		ActualTime:        now,
		RecordedTime:      now.Add(-time.Duration(input.Duration) * time.Minute),
		Duration:          input.Duration,
		Points:            scalePoints(input.Points, input.Duration),
		OriginalPoints:    input.Points,
		Notes:             input.Notes,
		CustomTitle:       input.CustomTitle,
		CustomDescription: input.CustomDescription,
		Category:          input.Category,
		Name:              input.Name,
		Description:       input.Description,
		CreatedAt:         now,
	}

	logs := append(m.logs(), rec)
	if err := m.store.SaveLogs(logs); err != nil {
		return nil, fmt.Errorf("append activity: %w", err)
	}

	m.recomputeDay(date)
	m.recomputeProfile()

	return &rec, nil
}

// ActivitiesForDate returns the day's records in insertion order.
func (m *Manager) ActivitiesForDate(date string) []store.ActivityRecord {
	var out []store.ActivityRecord
	for _, rec := range m.logs() {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out
}

// AllActivities returns the full ledger in insertion order.
func (m *Manager) AllActivities() []store.ActivityRecord {
	return m.logs()
}

// AllDailyStats returns every stored per-day aggregate.
func (m *Manager) AllDailyStats() []store.DailyStat {
	return m.dailyStats()
}

// UpdateActivity merges patch into the record with the given id and
// recomputes the affected day and the profile. Returns false when no such
// record exists.
func (m *Manager) UpdateActivity(id string, patch UpdatePatch) bool {
	logs := m.logs()
	idx := -1
	for i := range logs {
		if logs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	rec := &logs[idx]
	if patch.Duration != nil {
		rec.Duration = *patch.Duration
		rec.Points = scalePoints(rec.OriginalPoints, rec.Duration)
	}
	if patch.CustomTitle != nil {
		rec.CustomTitle = *patch.CustomTitle
	}
	if patch.CustomDescription != nil {
		rec.CustomDescription = *patch.CustomDescription
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}
	rec.UpdatedAt = m.now().UTC()

	if err := m.store.SaveLogs(logs); err != nil {
		return false
	}

	m.recomputeDay(rec.Date)
	m.recomputeProfile()

	return true
}

// DeleteActivity removes the record with the given id, then rebuilds every
// aggregate: a deletion can shift streak continuity observed from any day
// onward. Returns false when no such record exists.
func (m *Manager) DeleteActivity(id string) bool {
	logs := m.logs()
	kept := logs[:0]
	found := false
	for _, rec := range logs {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return false
	}

	if err := m.store.SaveLogs(kept); err != nil {
		return false
	}

	m.RecalculateAll()
	return true
}

// RecalculateAll rebuilds every date's aggregate from the ledger, covering
// dates whose last record was just removed, then the profile and streak.
func (m *Manager) RecalculateAll() {
	dates := map[string]bool{}
	for _, rec := range m.logs() {
		dates[rec.Date] = true
	}
	for _, stat := range m.dailyStats() {
		dates[stat.Date] = true
	}

	for date := range dates {
		m.recomputeDay(date)
	}

	m.recomputeProfile()
	m.recomputeConsecutiveDays()
}

// Profile returns the stored user profile, degraded to zero on failure.
func (m *Manager) Profile() store.UserProfile {
	p, err := m.store.Profile()
	if err != nil {
		return store.UserProfile{}
	}
	return p
}

// AvailableActivities returns the activity catalog.
func (m *Manager) AvailableActivities() store.Catalog {
	c, err := m.store.Catalog()
	if err != nil {
		return store.Catalog{}
	}
	return c
}
