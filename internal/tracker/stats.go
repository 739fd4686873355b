package tracker

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/amsaleh/daytrack/internal/store"
)

// recomputeDay folds the ledger records of one date into its aggregate and
// upserts it by date key, preserving the existing aggregate's id. Calling
// it twice with no intervening mutation yields the same row.
func (m *Manager) recomputeDay(date string) store.DailyStat {
	records := m.ActivitiesForDate(date)

	totalPoints := 0
	totalDuration := 0
	for _, rec := range records {
		totalPoints += rec.Points
		totalDuration += rec.Duration
	}

	stat := store.DailyStat{
		UserID:               "user_1",
		Date:                 date,
		TotalPoints:          totalPoints,
		TotalDuration:        totalDuration,
		ActivitiesCount:      len(records),
		IsCompleted:          totalPoints >= store.DailyGoalPoints,
		CompletionPercentage: math.Min(float64(totalPoints)/store.DailyGoalPoints*100, 100),
		UpdatedAt:            m.now().UTC(),
	}

	stats := m.dailyStats()
	idx := -1
	for i := range stats {
		if stats[i].Date == date {
			idx = i
			break
		}
	}
	if idx >= 0 {
		stat.ID = stats[idx].ID
		stats[idx] = stat
	} else {
		// Suffixed like record ids: a bulk recompute can mint several
		// aggregates within the same millisecond.
		stat.ID = fmt.Sprintf("day_%d_%s", m.now().UnixMilli(), uuid.NewString()[:8])
		stats = append(stats, stat)
	}

	if err := m.store.SaveDailyStats(stats); err != nil {
		return stat
	}

	m.recomputeConsecutiveDays()
	return stat
}

// DailyStats returns the aggregate for date, lazily computing and storing
// one when absent.
func (m *Manager) DailyStats(date string) store.DailyStat {
	for _, stat := range m.dailyStats() {
		if stat.Date == date {
			return stat
		}
	}
	return m.recomputeDay(date)
}

// TodayStats returns today's aggregate.
func (m *Manager) TodayStats() store.DailyStat {
	return m.DailyStats(m.today())
}

// recomputeProfile overwrites the profile's derived fields from the full
// ledger. Totals are never incremented in place.
func (m *Manager) recomputeProfile() store.UserProfile {
	profile, err := m.store.Profile()
	if err != nil {
		profile = store.UserProfile{ID: "user_1"}
	}

	totalPoints := 0
	for _, rec := range m.logs() {
		totalPoints += rec.Points
	}

	profile.TotalPoints = totalPoints
	profile.Level = totalPoints / store.LevelStep
	profile.LastActiveDate = m.now().UTC()

	m.store.SaveProfile(profile)
	return profile
}

// recomputeConsecutiveDays walks backward from today, one calendar day at
// a time, counting days whose aggregate reaches the daily goal. The walk
// stops at the first day that has no aggregate or falls short, so the
// streak is an unbroken run of qualifying days ending at today.
func (m *Manager) recomputeConsecutiveDays() int {
	byDate := map[string]store.DailyStat{}
	for _, stat := range m.dailyStats() {
		byDate[stat.Date] = stat
	}

	now := m.now().UTC()
	consecutive := 0
	for i := 0; i < store.StreakLookback; i++ {
		date := now.AddDate(0, 0, -i).Format(store.DateFormat)
		stat, ok := byDate[date]
		if !ok || stat.TotalPoints < store.DailyGoalPoints {
			break
		}
		consecutive++
	}

	profile, err := m.store.Profile()
	if err != nil {
		profile = store.UserProfile{ID: "user_1"}
	}
	profile.ConsecutiveDays = consecutive
	m.store.SaveProfile(profile)

	return consecutive
}
