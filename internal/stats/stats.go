// Package stats holds the read-side dashboard derivations: time-windowed
// totals, category breakdowns, the trailing-week series and historical
// streaks. Everything here is a pure function of the records and a clock
// value passed in by the caller.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/amsaleh/daytrack/internal/store"
)

// TimeFilter selects the calendar window of a dashboard computation.
type TimeFilter string

const (
	FilterDay   TimeFilter = "day"
	FilterWeek  TimeFilter = "week"
	FilterMonth TimeFilter = "month"
	FilterYear  TimeFilter = "year"
)

// TimeFilters in display order.
var TimeFilters = []TimeFilter{FilterDay, FilterWeek, FilterMonth, FilterYear}

// Range is a half-open calendar window [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the window length in whole calendar days, at least 1.
func (r Range) Days() int {
	d := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if d < 1 {
		return 1
	}
	return d
}

// RangeFor computes the calendar window for a filter. The week starts at
// the week's day zero (Sunday); month and year start at their calendar
// boundaries.
func RangeFor(filter TimeFilter, now time.Time) Range {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter {
	case FilterWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return Range{Start: start, End: start.AddDate(0, 0, 7)}
	case FilterMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return Range{Start: start, End: start.AddDate(0, 1, 0)}
	case FilterYear:
		start := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return Range{Start: start, End: start.AddDate(1, 0, 0)}
	default:
		return Range{Start: today, End: today.AddDate(0, 0, 1)}
	}
}

// Filter returns the records whose logical date falls inside r, optionally
// restricted to one category. Records with unparsable dates are dropped.
func Filter(records []store.ActivityRecord, r Range, category store.Category) []store.ActivityRecord {
	var out []store.ActivityRecord
	for _, rec := range records {
		day, err := time.ParseInLocation(store.DateFormat, rec.Date, r.Start.Location())
		if err != nil {
			continue
		}
		if day.Before(r.Start) || !day.Before(r.End) {
			continue
		}
		if category != "" && rec.Category != category {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// CategoryTotals accumulates one breakdown bucket.
type CategoryTotals struct {
	Count  int
	Time   int // minutes
	Points int
}

// Breakdown accumulates records into the three fixed category buckets.
// Unrecognized categories are dropped silently.
func Breakdown(records []store.ActivityRecord) map[store.Category]CategoryTotals {
	out := map[store.Category]CategoryTotals{
		store.CategoryEnglish:    {},
		store.CategoryUniversity: {},
		store.CategoryOther:      {},
	}
	for _, rec := range records {
		bucket, ok := out[rec.Category]
		if !ok {
			continue
		}
		bucket.Count++
		bucket.Time += rec.Duration
		bucket.Points += rec.Points
		out[rec.Category] = bucket
	}
	return out
}

// AverageDaily is total points per day over the window, rounded to one
// decimal place.
func AverageDaily(records []store.ActivityRecord, r Range) float64 {
	total := 0
	for _, rec := range records {
		total += rec.Points
	}
	return math.Round(float64(total)/float64(r.Days())*10) / 10
}

// DayPoint is one entry of the trailing-week series.
type DayPoint struct {
	Date       string
	Activities int
	Points     int
	Time       int // minutes
}

// WeekSeries reports per-day counts for the trailing calendar week: today
// and the six days before it, oldest first. It is fed the full ledger and
// is independent of any dashboard filter.
func WeekSeries(records []store.ActivityRecord, now time.Time) []DayPoint {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	series := make([]DayPoint, 7)
	index := map[string]int{}
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i-6).Format(store.DateFormat)
		series[i] = DayPoint{Date: date}
		index[date] = i
	}

	for _, rec := range records {
		i, ok := index[rec.Date]
		if !ok {
			continue
		}
		series[i].Activities++
		series[i].Points += rec.Points
		series[i].Time += rec.Duration
	}

	return series
}

// StreakData reports historical run lengths, computed independently from
// the profile's streak ending at today. Consistency is the weekly
// participation rate: qualifying days within the trailing calendar week as
// a percentage of 7.
type StreakData struct {
	Current     int
	Longest     int
	Consistency int
}

// Streaks scans distinct sorted dates with consecutive-day gap detection:
// a gap of exactly one day extends the run, any other gap closes it and
// opens a new run of length 1. Current is the closing run's length when it
// reaches today or yesterday, otherwise 0. Callers feed it qualifying
// dates only (see CompletedDates); a day with activity but below the
// daily goal does not extend a run.
func Streaks(dates []string, now time.Time) StreakData {
	distinct := map[string]bool{}
	for _, d := range dates {
		distinct[d] = true
	}
	sorted := make([]string, 0, len(distinct))
	for d := range distinct {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	if len(sorted) == 0 {
		return StreakData{}
	}

	longest := 0
	run := 0
	var prev time.Time
	for i, d := range sorted {
		day, err := time.Parse(store.DateFormat, d)
		if err != nil {
			continue
		}
		if i == 0 || day.Sub(prev) != 24*time.Hour {
			if run > longest {
				longest = run
			}
			run = 1
		} else {
			run++
		}
		prev = day
	}
	if run > longest {
		longest = run
	}

	current := 0
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	last, err := time.Parse(store.DateFormat, sorted[len(sorted)-1])
	if err == nil && today.Sub(last) <= 24*time.Hour {
		current = run
	}

	weekStart := today.AddDate(0, 0, -6)
	inWeek := 0
	for _, d := range sorted {
		day, err := time.Parse(store.DateFormat, d)
		if err != nil {
			continue
		}
		if !day.Before(weekStart) && !day.After(today) {
			inWeek++
		}
	}

	return StreakData{
		Current:     current,
		Longest:     longest,
		Consistency: int(math.Round(float64(inWeek) / 7 * 100)),
	}
}

// CompletedDates extracts the dates whose aggregate reached the daily
// goal, for feeding Streaks with qualifying days only.
func CompletedDates(dailyStats []store.DailyStat) []string {
	var out []string
	for _, stat := range dailyStats {
		if stat.TotalPoints >= store.DailyGoalPoints {
			out = append(out, stat.Date)
		}
	}
	return out
}

// ActivityTotals accumulates the sessions logged against one catalog
// activity.
type ActivityTotals struct {
	ActivityID string
	Name       string
	Count      int
	Time       int // minutes
	Points     int
}

// PerActivity rolls the records up by activity id, most time first.
func PerActivity(records []store.ActivityRecord) []ActivityTotals {
	byID := map[string]*ActivityTotals{}
	var order []string
	for _, rec := range records {
		row, ok := byID[rec.ActivityID]
		if !ok {
			row = &ActivityTotals{ActivityID: rec.ActivityID, Name: rec.Name}
			byID[rec.ActivityID] = row
			order = append(order, rec.ActivityID)
		}
		row.Count++
		row.Time += rec.Duration
		row.Points += rec.Points
	}

	out := make([]ActivityTotals, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time > out[j].Time })
	return out
}

// Dashboard is one computed read-side snapshot.
type Dashboard struct {
	TotalActivities int
	TotalTime       int // minutes
	TotalPoints     int
	AverageDaily    float64
	Categories      map[store.Category]CategoryTotals
	PerActivity     []ActivityTotals
	Week            []DayPoint
	Streak          StreakData
}

// Build derives a dashboard snapshot: filtered totals and breakdowns,
// plus the filter-independent trailing-week series and qualifying-day
// streaks over the full aggregate history.
func Build(all []store.ActivityRecord, aggregates []store.DailyStat, filter TimeFilter, category store.Category, now time.Time) Dashboard {
	r := RangeFor(filter, now)
	filtered := Filter(all, r, category)

	totalTime := 0
	totalPoints := 0
	for _, rec := range filtered {
		totalTime += rec.Duration
		totalPoints += rec.Points
	}

	return Dashboard{
		TotalActivities: len(filtered),
		TotalTime:       totalTime,
		TotalPoints:     totalPoints,
		AverageDaily:    AverageDaily(filtered, r),
		Categories:      Breakdown(filtered),
		PerActivity:     PerActivity(filtered),
		Week:            WeekSeries(all, now),
		Streak:          Streaks(CompletedDates(aggregates), now),
	}
}
