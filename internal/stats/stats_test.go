package stats

import (
	"testing"
	"time"

	"github.com/amsaleh/daytrack/internal/store"
)

// Monday 2024-01-15, noon UTC.
var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func rec(date string, cat store.Category, duration, points int) store.ActivityRecord {
	return store.ActivityRecord{
		ID:       "activity_" + date,
		Date:     date,
		Category: cat,
		Duration: duration,
		Points:   points,
	}
}

// ============================================================
// Calendar ranges
// ============================================================

func TestRangeForDay(t *testing.T) {
	r := RangeFor(FilterDay, testNow)
	if !r.Start.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", r.Start)
	}
	if !r.End.Equal(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", r.End)
	}
	if r.Days() != 1 {
		t.Fatalf("days = %d", r.Days())
	}
}

func TestRangeForWeekStartsSunday(t *testing.T) {
	r := RangeFor(FilterWeek, testNow)
	if r.Start.Weekday() != time.Sunday {
		t.Fatalf("week starts %v, want Sunday", r.Start.Weekday())
	}
	if !r.Start.Equal(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", r.Start)
	}
	if r.Days() != 7 {
		t.Fatalf("days = %d", r.Days())
	}
}

func TestRangeForMonth(t *testing.T) {
	r := RangeFor(FilterMonth, testNow)
	if !r.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", r.Start)
	}
	if r.Days() != 31 {
		t.Fatalf("days = %d", r.Days())
	}
}

func TestRangeForYear(t *testing.T) {
	r := RangeFor(FilterYear, testNow)
	if !r.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", r.Start)
	}
	if r.Days() != 366 { // 2024 is a leap year
		t.Fatalf("days = %d", r.Days())
	}
}

// ============================================================
// Filtering
// ============================================================

func TestFilterByRangeAndCategory(t *testing.T) {
	records := []store.ActivityRecord{
		rec("2024-01-14", store.CategoryEnglish, 30, 1),
		rec("2024-01-15", store.CategoryUniversity, 30, 1),
		rec("2024-01-21", store.CategoryEnglish, 30, 1), // next week
		rec("2024-01-13", store.CategoryEnglish, 30, 1), // previous week
	}
	r := RangeFor(FilterWeek, testNow)

	all := Filter(records, r, "")
	if len(all) != 2 {
		t.Fatalf("filtered = %d, want 2", len(all))
	}

	english := Filter(records, r, store.CategoryEnglish)
	if len(english) != 1 || english[0].Date != "2024-01-14" {
		t.Fatalf("english filter wrong: %+v", english)
	}
}

func TestFilterDropsUnparsableDates(t *testing.T) {
	records := []store.ActivityRecord{
		rec("not-a-date", store.CategoryEnglish, 30, 1),
		rec("2024-01-15", store.CategoryEnglish, 30, 1),
	}
	got := Filter(records, RangeFor(FilterWeek, testNow), "")
	if len(got) != 1 {
		t.Fatalf("filtered = %d, want 1", len(got))
	}
}

// ============================================================
// Breakdown and averages
// ============================================================

func TestBreakdownBuckets(t *testing.T) {
	records := []store.ActivityRecord{
		rec("2024-01-15", store.CategoryEnglish, 30, 1),
		rec("2024-01-15", store.CategoryEnglish, 60, 2),
		rec("2024-01-15", store.CategoryUniversity, 50, 2),
		rec("2024-01-15", "gym", 45, 3), // unknown: dropped silently
	}

	b := Breakdown(records)
	if got := b[store.CategoryEnglish]; got.Count != 2 || got.Time != 90 || got.Points != 3 {
		t.Fatalf("english bucket: %+v", got)
	}
	if got := b[store.CategoryUniversity]; got.Count != 1 || got.Time != 50 || got.Points != 2 {
		t.Fatalf("university bucket: %+v", got)
	}
	if got := b[store.CategoryOther]; got.Count != 0 {
		t.Fatalf("other bucket should be empty: %+v", got)
	}

	total := 0
	for _, bucket := range b {
		total += bucket.Count
	}
	if total != 3 {
		t.Fatalf("bucketed %d records, want 3", total)
	}
}

func TestAverageDailyRounding(t *testing.T) {
	r := RangeFor(FilterWeek, testNow)
	records := []store.ActivityRecord{
		rec("2024-01-14", store.CategoryEnglish, 30, 10),
		rec("2024-01-15", store.CategoryEnglish, 30, 12),
	}
	// 22 points / 7 days = 3.142..., rounded to one decimal.
	if got := AverageDaily(records, r); got != 3.1 {
		t.Fatalf("averageDaily = %v, want 3.1", got)
	}

	if got := AverageDaily(nil, r); got != 0 {
		t.Fatalf("empty averageDaily = %v", got)
	}
}

// ============================================================
// Trailing-week series
// ============================================================

func TestWeekSeriesTrailingOldestFirst(t *testing.T) {
	records := []store.ActivityRecord{
		rec("2024-01-15", store.CategoryEnglish, 30, 1),
		rec("2024-01-15", store.CategoryEnglish, 60, 2),
		rec("2024-01-09", store.CategoryOther, 30, 1),
		rec("2024-01-08", store.CategoryOther, 30, 1), // outside the window
	}

	series := WeekSeries(records, testNow)
	if len(series) != 7 {
		t.Fatalf("series length = %d", len(series))
	}
	if series[0].Date != "2024-01-09" {
		t.Fatalf("series[0] = %q, want oldest day", series[0].Date)
	}
	if series[6].Date != "2024-01-15" {
		t.Fatalf("series[6] = %q, want today", series[6].Date)
	}

	if series[6].Activities != 2 || series[6].Points != 3 || series[6].Time != 90 {
		t.Fatalf("today's point: %+v", series[6])
	}
	if series[0].Activities != 1 {
		t.Fatalf("oldest point: %+v", series[0])
	}
	for i := 1; i < 6; i++ {
		if series[i].Activities != 0 {
			t.Fatalf("day %d should be empty: %+v", i, series[i])
		}
	}
}

// ============================================================
// Historical streaks
// ============================================================

func TestStreaksSingleRunEndingToday(t *testing.T) {
	got := Streaks([]string{"2024-01-13", "2024-01-14", "2024-01-15"}, testNow)
	if got.Current != 3 || got.Longest != 3 {
		t.Fatalf("streaks = %+v", got)
	}
}

func TestStreaksGapClosesRun(t *testing.T) {
	got := Streaks([]string{"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-14", "2024-01-15"}, testNow)
	if got.Longest != 3 {
		t.Fatalf("longest = %d, want 3", got.Longest)
	}
	if got.Current != 2 {
		t.Fatalf("current = %d, want 2", got.Current)
	}
}

func TestStreaksStaleRunHasNoCurrent(t *testing.T) {
	got := Streaks([]string{"2024-01-10", "2024-01-11", "2024-01-12"}, testNow)
	if got.Longest != 3 {
		t.Fatalf("longest = %d, want 3", got.Longest)
	}
	if got.Current != 0 {
		t.Fatalf("current = %d, want 0", got.Current)
	}
}

func TestStreaksYesterdayStillCurrent(t *testing.T) {
	got := Streaks([]string{"2024-01-13", "2024-01-14"}, testNow)
	if got.Current != 2 {
		t.Fatalf("current = %d, want 2", got.Current)
	}
}

func TestStreaksDeduplicatesDates(t *testing.T) {
	got := Streaks([]string{"2024-01-15", "2024-01-15", "2024-01-14"}, testNow)
	if got.Current != 2 || got.Longest != 2 {
		t.Fatalf("streaks = %+v", got)
	}
}

func TestStreaksEmpty(t *testing.T) {
	got := Streaks(nil, testNow)
	if got.Current != 0 || got.Longest != 0 {
		t.Fatalf("streaks = %+v", got)
	}
}

func TestCompletedDates(t *testing.T) {
	stats := []store.DailyStat{
		{Date: "2024-01-14", TotalPoints: 12},
		{Date: "2024-01-15", TotalPoints: 5},
		{Date: "2024-01-13", TotalPoints: 20},
	}
	got := CompletedDates(stats)
	if len(got) != 2 {
		t.Fatalf("completed = %v", got)
	}
}

func TestStreaksBelowGoalDayBreaksChain(t *testing.T) {
	// Three consecutive days ending today, but the middle one fell short
	// of the goal: only its neighbours qualify, so no run spans it.
	aggregates := []store.DailyStat{
		{Date: "2024-01-13", TotalPoints: 12},
		{Date: "2024-01-14", TotalPoints: 1},
		{Date: "2024-01-15", TotalPoints: 12},
	}
	got := Streaks(CompletedDates(aggregates), testNow)
	if got.Longest != 1 {
		t.Fatalf("longest = %d, want 1", got.Longest)
	}
	if got.Current != 1 {
		t.Fatalf("current = %d, want 1", got.Current)
	}
}

func TestStreaksConsistency(t *testing.T) {
	// Three qualifying days inside the trailing week: 3/7 ≈ 43%.
	got := Streaks([]string{"2024-01-13", "2024-01-14", "2024-01-15"}, testNow)
	if got.Consistency != 43 {
		t.Fatalf("consistency = %d, want 43", got.Consistency)
	}

	// Days outside the trailing week do not count.
	got = Streaks([]string{"2024-01-01", "2024-01-02", "2024-01-15"}, testNow)
	if got.Consistency != 14 {
		t.Fatalf("consistency = %d, want 14", got.Consistency)
	}

	full := []string{
		"2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12",
		"2024-01-13", "2024-01-14", "2024-01-15",
	}
	if got = Streaks(full, testNow); got.Consistency != 100 {
		t.Fatalf("consistency = %d, want 100", got.Consistency)
	}

	if got = Streaks(nil, testNow); got.Consistency != 0 {
		t.Fatalf("empty consistency = %d", got.Consistency)
	}
}

// ============================================================
// Per-activity rollup
// ============================================================

func TestPerActivityRollsUpByID(t *testing.T) {
	records := []store.ActivityRecord{
		{ActivityID: "eng_reading", Name: "Reading", Date: "2024-01-15", Duration: 30, Points: 1},
		{ActivityID: "uni_lecture", Name: "Lecture", Date: "2024-01-15", Duration: 50, Points: 2},
		{ActivityID: "eng_reading", Name: "Reading", Date: "2024-01-14", Duration: 60, Points: 2},
	}

	rows := PerActivity(records)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// Most time first: reading has 90 minutes, lecture 50.
	if rows[0].ActivityID != "eng_reading" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[0].Count != 2 || rows[0].Time != 90 || rows[0].Points != 3 {
		t.Fatalf("reading rollup: %+v", rows[0])
	}
	if rows[1].Name != "Lecture" || rows[1].Count != 1 {
		t.Fatalf("lecture rollup: %+v", rows[1])
	}
}

func TestPerActivityEmpty(t *testing.T) {
	if rows := PerActivity(nil); len(rows) != 0 {
		t.Fatalf("rows = %v", rows)
	}
}

// ============================================================
// Dashboard assembly
// ============================================================

func TestBuildDashboard(t *testing.T) {
	records := []store.ActivityRecord{
		rec("2024-01-14", store.CategoryEnglish, 30, 12),
		rec("2024-01-15", store.CategoryUniversity, 60, 12),
		rec("2024-01-01", store.CategoryOther, 30, 1), // outside the week filter
	}
	records[0].ActivityID = "eng_reading"
	records[1].ActivityID = "uni_lecture"
	records[2].ActivityID = "other_general"
	aggregates := []store.DailyStat{
		{Date: "2024-01-01", TotalPoints: 1},
		{Date: "2024-01-14", TotalPoints: 12},
		{Date: "2024-01-15", TotalPoints: 12},
	}

	d := Build(records, aggregates, FilterWeek, "", testNow)
	if d.TotalActivities != 2 {
		t.Fatalf("totalActivities = %d, want 2", d.TotalActivities)
	}
	if d.TotalPoints != 24 {
		t.Fatalf("totalPoints = %d", d.TotalPoints)
	}
	if d.TotalTime != 90 {
		t.Fatalf("totalTime = %d", d.TotalTime)
	}
	if len(d.PerActivity) != 2 {
		t.Fatalf("perActivity = %+v", d.PerActivity)
	}

	// Week series and streaks come from the full history, not the filter.
	if d.Week[6].Date != "2024-01-15" {
		t.Fatalf("week series end = %q", d.Week[6].Date)
	}
	if d.Streak.Current != 2 || d.Streak.Longest != 2 {
		t.Fatalf("streak = %+v", d.Streak)
	}
}

func TestBuildDashboardStreakNeedsQualifyingDays(t *testing.T) {
	// Activity on both days, but only today reached the goal: the day
	// below 12 points must not extend the dashboard streak.
	records := []store.ActivityRecord{
		rec("2024-01-14", store.CategoryEnglish, 30, 1),
		rec("2024-01-15", store.CategoryEnglish, 30, 12),
	}
	aggregates := []store.DailyStat{
		{Date: "2024-01-14", TotalPoints: 1},
		{Date: "2024-01-15", TotalPoints: 12},
	}

	d := Build(records, aggregates, FilterWeek, "", testNow)
	if d.Streak.Current != 1 || d.Streak.Longest != 1 {
		t.Fatalf("streak = %+v, want a single qualifying day", d.Streak)
	}
	if d.Streak.Consistency != 14 {
		t.Fatalf("consistency = %d, want 14", d.Streak.Consistency)
	}
}

func TestBuildDashboardCategoryFilterKeepsWeekSeries(t *testing.T) {
	records := []store.ActivityRecord{
		rec("2024-01-15", store.CategoryEnglish, 30, 1),
		rec("2024-01-15", store.CategoryUniversity, 30, 1),
	}

	d := Build(records, nil, FilterWeek, store.CategoryEnglish, testNow)
	if d.TotalActivities != 1 {
		t.Fatalf("totalActivities = %d, want 1", d.TotalActivities)
	}
	if d.Week[6].Activities != 2 {
		t.Fatalf("week series must ignore the category filter: %+v", d.Week[6])
	}
	if d.Streak.Longest != 0 {
		t.Fatalf("no aggregates should mean no streak: %+v", d.Streak)
	}
}
