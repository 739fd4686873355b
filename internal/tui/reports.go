package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaleh/daytrack/internal/stats"
	"github.com/amsaleh/daytrack/internal/store"
	"github.com/amsaleh/daytrack/internal/tracker"
)

var categoryFilters = []store.Category{"", store.CategoryEnglish, store.CategoryUniversity, store.CategoryOther}

type reportsModel struct {
	manager *tracker.Manager
	width   int
	height  int

	timeFilter stats.TimeFilter
	catIndex   int
	dashboard  stats.Dashboard
	loaded     bool

	chart barchart.Model
}

func newReportsModel(m *tracker.Manager) reportsModel {
	return reportsModel{
		manager:    m,
		timeFilter: stats.FilterWeek,
		chart:      barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	dashboard stats.Dashboard
}

func (r reportsModel) refresh() tea.Cmd {
	filter := r.timeFilter
	category := categoryFilters[r.catIndex]
	return func() tea.Msg {
		all := r.manager.AllActivities()
		aggregates := r.manager.AllDailyStats()
		return reportsDataMsg{
			dashboard: stats.Build(all, aggregates, filter, category, time.Now().UTC()),
		}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.dashboard = msg.dashboard
		r.loaded = true
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Filter):
			r.timeFilter = nextTimeFilter(r.timeFilter)
			return r, r.refresh()
		case key.Matches(msg, keys.Category):
			r.catIndex = (r.catIndex + 1) % len(categoryFilters)
			return r, r.refresh()
		}
	}
	return r, nil
}

func nextTimeFilter(f stats.TimeFilter) stats.TimeFilter {
	for i, tf := range stats.TimeFilters {
		if tf == f {
			return stats.TimeFilters[(i+1)%len(stats.TimeFilters)]
		}
	}
	return stats.FilterWeek
}

// buildChart renders the trailing week's points as one bar per day.
func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range r.dashboard.Week {
		label := day.Date
		if t, err := time.Parse(store.DateFormat, day.Date); err == nil {
			label = t.Format("Mon")
		}

		style := lipgloss.NewStyle().Foreground(colorSubtle)
		if day.Points >= store.DailyGoalPoints {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		} else if day.Points > 0 {
			style = lipgloss.NewStyle().Foreground(colorPrimary)
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: day.Date, Value: float64(day.Points), Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	// Filter tabs
	var filterTabs []string
	for _, tf := range stats.TimeFilters {
		if tf == r.timeFilter {
			filterTabs = append(filterTabs, activeTabStyle.Render(string(tf)))
		} else {
			filterTabs = append(filterTabs, inactiveTabStyle.Render(string(tf)))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Bottom, filterTabs...)

	catLabel := "all categories"
	if cat := categoryFilters[r.catIndex]; cat != "" {
		catLabel = string(cat)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", tabs, "  ", mutedStyle.Render(catLabel),
	)

	if !r.loaded {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("Loading...")),
		)
	}

	totals := r.renderTotals()
	breakdown := r.renderBreakdown(w)
	perActivity := r.renderPerActivity(w)
	chartTitle := subtitleStyle.Render("Points, trailing week")
	nav := mutedStyle.Render("  f: time filter  c: category filter")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", totals, "", breakdown, "", perActivity, "", chartTitle, r.chart.View(), "", nav,
		),
	)
}

func (r reportsModel) renderTotals() string {
	d := r.dashboard
	parts := []string{
		highlightStyle.Render(fmt.Sprintf("%d activities", d.TotalActivities)),
		highlightStyle.Render(fmt.Sprintf("%d pts", d.TotalPoints)),
		highlightStyle.Render(formatMinutes(d.TotalTime)),
		subtitleStyle.Render(fmt.Sprintf("%.1f pts/day avg", d.AverageDaily)),
		streakStyle.Render(fmt.Sprintf("🔥 %d now · %d longest", d.Streak.Current, d.Streak.Longest)),
		subtitleStyle.Render(fmt.Sprintf("%d%% weekly consistency", d.Streak.Consistency)),
	}
	return "  " + strings.Join(parts, "   ")
}

func (r reportsModel) renderBreakdown(w int) string {
	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-14s %8s %10s %8s", "Category", "Count", "Time", "Points"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	for _, cat := range store.Categories {
		totals := r.dashboard.Categories[cat]
		dot := lipgloss.NewStyle().Foreground(categoryColors[string(cat)]).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-12s %8d %10s %8d",
			dot, cat, totals.Count, formatMinutes(totals.Time), totals.Points,
		))
	}

	return strings.Join(rows, "\n")
}

func (r reportsModel) renderPerActivity(w int) string {
	if len(r.dashboard.PerActivity) == 0 {
		return mutedStyle.Render("  No activities in this window.")
	}

	var rows []string
	rows = append(rows, subtitleStyle.Render("  By activity"))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	shown := r.dashboard.PerActivity
	if len(shown) > 6 {
		shown = shown[:6]
	}
	for _, row := range shown {
		rows = append(rows, fmt.Sprintf("  %-24s %6d× %10s %6d pts",
			row.Name, row.Count, formatMinutes(row.Time), row.Points,
		))
	}

	return strings.Join(rows, "\n")
}
