package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaleh/daytrack/internal/store"
	"github.com/amsaleh/daytrack/internal/tracker"
)

type dashboardModel struct {
	manager *tracker.Manager
	width   int
	height  int

	profile store.UserProfile
	today   store.DailyStat
	records []store.ActivityRecord

	formActive bool
	form       *logForm
}

func newDashboardModel(m *tracker.Manager) dashboardModel {
	return dashboardModel{manager: m}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := d.manager.TodayStats()
		return dashboardDataMsg{
			profile: d.manager.Profile(),
			today:   today,
			records: d.manager.ActivitiesForDate(today.Date),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.profile = msg.profile
		d.today = msg.today
		d.records = msg.records
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Add):
			d.form = newAddForm(d.manager.AvailableActivities())
			d.formActive = true
			return d, d.form.form.Init()
		}
	}
	return d, nil
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form.form = f
	}

	if d.form.form.State == huh.StateCompleted {
		d.formActive = false
		input, ok := d.form.addInput(d.manager.AvailableActivities())
		d.form = nil
		if !ok {
			return d, func() tea.Msg {
				return statusMsg{text: "Could not read the form values", isError: true}
			}
		}
		return d, func() tea.Msg {
			rec, err := d.manager.AddActivity(input, "")
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Not logged: %v", err), isError: true}
			}
			return activityLoggedMsg{record: rec}
		}
	}

	return d, cmd
}

func (d dashboardModel) view() string {
	w := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render("Log Activity")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.form.View()),
		)
	}

	goal := d.renderGoalPanel(w)
	profile := d.renderProfilePanel(w)
	records := d.renderTodayRecords(w)
	hint := mutedStyle.Render("  a: log activity")

	return lipgloss.JoinVertical(lipgloss.Left, goal, profile, records, hint)
}

func (d dashboardModel) renderGoalPanel(w int) string {
	title := titleStyle.Render("Today") + "  " + subtitleStyle.Render(formatDate(d.today.Date))

	pct := d.today.CompletionPercentage
	barWidth := w - 30
	if barWidth < 10 {
		barWidth = 10
	}
	bar := progressBar(pct/100, barWidth)

	pointsLine := fmt.Sprintf("%s %d / %d pts  (%.0f%%)", bar, d.today.TotalPoints, store.DailyGoalPoints, pct)
	if d.today.IsCompleted {
		pointsLine = goalDoneStyle.Render(pointsLine + "  ✓ day complete")
	}

	detail := subtitleStyle.Render(fmt.Sprintf(
		"%d activities · %s logged", d.today.ActivitiesCount, formatMinutes(d.today.TotalDuration),
	))

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", pointsLine, detail),
	)
}

func (d dashboardModel) renderProfilePanel(w int) string {
	streak := streakStyle.Render(fmt.Sprintf("🔥 %d day streak", d.profile.ConsecutiveDays))
	level := highlightStyle.Render(fmt.Sprintf("Level %d", d.profile.Level))
	points := subtitleStyle.Render(fmt.Sprintf("%d total points", d.profile.TotalPoints))

	next := store.LevelStep - d.profile.TotalPoints%store.LevelStep
	progress := subtitleStyle.Render(fmt.Sprintf("%d pts to next level", next))

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		streak, "    ", level, "  ", points, "  ", progress,
	)
	return panelStyle.Width(w).Render(row)
}

func (d dashboardModel) renderTodayRecords(w int) string {
	title := titleStyle.Render("Logged today")

	if len(d.records) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "",
				mutedStyle.Render("Nothing yet. Press a to log an activity."),
			),
		)
	}

	var rows []string
	rows = append(rows, title, "")
	for _, rec := range d.records {
		name := rec.Name
		if rec.CustomTitle != "" {
			name = rec.CustomTitle
		}
		dot := lipgloss.NewStyle().Foreground(categoryColors[string(rec.Category)]).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-28s %8s %4d pts",
			dot, name, formatMinutes(rec.Duration), rec.Points,
		))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
