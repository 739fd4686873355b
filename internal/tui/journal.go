package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaleh/daytrack/internal/store"
	"github.com/amsaleh/daytrack/internal/tracker"
)

// journalModel browses one calendar day's ledger records and carries the
// add/edit/delete flows for that day.
type journalModel struct {
	manager *tracker.Manager
	width   int
	height  int

	date    string
	records []store.ActivityRecord
	stat    store.DailyStat
	cursor  int

	formActive bool
	form       *logForm
}

func newJournalModel(m *tracker.Manager) journalModel {
	return journalModel{
		manager: m,
		date:    time.Now().UTC().Format(store.DateFormat),
	}
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

func (j journalModel) refresh() tea.Cmd {
	date := j.date
	return func() tea.Msg {
		return journalDataMsg{
			date:    date,
			records: j.manager.ActivitiesForDate(date),
		}
	}
}

func (j journalModel) shiftDate(days int) journalModel {
	t, err := time.Parse(store.DateFormat, j.date)
	if err != nil {
		t = time.Now().UTC()
	}
	j.date = t.AddDate(0, 0, days).Format(store.DateFormat)
	j.cursor = 0
	return j
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if j.formActive && j.form != nil {
		return j.updateForm(msg)
	}

	switch msg := msg.(type) {
	case journalDataMsg:
		j.records = msg.records
		j.stat = j.manager.DailyStats(msg.date)
		if j.cursor >= len(j.records) {
			j.cursor = max(0, len(j.records)-1)
		}
		return j, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			j = j.shiftDate(-1)
			return j, j.refresh()
		case key.Matches(msg, keys.Right):
			j = j.shiftDate(1)
			return j, j.refresh()
		case key.Matches(msg, keys.Today):
			j.date = time.Now().UTC().Format(store.DateFormat)
			j.cursor = 0
			return j, j.refresh()
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < len(j.records)-1 {
				j.cursor++
			}
		case key.Matches(msg, keys.Add):
			j.form = newAddForm(j.manager.AvailableActivities())
			j.formActive = true
			return j, j.form.form.Init()
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if j.cursor < len(j.records) {
				j.form = newEditForm(j.records[j.cursor])
				j.formActive = true
				return j, j.form.form.Init()
			}
		case key.Matches(msg, keys.Delete):
			if j.cursor < len(j.records) {
				id := j.records[j.cursor].ID
				return j, func() tea.Msg {
					if !j.manager.DeleteActivity(id) {
						return statusMsg{text: "Record already gone", isError: true}
					}
					return activityDeletedMsg{id: id}
				}
			}
		}
	}
	return j, nil
}

func (j journalModel) updateForm(msg tea.Msg) (journalModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			j.formActive = false
			j.form = nil
			return j, nil
		}
	}

	form, cmd := j.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		j.form.form = f
	}

	if j.form.form.State == huh.StateCompleted {
		j.formActive = false
		f := j.form
		j.form = nil

		if f.editingID != "" {
			patch, ok := f.patch()
			return j, func() tea.Msg {
				if !ok || !j.manager.UpdateActivity(f.editingID, patch) {
					return statusMsg{text: "Update failed", isError: true}
				}
				return activityLoggedMsg{}
			}
		}

		input, ok := f.addInput(j.manager.AvailableActivities())
		date := j.date
		return j, func() tea.Msg {
			if !ok {
				return statusMsg{text: "Could not read the form values", isError: true}
			}
			rec, err := j.manager.AddActivity(input, date)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Not logged: %v", err), isError: true}
			}
			return activityLoggedMsg{record: rec}
		}
	}

	return j, cmd
}

func (j journalModel) view() string {
	w := j.width - 4

	if j.formActive && j.form != nil {
		title := titleStyle.Render("Log Activity — " + formatDate(j.date))
		if j.form.editingID != "" {
			title = titleStyle.Render("Edit Activity")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", j.form.form.View()),
		)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Journal"), "  ",
		highlightStyle.Render(formatDate(j.date)), "  ",
		subtitleStyle.Render(fmt.Sprintf("%d pts · %s", j.stat.TotalPoints, formatMinutes(j.stat.TotalDuration))),
	)

	var rows []string
	rows = append(rows, header, "")

	if len(j.records) == 0 {
		rows = append(rows, mutedStyle.Render("  No activities on this day. Press a to add one."))
	} else {
		colHeader := mutedStyle.Render(fmt.Sprintf("  %-3s %-28s %-12s %8s %6s", "", "Activity", "Category", "Duration", "Pts"))
		rows = append(rows, colHeader)
		rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 62))))

		for i, rec := range j.records {
			cursor := "  "
			style := normalItemStyle
			if i == j.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			name := rec.Name
			if rec.CustomTitle != "" {
				name = rec.CustomTitle
			}
			dot := lipgloss.NewStyle().Foreground(categoryColors[string(rec.Category)]).Render("●")
			rows = append(rows, style.Render(fmt.Sprintf("%s%s %-28s %-12s %8s %4d",
				cursor, dot, name, rec.Category, formatMinutes(rec.Duration), rec.Points,
			)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: change day  t: today  a: add  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
