package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaleh/daytrack/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings store.Settings

	formActive bool
	form       *huh.Form
	confirming bool

	// Form values as pointers (survive value copies)
	displayName *string
	refreshMin  *string
	resetOK     *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	name, refresh := "", ""
	ok := false
	return settingsModel{
		store:       s,
		displayName: &name,
		refreshMin:  &refresh,
		resetOK:     &ok,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, _ := s.store.Settings()
		return settingsDataMsg{settings: cfg}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		case key.Matches(msg, keys.Delete):
			return s.showResetConfirm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.displayName = s.settings.DisplayName
	*s.refreshMin = strconv.Itoa(s.settings.AutoRefreshMinutes)
	s.confirming = false

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Display name").Value(s.displayName),
			huh.NewInput().Title("Dashboard refresh (min)").Validate(validDuration).Value(s.refreshMin),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showResetConfirm() (settingsModel, tea.Cmd) {
	*s.resetOK = false
	s.confirming = true

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Erase all data?").
				Description("Removes every logged activity, aggregate and the profile, then reseeds the defaults.").
				Value(s.resetOK),
		),
	).WithShowHelp(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil

		if s.confirming {
			s.confirming = false
			if !*s.resetOK {
				return s, nil
			}
			return s, func() tea.Msg {
				if err := s.store.Reset(); err != nil {
					return statusMsg{text: fmt.Sprintf("Reset failed: %v", err), isError: true}
				}
				return dataResetMsg{}
			}
		}

		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	cfg := s.settings
	cfg.DisplayName = *s.displayName
	if n, err := strconv.Atoi(*s.refreshMin); err == nil && n > 0 {
		cfg.AutoRefreshMinutes = n
	}
	s.store.SaveSettings(cfg)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.confirming {
			title = errorStyle.Render("Reset data")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("Display name"),
		highlightStyle.Render(s.settings.DisplayName),
	))
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("Dashboard refresh"),
		highlightStyle.Render(fmt.Sprintf("%d min", s.settings.AutoRefreshMinutes)),
	))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  d: erase all data"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
