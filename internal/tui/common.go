package tui

import (
	"fmt"
	"time"

	"github.com/amsaleh/daytrack/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewJournal
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Journal", "Reports", "Settings"}

// --- Messages ---

type dashboardDataMsg struct {
	profile store.UserProfile
	today   store.DailyStat
	records []store.ActivityRecord
}

type journalDataMsg struct {
	date    string
	records []store.ActivityRecord
}

type activityLoggedMsg struct {
	record *store.ActivityRecord
}

type activityDeletedMsg struct {
	id string
}

type settingsDataMsg struct {
	settings store.Settings
}

type dataResetMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatMinutes(min int) string {
	h := min / 60
	m := min % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func formatDate(date string) string {
	t, err := time.Parse(store.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 02 2006")
}

// progressBar renders a filled/empty bar of the given width for a 0..1
// ratio.
func progressBar(ratio float64, width int) string {
	if width < 1 {
		width = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
