package tracker

import (
	"encoding/json"
	"time"

	"github.com/amsaleh/daytrack/internal/store"
)

// ExportDocument is the backup contract: one JSON document holding every
// collection. On import, absent keys leave the corresponding collection
// untouched.
type ExportDocument struct {
	User       *store.UserProfile      `json:"user,omitempty"`
	Activities *store.Catalog          `json:"activities,omitempty"`
	Logs       *[]store.ActivityRecord `json:"logs,omitempty"`
	DailyStats *[]store.DailyStat      `json:"dailyStats,omitempty"`
	ExportDate time.Time               `json:"exportDate"`
}

// ExportData serializes the full state as one document.
func (m *Manager) ExportData() ([]byte, error) {
	profile := m.Profile()
	catalog := m.AvailableActivities()
	logs := m.logs()
	if logs == nil {
		logs = []store.ActivityRecord{}
	}
	stats := m.dailyStats()
	if stats == nil {
		stats = []store.DailyStat{}
	}

	doc := ExportDocument{
		User:       &profile,
		Activities: &catalog,
		Logs:       &logs,
		DailyStats: &stats,
		ExportDate: m.now().UTC(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportData overwrites each collection present in the document, then
// rebuilds the derived aggregates. A document that fails to parse leaves
// all state untouched and reports false.
func (m *Manager) ImportData(data []byte) bool {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}

	if doc.User != nil {
		if err := m.store.SaveProfile(*doc.User); err != nil {
			return false
		}
	}
	if doc.Activities != nil {
		if err := m.store.SaveCatalog(*doc.Activities); err != nil {
			return false
		}
	}
	if doc.Logs != nil {
		if err := m.store.SaveLogs(*doc.Logs); err != nil {
			return false
		}
	}
	if doc.DailyStats != nil {
		if err := m.store.SaveDailyStats(*doc.DailyStats); err != nil {
			return false
		}
	}

	if doc.Logs != nil || doc.DailyStats != nil {
		m.RecalculateAll()
	}
	return true
}
