package store

import "time"

// Category buckets every activity falls into. The set is fixed; records
// carrying anything else are skipped by the dashboard breakdown.
type Category string

const (
	CategoryEnglish    Category = "english"
	CategoryUniversity Category = "university"
	CategoryOther      Category = "other"
)

// Categories in display order.
var Categories = []Category{CategoryEnglish, CategoryUniversity, CategoryOther}

func (c Category) Valid() bool {
	switch c {
	case CategoryEnglish, CategoryUniversity, CategoryOther:
		return true
	}
	return false
}

// Scoring constants. A day is complete at 12 points; points scale linearly
// against a 30-minute unit; every 100 lifetime points is one level.
const (
	DailyGoalPoints = 12
	PointsUnitMin   = 30
	LevelStep       = 100
	StreakLookback  = 365 // days scanned backward for the current streak
)

// DateFormat is the logical-day layout used throughout.
const DateFormat = "2006-01-02"

// ActivityDefinition is a catalog entry the user can log against.
// Immutable after seeding except through import or reset.
type ActivityDefinition struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DefaultPoints   int      `json:"defaultPoints"` // points per 30-minute unit
	DefaultDuration int      `json:"defaultDuration"`
	Category        Category `json:"category"`
	Icon            string   `json:"icon"`
	Color           string   `json:"color"`
}

// Catalog maps a category to its ordered activity definitions.
type Catalog map[Category][]ActivityDefinition

// ActivityRecord is one logged activity instance, the system of record.
type ActivityRecord struct {
	ID                string    `json:"id"`
	ActivityID        string    `json:"activityId"`
	UserID            string    `json:"userId"`
	Date              string    `json:"date"` // logical day, "2006-01-02"
	ActualTime        time.Time `json:"actualTime"`
	RecordedTime      time.Time `json:"recordedTime"` // ActualTime minus duration
	Duration          int       `json:"duration"`     // minutes
	Points            int       `json:"points"`       // round(OriginalPoints * Duration/30)
	OriginalPoints    int       `json:"originalPoints"`
	Notes             string    `json:"notes"`
	CustomTitle       string    `json:"customTitle"`
	CustomDescription string    `json:"customDescription"`
	Category          Category  `json:"category"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// DailyStat is the per-date aggregate, always a fold of the ledger.
type DailyStat struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	Date                 string    `json:"date"`
	TotalPoints          int       `json:"totalPoints"`
	TotalDuration        int       `json:"totalDuration"`
	ActivitiesCount      int       `json:"activitiesCount"`
	IsCompleted          bool      `json:"isCompleted"`
	CompletionPercentage float64   `json:"completionPercentage"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// UserProfile is the singleton cumulative record.
type UserProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Level           int       `json:"level"`
	TotalPoints     int       `json:"totalPoints"`
	ConsecutiveDays int       `json:"consecutiveDays"`
	CreatedAt       time.Time `json:"createdAt"`
	LastActiveDate  time.Time `json:"lastActiveDate"`
}

// Settings holds interface preferences kept in the fifth storage slot.
type Settings struct {
	DisplayName        string `json:"displayName"`
	AutoRefreshMinutes int    `json:"autoRefreshMinutes"`
}

// DefaultSettings returns the values seeded on first run.
func DefaultSettings() Settings {
	return Settings{DisplayName: "User", AutoRefreshMinutes: 30}
}
