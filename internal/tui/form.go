package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/amsaleh/daytrack/internal/store"
	"github.com/amsaleh/daytrack/internal/tracker"
)

// logForm backs the add/edit activity dialogs. Field values are pointers
// so they survive the bubbletea value copies (same trick as huh's docs).
type logForm struct {
	form *huh.Form

	activityID *string
	duration   *string
	title      *string
	notes      *string

	editingID string // non-empty when editing an existing record
}

func validDuration(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("duration must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}

// newAddForm builds the quick-log form over the catalog definitions.
func newAddForm(catalog store.Catalog) *logForm {
	defs := catalog.Definitions()

	activityID, duration, title, notes := "", "30", "", ""
	if len(defs) > 0 {
		activityID = defs[0].ID
		duration = strconv.Itoa(defs[0].DefaultDuration)
	}

	f := &logForm{
		activityID: &activityID,
		duration:   &duration,
		title:      &title,
		notes:      &notes,
	}

	options := make([]huh.Option[string], len(defs))
	for i, d := range defs {
		options[i] = huh.NewOption(fmt.Sprintf("%s %s (%s)", d.Icon, d.Name, d.Category), d.ID)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Activity").Options(options...).Value(f.activityID),
			huh.NewInput().Title("Duration (min)").Validate(validDuration).Value(f.duration),
			huh.NewInput().Title("Title (optional)").Value(f.title),
			huh.NewInput().Title("Notes (optional)").Value(f.notes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return f
}

// newEditForm builds the edit dialog for one record. Only duration, title
// and notes are editable; the record's date and activity stay frozen.
func newEditForm(rec store.ActivityRecord) *logForm {
	duration := strconv.Itoa(rec.Duration)
	title := rec.CustomTitle
	notes := rec.Notes
	activityID := rec.ActivityID

	f := &logForm{
		activityID: &activityID,
		duration:   &duration,
		title:      &title,
		notes:      &notes,
		editingID:  rec.ID,
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Duration (min)").Validate(validDuration).Value(f.duration),
			huh.NewInput().Title("Title (optional)").Value(f.title),
			huh.NewInput().Title("Notes (optional)").Value(f.notes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return f
}

// addInput assembles the engine input from the completed add form.
func (f *logForm) addInput(catalog store.Catalog) (tracker.AddInput, bool) {
	def, ok := catalog.Find(*f.activityID)
	if !ok {
		return tracker.AddInput{}, false
	}
	dur, err := strconv.Atoi(*f.duration)
	if err != nil {
		return tracker.AddInput{}, false
	}
	return tracker.AddInput{
		ActivityID:  def.ID,
		Name:        def.Name,
		Description: def.Description,
		Category:    def.Category,
		Duration:    dur,
		Points:      def.DefaultPoints,
		CustomTitle: *f.title,
		Notes:       *f.notes,
	}, true
}

// patch assembles the engine patch from the completed edit form.
func (f *logForm) patch() (tracker.UpdatePatch, bool) {
	dur, err := strconv.Atoi(*f.duration)
	if err != nil {
		return tracker.UpdatePatch{}, false
	}
	return tracker.UpdatePatch{
		Duration:    &dur,
		CustomTitle: f.title,
		Notes:       f.notes,
	}, true
}
