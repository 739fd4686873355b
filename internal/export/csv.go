package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/amsaleh/daytrack/internal/store"
)

// ToCSV writes the ledger to path, one row per record.
func ToCSV(records []store.ActivityRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Activity", "Category", "Date", "Logged At", "Duration (min)", "Duration", "Points", "Title", "Notes"}); err != nil {
		return err
	}

	for _, r := range records {
		name := r.Name
		if r.CustomTitle != "" {
			name = r.CustomTitle
		}
		row := []string{
			r.ID,
			name,
			string(r.Category),
			r.Date,
			r.ActualTime.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", r.Duration),
			formatMinutes(r.Duration),
			fmt.Sprintf("%d", r.Points),
			r.CustomTitle,
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatMinutes(min int) string {
	h := min / 60
	m := min % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
