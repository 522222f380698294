package occurrence

import (
	"fmt"
	"sort"
	"time"

	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/logger"
	"github.com/dosewatch/dosewatch/internal/models"
	"github.com/dosewatch/dosewatch/internal/recurrence"
)

// BuildForDate resolves the deduplicated, time-sorted list of doses due on
// the given date. It is pure with respect to its inputs: no I/O, no
// mutation of the supplied collections, and deterministic output for
// identical inputs.
func BuildForDate(
	prescriptions []models.Prescription,
	schedules []models.Schedule,
	medicineNames map[string]string,
	date time.Time,
) []models.Occurrence {
	dateStr := date.Format(constants.DateFormat)
	var occurrences []models.Occurrence

	// Dedup key is (prescription id, time-of-day): duplicate schedule rows
	// upstream must not produce a double dose entry. First one wins.
	seen := make(map[string]bool)

	for _, p := range prescriptions {
		if !p.ActiveOn(date) {
			continue
		}

		start, err := time.Parse(constants.DateFormat, p.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(constants.DateFormat, p.EndDate)
		if err != nil {
			continue
		}

		for _, s := range schedules {
			if s.PrescriptionID != p.ID {
				continue
			}
			if !recurrence.IsDue(s, date, start, end) {
				continue
			}

			trigger, err := recurrence.TriggerInstant(s, date)
			if err != nil {
				logger.Warn("Skipping schedule with malformed time", "schedule", s.ID, "time", s.Time)
				continue
			}

			dedupKey := p.ID + "|" + s.Time
			if seen[dedupKey] {
				continue
			}
			seen[dedupKey] = true

			// The ID is the composite key so the same dose keeps the
			// same identity across aggregation passes.
			occ := models.Occurrence{
				PrescriptionID:      p.ID,
				ScheduleID:          s.ID,
				Date:                dateStr,
				Medicine:            resolveMedicineName(medicineNames, p.MedicineID),
				Dosage:              p.Dosage,
				Time:                s.Time,
				Trigger:             trigger,
				Status:              models.StatusPending,
				NotificationEnabled: s.NotificationEnabled,
				Ringtone:            s.Ringtone,
			}
			occ.ID = occ.Key()
			occurrences = append(occurrences, occ)
		}
	}

	// Zero-padded HH:MM compares correctly as a string.
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Time < occurrences[j].Time
	})

	return occurrences
}

// resolveMedicineName looks up the display name for a medicine id, falling
// back to a placeholder containing the raw id when the lookup misses.
func resolveMedicineName(names map[string]string, medicineID string) string {
	if name, ok := names[medicineID]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Medicine %s", medicineID)
}
