package doses

import (
	"fmt"

	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/models"
	"github.com/dosewatch/dosewatch/internal/occurrence"
)

// TakeCmd marks a dose taken for the current session. Statuses are not
// persisted: they reset on the next data reload.
type TakeCmd struct {
	ID   string `arg:"" help:"Occurrence id as printed by 'dosewatch today'."`
	Date string `help:"Date the dose belongs to (YYYY-MM-DD). Defaults to today."`
}

func (c *TakeCmd) Run(ctx *cli.Context) error {
	return setStatus(ctx, c.ID, c.Date, models.StatusTaken)
}

// SkipCmd marks a dose skipped for the current session.
type SkipCmd struct {
	ID   string `arg:"" help:"Occurrence id as printed by 'dosewatch today'."`
	Date string `help:"Date the dose belongs to (YYYY-MM-DD). Defaults to today."`
}

func (c *SkipCmd) Run(ctx *cli.Context) error {
	return setStatus(ctx, c.ID, c.Date, models.StatusSkipped)
}

func setStatus(ctx *cli.Context, id, dateFlag string, status models.OccurrenceStatus) error {
	date, err := cli.ParseDate(dateFlag)
	if err != nil {
		return err
	}

	prescriptions, schedules, names, _, err := ctx.FetchData()
	if err != nil {
		return err
	}

	book := occurrence.NewBook()
	book.Replace(occurrence.BuildForDate(prescriptions, schedules, names, date))

	var setErr error
	switch status {
	case models.StatusTaken:
		setErr = book.MarkTaken(id)
	case models.StatusSkipped:
		setErr = book.MarkSkipped(id)
	default:
		return fmt.Errorf("unsupported status %q", status)
	}
	if setErr != nil {
		return fmt.Errorf("no dose with id %q on %s", id, date.Format(constants.DateFormat))
	}

	occ, _ := book.Get(id)
	fmt.Printf("Marked %s (%s at %s) as %s.\n", occ.Medicine, occ.Dosage, occ.Time, status)
	fmt.Println("Dose statuses live for this session only and reset on the next reload.")
	return nil
}
