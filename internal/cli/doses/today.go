package doses

import (
	"fmt"

	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/occurrence"
)

type TodayCmd struct {
	Date string `help:"Date to show (YYYY-MM-DD). Defaults to today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}

	prescriptions, schedules, names, fromCache, err := ctx.FetchData()
	if err != nil {
		return err
	}

	occurrences := occurrence.BuildForDate(prescriptions, schedules, names, date)

	fmt.Printf("Doses for %s:\n", date.Format(constants.DateFormat))
	if fromCache {
		fmt.Println("(backend unreachable, showing cached data)")
	}
	if len(occurrences) == 0 {
		fmt.Println("  Nothing due.")
		return nil
	}

	for _, occ := range occurrences {
		marker := " "
		if !occ.NotificationEnabled {
			marker = "🔕"
		}
		fmt.Printf("  %s %s  %s (%s) %s\n", cli.StatusGlyph(occ.Status), occ.Time, occ.Medicine, occ.Dosage, marker)
		fmt.Printf("      id: %s\n", occ.ID)
	}
	return nil
}
