package alarms

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/constants"
)

// TestCmd previews the alarm sound so the user can verify audio works
// before relying on it.
type TestCmd struct {
	Ringtone string `help:"WAV file to preview. Defaults to the configured default ringtone."`
}

func (c *TestCmd) Run(ctx *cli.Context) error {
	path := c.Ringtone
	if path == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		path = settings.DefaultRingtone
	}

	if path == "" {
		fmt.Println("Playing the built-in tone...")
	} else {
		fmt.Printf("Playing %s...\n", path)
	}

	if err := ctx.Sounds.PlayFor(path, constants.PreviewTimeout); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	defer ctx.Sounds.Stop()

	fmt.Println("Press Enter to stop.")
	bufio.NewReader(os.Stdin).ReadString('\n')
	return nil
}
