package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/cli/alarms"
	"github.com/dosewatch/dosewatch/internal/cli/doses"
	"github.com/dosewatch/dosewatch/internal/cli/settings"
	"github.com/dosewatch/dosewatch/internal/cli/system"
	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/logger"
	"github.com/dosewatch/dosewatch/internal/sound"
	"github.com/dosewatch/dosewatch/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/dosewatch/dosewatch.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize dosewatch storage and connect to a backend."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Today  doses.TodayCmd   `cmd:"" help:"Show the doses due today." default:"1"`
	Take   doses.TakeCmd    `cmd:"" help:"Mark a dose taken for this session."`
	Skip   doses.SkipCmd    `cmd:"" help:"Mark a dose skipped for this session."`
	Watch  alarms.WatchCmd  `cmd:"" help:"Run the foreground alarm loop."`
	Alarm  struct {
		Test alarms.TestCmd `cmd:"" help:"Preview the alarm sound." default:"1"`
	} `cmd:"" help:"Alarm utilities."`
	Ringtone struct {
		Set   alarms.RingtoneSetCmd   `cmd:"" help:"Set a per-schedule ringtone override."`
		List  alarms.RingtoneListCmd  `cmd:"" help:"List ringtone overrides." default:"1"`
		Clear alarms.RingtoneClearCmd `cmd:"" help:"Clear a ringtone override."`
	} `cmd:"" help:"Manage ringtone overrides."`
	Token struct {
		Set    system.TokenSetCmd    `cmd:"" help:"Store the backend API token in the OS keyring."`
		Show   system.TokenShowCmd   `cmd:"" help:"Report whether an API token is configured." default:"1"`
		Delete system.TokenDeleteCmd `cmd:"" help:"Remove the stored API token."`
	} `cmd:"" help:"Manage the backend API token."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Medication reminder companion: dose schedules, alarms and ringtones"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := storage.NewSQLiteStore(CLI.Config)

	appCtx := &cli.Context{
		Store:  store,
		Sounds: sound.NewEngine(sound.SelectBackend(), soundPreference(store)),
	}

	// Load the store before running the command (Init command will handle its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err := ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	if err != nil {
		errors.Fatal(err)
	}
}

// soundPreference reads the enabled flag lazily so a settings change
// takes effect on the next alarm without restarting.
func soundPreference(store storage.Provider) func() bool {
	return func() bool {
		settings, err := store.GetSettings()
		if err != nil {
			return true
		}
		return settings.SoundEnabled
	}
}
