package system

import (
	"fmt"
	"time"

	"github.com/dosewatch/dosewatch/internal/api"
	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/notifier"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storageOK := false

	// Check 1: Storage reachable
	if err := checkStorage(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storageOK = true
	}

	// Check 2: Backend configured and reachable (only if storage is ok)
	if storageOK {
		if err := checkBackend(ctx); err != nil {
			fmt.Printf("❌ Backend reachable: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Backend reachable: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backend reachable: SKIPPED (storage not reachable)\n")
	}

	// Check 3: API token present (warning only)
	if api.LoadToken() == "" {
		fmt.Printf("⚠ API token: WARNING\n")
		fmt.Printf("   No token configured; the backend may reject requests.\n")
	} else {
		fmt.Printf("✓ API token: OK\n")
	}

	// Check 4: Audio output (warning only; alarms still show without sound)
	if ctx.Sounds.IsAvailable() {
		fmt.Printf("✓ Audio output: OK (%s)\n", ctx.Sounds.BackendName())
	} else {
		fmt.Printf("⚠ Audio output: WARNING\n")
		fmt.Printf("   No audio device available; alarms will be silent.\n")
	}

	// Check 5: Tray companion (warning only)
	if notifier.New().Available() {
		fmt.Printf("✓ Tray companion: OK\n")
	} else {
		fmt.Printf("⚠ Tray companion: WARNING\n")
		fmt.Printf("   Not running; banner notifications are disabled.\n")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All diagnostics passed.")
	return nil
}

func checkStorage(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("settings not readable: %w", err)
	}
	return nil
}

func checkBackend(ctx *cli.Context) error {
	client, err := ctx.Backend()
	if err != nil {
		return err
	}
	return client.Ping()
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which looks wrong", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset %d seconds is out of range", offset)
	}
	return nil
}
