package system

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/dosewatch/dosewatch/internal/api"
	"github.com/dosewatch/dosewatch/internal/cli"
)

type InitCmd struct {
	Force      bool   `help:"Force reset by deleting existing database before initialization."`
	BackendURL string `help:"Base URL of the prescription backend. Prompted for when omitted."`
	Token      string `help:"Backend API token to store in the OS keyring. Prompted for when omitted."`
	NoPrompt   bool   `help:"Never prompt; use flag values only."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized dosewatch storage at: %s\n", ctx.Store.GetConfigPath())

	backendURL := strings.TrimSpace(c.BackendURL)
	token := c.Token
	if backendURL == "" && !c.NoPrompt {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Backend URL").
					Description("Base URL of the prescription backend, e.g. https://api.example.com").
					Value(&backendURL).
					Validate(validateBackendURL),
				huh.NewInput().
					Title("API token").
					Description("Leave empty to skip; can be set later with 'dosewatch token set'.").
					EchoMode(huh.EchoModePassword).
					Value(&token),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("setup aborted: %w", err)
		}
	}

	if backendURL != "" {
		if err := validateBackendURL(backendURL); err != nil {
			return err
		}
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings.BackendURL = strings.TrimRight(backendURL, "/")
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Printf("Backend URL set to: %s\n", settings.BackendURL)
	}

	if token != "" {
		if err := api.SaveToken(token); err != nil {
			return fmt.Errorf("failed to store API token in keyring: %w", err)
		}
		fmt.Println("✓ API token stored in OS keyring")
	}

	return nil
}

func validateBackendURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("backend URL cannot be empty")
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("expected an http(s) URL, got %q", s)
	}
	return nil
}
