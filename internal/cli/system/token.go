package system

import (
	"fmt"

	"github.com/dosewatch/dosewatch/internal/api"
	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/constants"
)

// TokenSetCmd stores the backend API token in the OS keyring
type TokenSetCmd struct {
	Token string `arg:"" help:"Backend API token to store."`
}

func (cmd *TokenSetCmd) Run(ctx *cli.Context) error {
	if cmd.Token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := api.SaveToken(cmd.Token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	fmt.Println("✓ API token stored successfully in OS keyring")
	return nil
}

// TokenShowCmd reports where the effective token comes from without
// printing the token itself.
type TokenShowCmd struct{}

func (cmd *TokenShowCmd) Run(ctx *cli.Context) error {
	if api.LoadToken() == "" {
		fmt.Printf("No API token configured. Set one with 'dosewatch token set' or export %s.\n", constants.APITokenEnvVar)
		return nil
	}
	fmt.Println("An API token is configured.")
	return nil
}

// TokenDeleteCmd removes the stored backend API token from the OS keyring
type TokenDeleteCmd struct{}

func (cmd *TokenDeleteCmd) Run(ctx *cli.Context) error {
	if err := api.DeleteToken(); err != nil {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	fmt.Println("✓ API token removed from OS keyring")
	return nil
}
