package api

import (
	"os"

	"github.com/zalando/go-keyring"

	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/logger"
)

// LoadToken resolves the backend API token. The environment variable wins
// over the OS keyring so scripted runs don't need keyring access. A
// missing token is not an error; the backend may allow anonymous reads in
// development setups.
func LoadToken() string {
	if token := os.Getenv(constants.APITokenEnvVar); token != "" {
		return token
	}

	token, err := keyring.Get(constants.KeyringService, constants.KeyringUser)
	if err != nil {
		if err != keyring.ErrNotFound {
			logger.Warn("Failed to read API token from keyring", "error", err)
		}
		return ""
	}
	return token
}

// SaveToken stores the backend API token in the OS keyring.
func SaveToken(token string) error {
	return keyring.Set(constants.KeyringService, constants.KeyringUser, token)
}

// DeleteToken removes the stored backend API token.
func DeleteToken() error {
	err := keyring.Delete(constants.KeyringService, constants.KeyringUser)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
