package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/ehunter/skycast/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the given name
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Known secret names. Get/Set accept any name so new integrations don't need
// a release, but the CLI surfaces these.
const (
	KeyOpenWeather = "openweather-api-key"
	KeyGemini      = "gemini-api-key"
	KeyOpenAI      = "openai-api-key"
	KeyGitHub      = "github-token"
	KeyMaps        = "maps-api-key"
	KeyDatabase    = "database-connection"
)

// Get retrieves the named secret from the OS keyring.
// Returns ErrNotFound if nothing is stored under that name.
func Get(name string) (string, error) {
	val, err := keyring.Get(constants.DefaultKeyringService, name)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return val, nil
}

// Set stores the named secret in the OS keyring.
func Set(name, value string) error {
	if name == "" {
		return errors.New("secret name cannot be empty")
	}
	if value == "" {
		return errors.New("secret value cannot be empty")
	}
	if err := keyring.Set(constants.DefaultKeyringService, name, value); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

// Delete removes the named secret from the OS keyring.
func Delete(name string) error {
	err := keyring.Delete(constants.DefaultKeyringService, name)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.DefaultKeyringService, "test-availability")
	// ErrNotFound means the keyring answered, it is just empty
	return err == nil || err == keyring.ErrNotFound
}
