package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"seconddraft/internal/domain"
)

// AppConfig is the operator-managed config.json shared with the web front-end.
type AppConfig struct {
	Password string        `json:"password"`
	Patreon  PatreonConfig `json:"patreon"`
}

type PatreonConfig struct {
	SessionCookie string              `json:"sessionCookie"`
	Collections   []domain.Collection `json:"collections" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadApp reads and validates config.json. Every failure is a *domain.ConfigError.
func LoadApp(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("read %s: %v", path, err)}
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AppFile is the path of config.json, re-read on every LoadApp call.
type AppFile string

func (f AppFile) LoadApp() (*AppConfig, error) {
	return LoadApp(string(f))
}

func (c *AppConfig) Validate() error {
	if c.Patreon.SessionCookie == "" {
		return &domain.ConfigError{Reason: "patreon session cookie not configured"}
	}
	// An explicit empty list is allowed and means there is nothing to sync.
	if c.Patreon.Collections == nil {
		return &domain.ConfigError{Reason: "patreon collections not configured"}
	}

	if err := validate.Struct(c.Patreon); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &domain.ConfigError{Reason: fmt.Sprintf("invalid collection: %s failed on %s", verrs[0].Namespace(), verrs[0].Tag())}
		}
		return &domain.ConfigError{Reason: err.Error()}
	}

	return nil
}
