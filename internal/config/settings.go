package config

import (
	"errors"
	"time"
)

// ErrNoToken is returned by Settings.RequireToken when neither
// NOTION_API_KEY nor API_KEY is set
var ErrNoToken = errors.New("no Notion integration token: set " + TokenEnvVar + " or add it to .env")

// Settings is the resolved runtime configuration: the token from the
// environment plus the registry file.
type Settings struct {
	Token    string
	Registry *Registry
}

// Load reads ./.env, then the registry at configPath (the platform default
// when empty), then the token. The token is read once, here.
func Load(configPath string) (*Settings, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	var (
		registry *Registry
		err      error
	)
	if configPath == "" {
		registry, err = LoadRegistry()
	} else {
		registry, err = LoadRegistryFrom(configPath)
	}
	if err != nil {
		return nil, err
	}

	return &Settings{Token: Token(), Registry: registry}, nil
}

// RequireToken returns ErrNoToken when no token was found
func (s *Settings) RequireToken() error {
	if s.Token == "" {
		return ErrNoToken
	}
	return nil
}

// BaseURL returns the configured API root
func (s *Settings) BaseURL() string {
	if s.Registry == nil || s.Registry.API == nil || s.Registry.API.BaseURL == "" {
		return DefaultBaseURL
	}
	return s.Registry.API.BaseURL
}

// NotionVersion returns the configured Notion-Version header value
func (s *Settings) NotionVersion() string {
	if s.Registry == nil || s.Registry.API == nil || s.Registry.API.NotionVersion == "" {
		return DefaultNotionVersion
	}
	return s.Registry.API.NotionVersion
}

// Timeout returns the per-request timeout
func (s *Settings) Timeout() time.Duration {
	if s.Registry == nil {
		return DefaultTimeoutSeconds * time.Second
	}
	return s.Registry.Timeout()
}

// CodeLanguage returns the default code block language
func (s *Settings) CodeLanguage() string {
	if s.Registry == nil || s.Registry.Preferences == nil || s.Registry.Preferences.CodeLanguage == "" {
		return DefaultCodeLanguage
	}
	return s.Registry.Preferences.CodeLanguage
}

// ClearOnSubmit reports whether the form is emptied after a submit
func (s *Settings) ClearOnSubmit() bool {
	return s.Registry != nil && s.Registry.Preferences != nil && s.Registry.Preferences.ClearOnSubmit
}

// LogSettings returns the file-configured logging settings, never nil
func (s *Settings) LogSettings() LogSettings {
	if s.Registry == nil || s.Registry.Logging == nil {
		return LogSettings{}
	}
	return *s.Registry.Logging
}
