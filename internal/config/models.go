package config

import (
	"strings"
	"time"
)

// Defaults written by NewRegistry and used when a key is absent
const (
	DefaultBaseURL        = "https://api.notion.com"
	DefaultNotionVersion  = "2022-06-28"
	DefaultTimeoutSeconds = 15
	DefaultCodeLanguage   = "plain text"
)

// Registry represents the entire user configuration file.
// The integration token is never part of it.
type Registry struct {
	Version     int          `yaml:"version"`
	API         *APISettings `yaml:"api,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
	Logging     *LogSettings `yaml:"logging,omitempty"`

	// path is where the registry was loaded from and where Save writes.
	// Empty means the platform default from GetConfigPath.
	path string
}

// APISettings controls how the Notion client connects
type APISettings struct {
	BaseURL        string `yaml:"base_url,omitempty"`        // API root, default https://api.notion.com
	NotionVersion  string `yaml:"notion_version,omitempty"`  // Notion-Version header
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"` // Per-request timeout
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	CodeLanguage  string    `yaml:"code_language,omitempty"`  // Language for code blocks
	ClearOnSubmit bool      `yaml:"clear_on_submit"`          // Clear the form after a successful submit
	LastPageID    string    `yaml:"last_page_id,omitempty"`   // Page the cursor starts on
	LastUsed      time.Time `yaml:"last_used,omitempty"`      // When LastPageID was last written to
}

// LogSettings mirrors the FAULTNOTE_LOG_* environment variables.
// Environment variables win when both are set.
type LogSettings struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		API: &APISettings{
			BaseURL:        DefaultBaseURL,
			NotionVersion:  DefaultNotionVersion,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Preferences: &Preferences{
			CodeLanguage: DefaultCodeLanguage,
		},
		Logging: &LogSettings{},
	}
}

// Path returns the file the registry is bound to, or "" for the platform default.
func (r *Registry) Path() string {
	return r.path
}

// fillDefaults initializes missing sections after decoding a file
func (r *Registry) fillDefaults() {
	if r.API == nil {
		r.API = &APISettings{}
	}
	if r.API.BaseURL == "" {
		r.API.BaseURL = DefaultBaseURL
	}
	if r.API.NotionVersion == "" {
		r.API.NotionVersion = DefaultNotionVersion
	}
	if r.API.TimeoutSeconds <= 0 {
		r.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if r.Preferences == nil {
		r.Preferences = &Preferences{}
	}
	if strings.TrimSpace(r.Preferences.CodeLanguage) == "" {
		r.Preferences.CodeLanguage = DefaultCodeLanguage
	}
	if r.Logging == nil {
		r.Logging = &LogSettings{}
	}
}

// Timeout returns the configured request timeout.
func (r *Registry) Timeout() time.Duration {
	if r.API == nil || r.API.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(r.API.TimeoutSeconds) * time.Second
}

// LastPage returns the id of the page last appended to, if any.
func (r *Registry) LastPage() string {
	if r.Preferences == nil {
		return ""
	}
	return r.Preferences.LastPageID
}

// SetLastPage records pageID as the page last appended to.
func (r *Registry) SetLastPage(pageID string) {
	if r.Preferences == nil {
		r.Preferences = &Preferences{CodeLanguage: DefaultCodeLanguage}
	}
	r.Preferences.LastPageID = pageID
	r.Preferences.LastUsed = time.Now()
}
