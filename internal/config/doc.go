// Package config provides user configuration management for faultnote.
//
// This package manages a YAML configuration file holding API connection
// settings, form preferences and logging options, and reads the Notion
// integration token from the environment.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/faultnote/config.yaml or $HOME/.config/faultnote/config.yaml
//   - macOS: $HOME/.config/faultnote/config.yaml
//   - Windows: %LOCALAPPDATA%\faultnote\config.yaml
//
// # Security
//
// IMPORTANT: the integration token is NEVER written to the configuration
// file. It is read from NOTION_API_KEY (or API_KEY), and a .env file in the
// working directory is loaded first.
//
// # Usage Example
//
//	_ = config.LoadDotEnv()
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := notion.NewClient(notion.ClientConfig{
//	    BaseURL: registry.API.BaseURL,
//	    Token:   config.Token(),
//	    Timeout: registry.Timeout(),
//	})
//
//	registry.SetLastPage(pageID)
//	if err := registry.Save(); err != nil {
//	    log.Printf("failed to save config: %v", err)
//	}
//
// # Thread Safety
//
// LoadRegistry returns a shared instance loaded once. Save serializes
// writes with a package mutex and writes atomically via rename.
package config
