package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables holding the integration token, in lookup order.
// API_KEY is accepted for compatibility with existing .env files.
const (
	TokenEnvVar       = "NOTION_API_KEY"
	LegacyTokenEnvVar = "API_KEY"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment, defaulting to ./.env. Variables already set are left alone.
// Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Token returns the Notion integration token from the environment, or ""
// when none is set.
func Token() string {
	for _, key := range []string{TokenEnvVar, LegacyTokenEnvVar} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}
