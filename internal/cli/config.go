package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	AdminKey     string
	AdminKeyFile string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("ARCADE_SERVER", "http://localhost:8080"),
		AdminKey:     os.Getenv("ARCADE_ADMIN_KEY"),
		AdminKeyFile: getEnvOrDefault("ARCADE_ADMIN_KEY_FILE", defaultKeyFile()),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadAdminKey loads the admin key from file if not already set
func (c *Config) LoadAdminKey() error {
	if c.AdminKey != "" {
		return nil
	}

	data, err := os.ReadFile(c.AdminKeyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No key file is fine
		}
		return err
	}

	c.AdminKey = strings.TrimSpace(string(data))
	return nil
}

func defaultKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arcade/admin-key"
	}
	return filepath.Join(home, ".arcade", "admin-key")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
