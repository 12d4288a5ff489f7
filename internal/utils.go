package internal

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	ConfigHomeEnv    = "GPT5_CONFIG_HOME"
	DefaultConfigDir = ".gpt5"
)

// NewRequestID returns the value sent in the X-Client-Request-Id header.
func NewRequestID() string {
	return uuid.NewString()
}

func GetConfigHome() (string, error) {
	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		return tmp, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}
