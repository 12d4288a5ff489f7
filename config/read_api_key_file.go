package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxAPIKeyFileBytes bounds the size of an api_key_file.
const MaxAPIKeyFileBytes int64 = 10 * 1024

var ErrEmptyAPIKeyFile = errors.New("api key file is empty")

func ReadAPIKeyFile(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to open api key file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat api key file: %w", err)
	}

	if !st.Mode().IsRegular() {
		return "", errors.New("api key file must be a regular file")
	}

	b, err := io.ReadAll(io.LimitReader(f, MaxAPIKeyFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read api key file: %w", err)
	}
	if int64(len(b)) > MaxAPIKeyFileBytes {
		return "", fmt.Errorf("api key file too large (max %d bytes)", MaxAPIKeyFileBytes)
	}

	key := strings.TrimSpace(string(b))
	if key == "" {
		return "", ErrEmptyAPIKeyFile
	}
	return key, nil
}
