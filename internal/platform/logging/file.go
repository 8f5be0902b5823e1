package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultLogName = "todoterm.log"

// OpenFile opens (appending, creating if needed) the log file at path.
// An empty path resolves to todoterm.log under the user config dir, so
// an unconfigured install still has somewhere to log. The caller owns
// closing the returned file.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user config dir: %w", err)
		}
		path = filepath.Join(dir, "todoterm", defaultLogName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}
