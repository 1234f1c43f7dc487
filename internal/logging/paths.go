package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.contask/logs/).
// Falls back to the temp directory if home is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".contask", "logs")
	}
	return filepath.Join(home, ".contask", "logs")
}

// DefaultLogPath returns the default session log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "contask.log")
}
