package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the lapak home directory.
const EnvHome = "LAPAK_HOME"

// HomeDir returns the lapak home directory: $LAPAK_HOME when set,
// otherwise ~/.lapak.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".lapak"), nil
}

// resolveDir returns dir, or the home directory joined with sub when dir is empty.
func resolveDir(dir string, sub ...string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, sub...)...), nil
}
