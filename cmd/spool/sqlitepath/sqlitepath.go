package sqlitepath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func ResolveSQLitePath(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if envPath := strings.TrimSpace(os.Getenv("SPOOL_SQLITE")); envPath != "" {
		return envPath, nil
	}
	if envPath := strings.TrimSpace(os.Getenv("SPOOL_DB")); envPath != "" {
		return envPath, nil
	}

	for _, candidate := range sqliteCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.New("could not find spool SQLite database; pass --sqlite")
}

func sqliteCandidates() []string {
	candidates := []string{
		"spool.db",
		"spool.sqlite",
		filepath.Join(".spool", "spool.db"),
		filepath.Join(".spool", "spool.sqlite"),
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append([]string{
			filepath.Join(home, ".spool", "spool.db"),
			filepath.Join(home, ".spool", "spool.sqlite"),
		}, candidates...)
	}

	if xdgHome := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdgHome != "" {
		candidates = append([]string{
			filepath.Join(xdgHome, "spool", "spool.db"),
			filepath.Join(xdgHome, "spool", "spool.sqlite"),
		}, candidates...)
	}

	return candidates
}
