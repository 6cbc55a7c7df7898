package board

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBoardConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`base_url = "http://localhost:9000"`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
