package steps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportDependencies(t *testing.T) {
	info := newTestInfo(t)

	store := t.TempDir()
	if err := os.MkdirAll(filepath.Join(store, "Logging", "en-US"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store, "Logging", "Logging.psm1"), []byte("function Write-Log {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	info.Options.Dependencies = []string{"Logging"}
	info.Options.DependencyStore = store

	if err := NewImportDependenciesStep().Run(info); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	copied := filepath.Join(info.PackageDir, "Logging", "Logging.psm1")
	if got := readFile(t, copied); !strings.Contains(got, "Write-Log") {
		t.Errorf("dependency content not copied: %q", got)
	}
	if st, err := os.Stat(filepath.Join(info.PackageDir, "Logging", "en-US")); err != nil || !st.IsDir() {
		t.Error("nested dependency directories must be copied")
	}
}

func TestImportDependencies_NoneConfigured(t *testing.T) {
	info := newTestInfo(t)
	if err := NewImportDependenciesStep().Run(info); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestImportDependencies_MissingFromStore(t *testing.T) {
	info := newTestInfo(t)
	info.Options.Dependencies = []string{"Ghost"}
	info.Options.DependencyStore = t.TempDir()

	err := NewImportDependenciesStep().Run(info)
	if err == nil {
		t.Fatal("expected error for a dependency missing from the store")
	}
	if !strings.Contains(err.Error(), `"Ghost" not found`) {
		t.Errorf("unexpected error: %v", err)
	}
}
