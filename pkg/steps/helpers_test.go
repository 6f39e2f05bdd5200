package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
	"github.com/systemstart/modbuild/pkg/version"
)

// newTestInfo lays out a module work directory with src/, package/ and
// output/ and returns the matching build context.
func newTestInfo(t *testing.T) *build.Info {
	t.Helper()

	root := t.TempDir()
	work := filepath.Join(root, "Widgets", "work")
	for _, dir := range []string{"src", "package", "output"} {
		if err := os.MkdirAll(filepath.Join(work, dir), 0o750); err != nil {
			t.Fatal(err)
		}
	}

	packageDir := filepath.Join(work, "package")
	return &build.Info{
		ModuleName:  "Widgets",
		ReleaseType: api.ReleaseTypeBuild,
		Version:     version.Version{Major: 1, Minor: 2, Patch: 3},
		VersionText: "1.2.3.0",
		ProjectRoot: root,
		WorkDir:     work,
		SourceDir:   filepath.Join(work, "src"),
		PackageDir:  packageDir,
		OutputDir:   filepath.Join(work, "output"),

		ReleaseManifestPath: filepath.Join(packageDir, "Widgets.psd1"),
		ReleaseModulePath:   filepath.Join(packageDir, "Widgets.psm1"),

		Options: api.DefaultOptions(),
	}
}

func writeSource(t *testing.T, info *build.Info, name, content string) {
	t.Helper()
	path := filepath.Join(info.SourceDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
