package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/version"
)

type countingVersions struct {
	calls int
	v     version.Version
}

func (c *countingVersions) Resolve(api.ReleaseType, string) version.Version {
	c.calls++
	return c.v
}

// moduleWorkDir lays out <root>/Widgets/work and returns both.
func moduleWorkDir(t *testing.T) (root, work string) {
	t.Helper()
	root = t.TempDir()
	work = filepath.Join(root, "Widgets", "work")
	if err := os.MkdirAll(work, 0o750); err != nil {
		t.Fatal(err)
	}
	return root, work
}

func TestNewInfo_Paths(t *testing.T) {
	root, work := moduleWorkDir(t)
	versions := &countingVersions{v: version.Version{Major: 1, Minor: 2, Patch: 3}}

	info, err := NewInfo(work, root, []string{api.StepClean}, api.ReleaseTypeBuild, api.DefaultOptions(), versions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.ModuleName != "Widgets" {
		t.Errorf("ModuleName = %q, want Widgets", info.ModuleName)
	}
	if info.SourceDir != filepath.Join(work, "src") {
		t.Errorf("SourceDir = %q", info.SourceDir)
	}
	if info.PackageDir != filepath.Join(work, "package") {
		t.Errorf("PackageDir = %q", info.PackageDir)
	}
	if info.OutputDir != filepath.Join(work, "output") {
		t.Errorf("OutputDir = %q", info.OutputDir)
	}
	if info.ReleaseManifestPath != filepath.Join(info.PackageDir, "Widgets.psd1") {
		t.Errorf("ReleaseManifestPath = %q", info.ReleaseManifestPath)
	}
	if info.ReleaseModulePath != filepath.Join(info.PackageDir, "Widgets.psm1") {
		t.Errorf("ReleaseModulePath = %q", info.ReleaseModulePath)
	}
	if info.VersionText != "1.2.3.0" {
		t.Errorf("VersionText = %q", info.VersionText)
	}
}

func TestNewInfo_CommonBuildDirectory(t *testing.T) {
	root, work := moduleWorkDir(t)

	opts := api.DefaultOptions()
	opts.UseCommonBuildDirectory = true

	info, err := NewInfo(work, root, nil, api.ReleaseTypeBuild, opts, &countingVersions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.PackageDir != filepath.Join(root, "build", "package", "Widgets") {
		t.Errorf("PackageDir = %q", info.PackageDir)
	}
	if info.OutputDir != filepath.Join(root, "build", "output", "Widgets") {
		t.Errorf("OutputDir = %q", info.OutputDir)
	}
}

func TestNewInfo_ResolvesVersionExactlyOnce(t *testing.T) {
	root, work := moduleWorkDir(t)
	versions := &countingVersions{v: version.Version{Major: 4}}

	info, err := NewInfo(work, root, nil, api.ReleaseTypeMajor, api.DefaultOptions(), versions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if versions.calls != 1 {
		t.Errorf("version resolved %d times, want exactly once", versions.calls)
	}
	if info.Version != versions.v {
		t.Errorf("Version = %v, want %v", info.Version, versions.v)
	}
}

func TestNewInfo_EmptyRootDefaultsToWorkDir(t *testing.T) {
	_, work := moduleWorkDir(t)

	info, err := NewInfo(work, "", nil, api.ReleaseTypeBuild, api.DefaultOptions(), &countingVersions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ProjectRoot != work {
		t.Errorf("ProjectRoot = %q, want %q", info.ProjectRoot, work)
	}
}
