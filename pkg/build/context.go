package build

import (
	"fmt"
	"path/filepath"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/version"
)

// VersionSource yields the version for a run. Resolution must not fail; a
// degraded source falls back internally.
type VersionSource interface {
	Resolve(rt api.ReleaseType, sourceDir string) version.Version
}

// Info is the resolved configuration for one build run. It is populated once
// by NewInfo and read-only afterwards; steps write files under its paths but
// never reassign its fields.
type Info struct {
	ModuleName  string          `yaml:"moduleName"`
	Steps       []string        `yaml:"steps"`
	ReleaseType api.ReleaseType `yaml:"releaseType"`
	Version     version.Version `yaml:"-"`
	VersionText string          `yaml:"version"`
	ProjectRoot string          `yaml:"projectRoot"`
	WorkDir     string          `yaml:"workDir"`
	SourceDir   string          `yaml:"sourceDir"`
	PackageDir  string          `yaml:"packageDir"`
	OutputDir   string          `yaml:"outputDir"`

	ReleaseManifestPath string `yaml:"releaseManifestPath"`
	ReleaseModulePath   string `yaml:"releaseModulePath"`

	Options api.Options `yaml:"options"`
}

// NewInfo derives the build context. The module takes its name from the
// parent directory of the invocation directory; the tool runs from a
// module's working directory, one level below the module root. The version
// is resolved here, exactly once per run.
func NewInfo(cwd, projectRoot string, steps []string, rt api.ReleaseType, opts api.Options, versions VersionSource) (*Info, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	if projectRoot == "" {
		projectRoot = absCwd
	}
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	moduleName := filepath.Base(filepath.Dir(absCwd))
	sourceDir := filepath.Join(absCwd, "src")

	var packageDir, outputDir string
	if opts.UseCommonBuildDirectory {
		packageDir = filepath.Join(absRoot, "build", "package", moduleName)
		outputDir = filepath.Join(absRoot, "build", "output", moduleName)
	} else {
		packageDir = filepath.Join(absCwd, "package")
		outputDir = filepath.Join(absCwd, "output")
	}

	v := versions.Resolve(rt, sourceDir)

	return &Info{
		ModuleName:  moduleName,
		Steps:       steps,
		ReleaseType: rt,
		Version:     v,
		VersionText: v.String(),
		ProjectRoot: absRoot,
		WorkDir:     absCwd,
		SourceDir:   sourceDir,
		PackageDir:  packageDir,
		OutputDir:   outputDir,

		ReleaseManifestPath: filepath.Join(packageDir, moduleName+".psd1"),
		ReleaseModulePath:   filepath.Join(packageDir, moduleName+".psm1"),

		Options: opts,
	}, nil
}

// SourceManifestPath is the manifest shipped with the sources, used as the
// version fallback and as the template for the release manifest.
func (i *Info) SourceManifestPath() string {
	return filepath.Join(i.SourceDir, i.ModuleName+".psd1")
}
