package api

const (
	// Atomic step names, as they appear on the command line and in run output.
	StepSetup              = "Setup"
	StepClean              = "Clean"
	StepTestSyntax         = "TestSyntax"
	StepMerge              = "Merge"
	StepImportDependencies = "ImportDependencies"
	StepBuildVSSolution    = "BuildVSSolution"
	StepUpdateMetadata     = "UpdateMetadata"
	StepVSUnitTest         = "VSUnitTest"
	StepPSUnitTest         = "PSUnitTest"
	StepUpdateVersion      = "UpdateVersion"

	// Preset names. A preset expands to an ordered list of atomic steps.
	PresetBuild   = "Build"
	PresetTest    = "Test"
	PresetRelease = "Release"
)

// ReleaseType selects which version component an increment bumps.
type ReleaseType string

const (
	ReleaseTypeBuild ReleaseType = "Build"
	ReleaseTypeMinor ReleaseType = "Minor"
	ReleaseTypeMajor ReleaseType = "Major"
)

// Options holds the tunable build settings, loaded from .modbuild.yaml
// and overridable through MODBUILD_* environment variables.
type Options struct {
	// UseCommonBuildDirectory relocates package/output under a shared
	// build/ tree at the repository root, for multi-module repos.
	UseCommonBuildDirectory bool `yaml:"useCommonBuildDirectory"`

	// CodeCoverageThreshold is the minimum accepted coverage ratio in
	// [0,1]. Zero disables the check.
	CodeCoverageThreshold float64 `yaml:"codeCoverageThreshold"`

	// SourceInclude are doublestar patterns, relative to the source
	// directory, selecting the files merged into the release module.
	SourceInclude []string `yaml:"sourceInclude"`

	// Dependencies are module names copied from DependencyStore into the
	// package directory by the ImportDependencies step.
	Dependencies []string `yaml:"dependencies"`

	// DependencyStore is the directory holding one subdirectory per
	// dependency module.
	DependencyStore string `yaml:"dependencyStore"`

	// TestCommand is the argv of the module unit-test harness.
	TestCommand []string `yaml:"testCommand"`
}

// DefaultOptions returns the options used when no .modbuild.yaml exists.
func DefaultOptions() Options {
	return Options{
		SourceInclude: []string{"**/*.ps1", "**/*.psm1"},
	}
}
