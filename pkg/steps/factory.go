// Package steps implements the atomic build steps executed by the runner.
// The heavyweight work (syntax probing, solution builds, unit tests) goes
// through narrow collaborator interfaces so the steps stay thin.
package steps

import (
	"github.com/systemstart/modbuild/pkg/build"
)

// ManifestStore edits module manifest files.
type ManifestStore interface {
	ReadField(path, field string) (string, bool)
	WriteField(path, field, value string) error
	EnableField(path, field string) (bool, error)
}

// SyntaxChecker validates a single source file.
type SyntaxChecker interface {
	Check(path string) error
}

// Compiler builds and tests the companion solution, returning the tool's
// exit code.
type Compiler interface {
	Build(solutionPath string) (int, error)
	Test(solutionPath string) (int, error)
}

// TestConfig parameterizes a module unit-test run.
type TestConfig struct {
	Command   []string
	WorkDir   string
	OutputDir string
}

// TestReport is a unit-test harness summary.
type TestReport struct {
	Failed   int      `json:"failed"`
	Coverage float64  `json:"coverage"`
	Missed   []string `json:"missed"`
}

// TestRunner executes the module unit-test harness.
type TestRunner interface {
	RunUnitTests(cfg TestConfig) (TestReport, error)
}

// Collaborators bundles the external services the steps depend on.
type Collaborators struct {
	Manifest ManifestStore
	Syntax   SyntaxChecker
	Compiler Compiler
	Tests    TestRunner
}

// DefaultRegistry wires every atomic step with its collaborators.
func DefaultRegistry(c Collaborators) *build.Registry {
	return build.NewRegistry(
		NewSetupStep(),
		NewCleanStep(),
		NewSyntaxStep(c.Syntax),
		NewMergeStep(),
		NewImportDependenciesStep(),
		NewSolutionBuildStep(c.Compiler),
		NewUpdateMetadataStep(c.Manifest),
		NewSolutionTestStep(c.Compiler),
		NewModuleTestStep(c.Tests),
		NewUpdateVersionStep(c.Manifest),
	)
}
