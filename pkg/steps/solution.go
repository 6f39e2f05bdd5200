package steps

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
)

type solutionBuildStep struct {
	compiler Compiler
}

// NewSolutionBuildStep creates the step that compiles the companion native
// solution. Modules without a solution pass trivially.
func NewSolutionBuildStep(compiler Compiler) build.Step {
	return &solutionBuildStep{compiler: compiler}
}

func (s *solutionBuildStep) Name() string { return api.StepBuildVSSolution }

func (s *solutionBuildStep) Run(info *build.Info) error {
	sln, ok := findSolution(info.WorkDir)
	if !ok {
		slog.Info("no companion solution, skipping compile")
		return nil
	}

	code, err := s.compiler.Build(sln)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", sln, err)
	}
	if code != 0 {
		return fmt.Errorf("compiling %s: compiler exited with status %d", sln, code)
	}
	return nil
}

type solutionTestStep struct {
	compiler Compiler
}

// NewSolutionTestStep creates the step that runs the solution's unit tests.
func NewSolutionTestStep(compiler Compiler) build.Step {
	return &solutionTestStep{compiler: compiler}
}

func (s *solutionTestStep) Name() string { return api.StepVSUnitTest }

func (s *solutionTestStep) Run(info *build.Info) error {
	sln, ok := findSolution(info.WorkDir)
	if !ok {
		slog.Info("no companion solution, skipping solution tests")
		return nil
	}

	code, err := s.compiler.Test(sln)
	if err != nil {
		return fmt.Errorf("testing %s: %w", sln, err)
	}
	if code != 0 {
		return fmt.Errorf("testing %s: test runner exited with status %d", sln, code)
	}
	return nil
}

// DotnetCompiler drives the dotnet CLI for solution builds and tests.
type DotnetCompiler struct{}

func (DotnetCompiler) Build(solutionPath string) (int, error) {
	return runDotnet("build", solutionPath, "-c", "Release")
}

func (DotnetCompiler) Test(solutionPath string) (int, error) {
	return runDotnet("test", solutionPath, "-c", "Release")
}

func runDotnet(args ...string) (int, error) {
	if _, err := exec.LookPath("dotnet"); err != nil {
		return -1, fmt.Errorf("dotnet binary not found in PATH: %w", err)
	}

	slog.Info("running dotnet", "args", args)

	cmd := exec.Command("dotnet", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	if err != nil && code < 0 {
		return code, fmt.Errorf("dotnet did not run: %w\nstderr: %s", err, stderr.String())
	}
	if code != 0 {
		slog.Debug("dotnet finished nonzero", "code", code, "stderr", stderr.String())
	}
	return code, nil
}
