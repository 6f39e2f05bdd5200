package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
)

// testResultsFilename is the summary the test harness writes into the
// output directory.
const testResultsFilename = "test-results.json"

type moduleTestStep struct {
	tests TestRunner
}

// NewModuleTestStep creates the step that runs the script-module unit tests
// and enforces the coverage threshold.
func NewModuleTestStep(tests TestRunner) build.Step {
	return &moduleTestStep{tests: tests}
}

func (s *moduleTestStep) Name() string { return api.StepPSUnitTest }

func (s *moduleTestStep) Run(info *build.Info) error {
	report, err := s.tests.RunUnitTests(TestConfig{
		Command:   info.Options.TestCommand,
		WorkDir:   info.WorkDir,
		OutputDir: info.OutputDir,
	})
	if err != nil {
		return fmt.Errorf("running unit tests: %w", err)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d unit test(s) failed", report.Failed)
	}

	threshold := info.Options.CodeCoverageThreshold
	if threshold > 0 && report.Coverage < threshold {
		msg := fmt.Sprintf("code coverage %.1f%% is below the %.1f%% threshold",
			report.Coverage*100, threshold*100)
		if len(report.Missed) > 0 {
			msg += "; missed: " + strings.Join(report.Missed, ", ")
		}
		return fmt.Errorf("%s", msg)
	}

	slog.Info("unit tests passed", "coverage", report.Coverage)
	return nil
}

// PesterRunner executes the configured test harness command and reads the
// summary it writes into the output directory.
type PesterRunner struct{}

// DefaultTestCommand is used when the options file does not configure one.
var DefaultTestCommand = []string{"pwsh", "-NoProfile", "-NonInteractive", "-File", "test/run.ps1"}

func (PesterRunner) RunUnitTests(cfg TestConfig) (TestReport, error) {
	argv := cfg.Command
	if len(argv) == 0 {
		argv = DefaultTestCommand
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		return TestReport{}, fmt.Errorf("%s binary not found in PATH: %w", argv[0], err)
	}

	slog.Info("running unit-test harness", "command", strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = cfg.WorkDir
	cmd.Env = append(os.Environ(), "MODBUILD_OUTPUT_DIR="+cfg.OutputDir)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	report, readErr := readTestReport(filepath.Join(cfg.OutputDir, testResultsFilename))
	if readErr != nil {
		if runErr != nil {
			return TestReport{}, fmt.Errorf("harness failed: %w\nstderr: %s", runErr, stderr.String())
		}
		return TestReport{}, readErr
	}
	return report, nil
}

func readTestReport(path string) (TestReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TestReport{}, fmt.Errorf("reading test results: %w", err)
	}
	var report TestReport
	if err := json.Unmarshal(data, &report); err != nil {
		return TestReport{}, fmt.Errorf("parsing test results: %w", err)
	}
	return report, nil
}
