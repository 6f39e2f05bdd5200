package build

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/systemstart/modbuild/pkg/api"
)

// Exit statuses produced by a run.
const (
	ExitSuccess = 0
	ExitFailed  = 1
)

// Orchestrator is the top-level driver: expand step names, build the run
// context, execute, aggregate.
type Orchestrator struct {
	Runner   *Runner
	Versions VersionSource
	Options  api.Options

	// WorkDir is the invocation directory; empty means the process working
	// directory. ProjectRoot is the repository root; empty means WorkDir.
	WorkDir     string
	ProjectRoot string
}

// RunReport aggregates one full run.
type RunReport struct {
	Info       *Info
	Results    []StepResult
	ExitStatus int
}

// Describe expands the step list and resolves the build context without
// executing anything or touching the filesystem.
func (o *Orchestrator) Describe(rawSteps []string, rt api.ReleaseType) (*Info, error) {
	steps := api.Expand(rawSteps)
	cwd, err := o.workDir()
	if err != nil {
		return nil, err
	}
	return NewInfo(cwd, o.ProjectRoot, steps, rt, o.Options, o.Versions)
}

// RunBuild executes the expanded step list. The working directory is
// restored on every exit path. When a step fails, the report carries exit
// status 1 and the first failing step's error is returned as the cause.
func (o *Orchestrator) RunBuild(rawSteps []string, rt api.ReleaseType) (report *RunReport, err error) {
	steps := api.Expand(rawSteps)

	cwd, err := o.workDir()
	if err != nil {
		return nil, err
	}
	// Restore the directory the process was in before the run, which is not
	// necessarily WorkDir when a caller configured one.
	restoreDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	defer func() {
		if chdirErr := os.Chdir(restoreDir); chdirErr != nil {
			slog.Warn("could not restore working directory", "dir", restoreDir, "error", chdirErr)
		}
	}()

	info, err := NewInfo(cwd, o.ProjectRoot, steps, rt, o.Options, o.Versions)
	if err != nil {
		return nil, fmt.Errorf("building run context: %w", err)
	}

	slog.Info("starting build", "module", info.ModuleName, "version", info.Version, "steps", len(steps))

	results := o.Runner.Run(steps, info)

	report = &RunReport{Info: info, Results: results, ExitStatus: ExitSuccess}
	for i := range results {
		if results[i].Outcome != Success {
			report.ExitStatus = ExitFailed
			return report, results[i].Err
		}
	}
	return report, nil
}

func (o *Orchestrator) workDir() (string, error) {
	if o.WorkDir != "" {
		return o.WorkDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determining working directory: %w", err)
	}
	return cwd, nil
}
