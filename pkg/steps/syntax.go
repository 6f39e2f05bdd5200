package steps

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
)

type syntaxStep struct {
	checker SyntaxChecker
}

// NewSyntaxStep creates the step that runs the syntax checker over every
// source file before anything is packaged.
func NewSyntaxStep(checker SyntaxChecker) build.Step {
	return &syntaxStep{checker: checker}
}

func (s *syntaxStep) Name() string { return api.StepTestSyntax }

func (s *syntaxStep) Run(info *build.Info) error {
	files, err := sourceFiles(info.SourceDir, info.Options.SourceInclude)
	if err != nil {
		return fmt.Errorf("collecting source files: %w", err)
	}

	slog.Info("checking source syntax", "files", len(files))

	for _, file := range files {
		path := filepath.Join(info.SourceDir, file)
		if err := s.checker.Check(path); err != nil {
			return fmt.Errorf("syntax check of %s: %w", file, err)
		}
	}
	return nil
}

// PwshSyntaxChecker probes a script file through the PowerShell language
// parser without executing it.
type PwshSyntaxChecker struct{}

// syntaxFileEnv carries the file under test into the probe script. A string
// passed to -Command gets no $args, and anything appended after it becomes
// part of the command text, so the path has to travel out of band.
const syntaxFileEnv = "MODBUILD_SYNTAX_FILE"

const syntaxProbeScript = "$t = $null; $e = $null; " +
	"[System.Management.Automation.Language.Parser]::ParseFile($env:" + syntaxFileEnv + ", [ref]$t, [ref]$e) > $null; " +
	"if ($e.Count -gt 0) { $e | ForEach-Object { Write-Error $_.ToString() }; exit 1 }"

func syntaxProbeCommand(path string) *exec.Cmd {
	cmd := exec.Command("pwsh", "-NoProfile", "-NonInteractive", "-Command", syntaxProbeScript)
	cmd.Env = append(os.Environ(), syntaxFileEnv+"="+path)
	return cmd
}

func (PwshSyntaxChecker) Check(path string) error {
	if _, err := exec.LookPath("pwsh"); err != nil {
		return fmt.Errorf("pwsh binary not found in PATH: %w", err)
	}

	cmd := syntaxProbeCommand(path)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("parser rejected file: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}
