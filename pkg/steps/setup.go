package steps

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
)

type setupStep struct{}

// NewSetupStep creates the step that prepares the package and output
// directories.
func NewSetupStep() build.Step { return setupStep{} }

func (setupStep) Name() string { return api.StepSetup }

func (setupStep) Run(info *build.Info) error {
	for _, dir := range []string{info.PackageDir, info.OutputDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	slog.Debug("build directories ready", "package", info.PackageDir, "output", info.OutputDir)
	return nil
}

type cleanStep struct{}

// NewCleanStep creates the step that removes previous build products and
// recreates the empty directories.
func NewCleanStep() build.Step { return cleanStep{} }

func (cleanStep) Name() string { return api.StepClean }

func (cleanStep) Run(info *build.Info) error {
	for _, dir := range []string{info.PackageDir, info.OutputDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("recreating %s: %w", dir, err)
		}
	}
	slog.Debug("build directories cleaned")
	return nil
}
