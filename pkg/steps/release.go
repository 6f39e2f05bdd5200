package steps

import (
	"fmt"
	"log/slog"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
	"github.com/systemstart/modbuild/pkg/version"
)

type updateVersionStep struct {
	manifest ManifestStore
}

// NewUpdateVersionStep creates the step that persists the resolved version
// back into the source manifest. This is the whole Release preset.
func NewUpdateVersionStep(manifest ManifestStore) build.Step {
	return &updateVersionStep{manifest: manifest}
}

func (s *updateVersionStep) Name() string { return api.StepUpdateVersion }

func (s *updateVersionStep) Run(info *build.Info) error {
	path := info.SourceManifestPath()

	// The field may ship commented out in a fresh manifest.
	if _, err := s.manifest.EnableField(path, version.ManifestVersionField); err != nil {
		return fmt.Errorf("enabling version field: %w", err)
	}

	if err := s.manifest.WriteField(path, version.ManifestVersionField, info.Version.String()); err != nil {
		return fmt.Errorf("writing version field: %w", err)
	}

	slog.Info("source manifest version updated", "path", path, "version", info.Version)
	return nil
}
