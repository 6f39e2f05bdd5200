package steps

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
	"github.com/systemstart/modbuild/pkg/version"
)

// buildInfoBlock is appended to the release manifest so the packaged module
// carries its own provenance.
const buildInfoBlock = `
# Packaged by modbuild
# Module:  {{ .Module }}
# Version: {{ .Version }}
# Date:    {{ .Date | date "2006-01-02T15:04:05Z07:00" }}
`

type updateMetadataStep struct {
	manifest ManifestStore
}

// NewUpdateMetadataStep creates the step that stages the release manifest
// and stamps it with the resolved version.
func NewUpdateMetadataStep(manifest ManifestStore) build.Step {
	return &updateMetadataStep{manifest: manifest}
}

func (s *updateMetadataStep) Name() string { return api.StepUpdateMetadata }

func (s *updateMetadataStep) Run(info *build.Info) error {
	src := info.SourceManifestPath()
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading source manifest: %w", err)
	}
	if err := os.WriteFile(info.ReleaseManifestPath, data, 0o600); err != nil {
		return fmt.Errorf("staging release manifest: %w", err)
	}

	if err := s.manifest.WriteField(info.ReleaseManifestPath, version.ManifestVersionField, info.Version.String()); err != nil {
		return fmt.Errorf("stamping version: %w", err)
	}

	if err := appendBuildInfo(info); err != nil {
		return err
	}

	slog.Info("release manifest updated", "path", info.ReleaseManifestPath, "version", info.Version)
	return nil
}

func appendBuildInfo(info *build.Info) error {
	tmpl, err := template.New("buildinfo").Funcs(sprig.FuncMap()).Parse(buildInfoBlock)
	if err != nil {
		return fmt.Errorf("parsing build-info template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Module":  info.ModuleName,
		"Version": info.Version.String(),
		"Date":    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("rendering build-info block: %w", err)
	}

	f, err := os.OpenFile(info.ReleaseManifestPath, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening release manifest: %w", err)
	}
	_, writeErr := f.Write(buf.Bytes())
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("appending build-info block: %w", writeErr)
	}
	return nil
}
