package steps

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
)

// mergedHeader is rendered at the top of the merged module file.
const mergedHeader = `# {{ .Module }} {{ .Version }}
# Generated {{ .Date | date "2006-01-02 15:04:05" }} from {{ .Files }} source file{{ if ne .Files 1 }}s{{ end }}. Do not edit.

`

type mergeStep struct{}

// NewMergeStep creates the step that concatenates the source files into the
// single release module file.
func NewMergeStep() build.Step { return mergeStep{} }

func (mergeStep) Name() string { return api.StepMerge }

func (mergeStep) Run(info *build.Info) error {
	files, err := sourceFiles(info.SourceDir, info.Options.SourceInclude)
	if err != nil {
		return fmt.Errorf("collecting source files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files matched %v under %s", info.Options.SourceInclude, info.SourceDir)
	}

	tmpl, err := template.New("header").Funcs(sprig.FuncMap()).Parse(mergedHeader)
	if err != nil {
		return fmt.Errorf("parsing header template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Module":  info.ModuleName,
		"Version": info.Version.String(),
		"Date":    time.Now(),
		"Files":   len(files),
	})
	if err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for _, file := range files {
		data, readErr := os.ReadFile(filepath.Join(info.SourceDir, file))
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", file, readErr)
		}
		buf.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	if err := os.MkdirAll(filepath.Dir(info.ReleaseModulePath), 0o750); err != nil {
		return fmt.Errorf("creating package directory: %w", err)
	}
	if err := os.WriteFile(info.ReleaseModulePath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing merged module: %w", err)
	}

	slog.Info("merged module written", "path", info.ReleaseModulePath, "files", len(files))
	return nil
}
