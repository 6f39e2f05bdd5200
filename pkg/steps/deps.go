package steps

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
)

type importDependenciesStep struct{}

// NewImportDependenciesStep creates the step that copies each configured
// dependency module from the dependency store into the package directory.
func NewImportDependenciesStep() build.Step { return importDependenciesStep{} }

func (importDependenciesStep) Name() string { return api.StepImportDependencies }

func (importDependenciesStep) Run(info *build.Info) error {
	if len(info.Options.Dependencies) == 0 {
		slog.Debug("no dependencies configured")
		return nil
	}

	for _, name := range info.Options.Dependencies {
		src := filepath.Join(info.Options.DependencyStore, name)
		st, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("dependency %q not found in store %s: %w", name, info.Options.DependencyStore, err)
		}
		if !st.IsDir() {
			return fmt.Errorf("dependency %q in store %s is not a directory", name, info.Options.DependencyStore)
		}

		dst := filepath.Join(info.PackageDir, name)
		if err := copyTree(src, dst); err != nil {
			return fmt.Errorf("importing dependency %q: %w", name, err)
		}
		slog.Info("dependency imported", "name", name, "target", dst)
	}
	return nil
}
