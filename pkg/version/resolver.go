package version

import (
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/systemstart/modbuild/pkg/api"
)

// ManifestVersionField is the manifest field consulted when source control
// yields no usable tag.
const ManifestVersionField = "ModuleVersion"

// SourceControl answers the most recent tag name, if any.
type SourceControl interface {
	LatestTagVersion() (string, bool)
}

// ManifestReader reads a single field from a module manifest file.
type ManifestReader interface {
	ReadField(path, field string) (string, bool)
}

// Resolver computes the version for a build. Resolution degrades silently:
// tag history first, then the module manifest, then Default. Degradation is
// logged at debug level only, never surfaced as an error.
type Resolver struct {
	SCM      SourceControl
	Manifest ManifestReader
}

// Resolve returns the version for a run. The tag or manifest version is
// passed through the increment policy; the Default fallback is returned
// as-is.
func (r *Resolver) Resolve(rt api.ReleaseType, sourceDir string) Version {
	if r.SCM != nil {
		if tag, ok := r.SCM.LatestTagVersion(); ok {
			v, err := Parse(tag)
			if err == nil {
				return v.Increment(rt)
			}
			slog.Debug("tag is not a usable version", "tag", tag, "error", err)
		} else {
			slog.Debug("no version tag available")
		}
	}

	if r.Manifest != nil {
		if path, ok := findManifest(sourceDir); ok {
			if raw, ok := r.Manifest.ReadField(path, ManifestVersionField); ok {
				v, err := Parse(raw)
				if err == nil {
					return v.Increment(rt)
				}
				slog.Debug("manifest version is malformed", "path", path, "value", raw, "error", err)
			}
		}
	}

	slog.Debug("version resolution fell back to default", "version", Default)
	return Default
}

// findManifest locates the module manifest within the source directory.
func findManifest(sourceDir string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(sourceDir, "*.psd1"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}
