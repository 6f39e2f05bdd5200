package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding .modbuild.yaml values.
const (
	EnvCommonBuildDirectory = "MODBUILD_COMMON_BUILD_DIRECTORY"
	EnvCoverageThreshold    = "MODBUILD_COVERAGE_THRESHOLD"
	EnvDependencyStore      = "MODBUILD_DEPENDENCY_STORE"
)

// LoadOptions reads an options file, applies environment overrides, and
// validates the result. A missing file is not an error: defaults are used.
func LoadOptions(filename string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(filename)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return opts, fmt.Errorf("reading options file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("parsing options file: %w", err)
		}
		if len(opts.SourceInclude) == 0 {
			opts.SourceInclude = DefaultOptions().SourceInclude
		}
	}

	if err := opts.ApplyEnv(); err != nil {
		return opts, err
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// ApplyEnv overrides option values from MODBUILD_* environment variables.
func (o *Options) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvCommonBuildDirectory); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvCommonBuildDirectory, err)
		}
		o.UseCommonBuildDirectory = b
	}
	if v, ok := os.LookupEnv(EnvCoverageThreshold); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvCoverageThreshold, err)
		}
		o.CodeCoverageThreshold = f
	}
	if v, ok := os.LookupEnv(EnvDependencyStore); ok {
		o.DependencyStore = v
	}
	return nil
}

// Validate checks the options for out-of-range values.
func (o Options) Validate() error {
	if o.CodeCoverageThreshold < 0 || o.CodeCoverageThreshold > 1 {
		return fmt.Errorf("codeCoverageThreshold %v is not within [0,1]", o.CodeCoverageThreshold)
	}
	if len(o.Dependencies) > 0 && o.DependencyStore == "" {
		return fmt.Errorf("dependencies configured but dependencyStore is not set")
	}
	return nil
}

// ParseReleaseType converts a command-line release type argument,
// case-insensitively, into a ReleaseType.
func ParseReleaseType(s string) (ReleaseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "build":
		return ReleaseTypeBuild, nil
	case "minor":
		return ReleaseTypeMinor, nil
	case "major":
		return ReleaseTypeMajor, nil
	default:
		return "", fmt.Errorf("unknown release type %q (valid: Build, Minor, Major)", s)
	}
}
