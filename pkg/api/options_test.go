package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOptions_MissingFileUsesDefaults(t *testing.T) {
	opts, err := LoadOptions(filepath.Join(t.TempDir(), ".modbuild.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.UseCommonBuildDirectory {
		t.Error("expected useCommonBuildDirectory to default to false")
	}
	if len(opts.SourceInclude) == 0 {
		t.Error("expected default source include patterns")
	}
}

func TestLoadOptions_FromFile(t *testing.T) {
	content := `
useCommonBuildDirectory: true
codeCoverageThreshold: 0.8
dependencies: [Logging, Assertions]
dependencyStore: /var/modules
testCommand: ["pwsh", "-File", "test/run.ps1"]
`
	f := filepath.Join(t.TempDir(), ".modbuild.yaml")
	if err := os.WriteFile(f, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.UseCommonBuildDirectory {
		t.Error("expected useCommonBuildDirectory=true")
	}
	if opts.CodeCoverageThreshold != 0.8 {
		t.Errorf("expected threshold 0.8, got %v", opts.CodeCoverageThreshold)
	}
	if len(opts.Dependencies) != 2 || opts.Dependencies[0] != "Logging" {
		t.Errorf("unexpected dependencies: %v", opts.Dependencies)
	}
	if len(opts.SourceInclude) == 0 {
		t.Error("expected default source include patterns to survive partial files")
	}
}

func TestLoadOptions_EnvOverridesFile(t *testing.T) {
	content := "codeCoverageThreshold: 0.5\n"
	f := filepath.Join(t.TempDir(), ".modbuild.yaml")
	if err := os.WriteFile(f, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvCoverageThreshold, "0.9")
	t.Setenv(EnvCommonBuildDirectory, "true")

	opts, err := LoadOptions(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.CodeCoverageThreshold != 0.9 {
		t.Errorf("expected env threshold 0.9, got %v", opts.CodeCoverageThreshold)
	}
	if !opts.UseCommonBuildDirectory {
		t.Error("expected env to enable common build directory")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{
			name:    "threshold above one",
			opts:    Options{CodeCoverageThreshold: 1.5},
			wantErr: "not within [0,1]",
		},
		{
			name:    "threshold negative",
			opts:    Options{CodeCoverageThreshold: -0.1},
			wantErr: "not within [0,1]",
		},
		{
			name:    "dependencies without store",
			opts:    Options{Dependencies: []string{"Logging"}},
			wantErr: "dependencyStore is not set",
		},
		{
			name: "valid",
			opts: Options{CodeCoverageThreshold: 0.75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseReleaseType(t *testing.T) {
	tests := []struct {
		input   string
		want    ReleaseType
		wantErr bool
	}{
		{"Build", ReleaseTypeBuild, false},
		{"minor", ReleaseTypeMinor, false},
		{"MAJOR", ReleaseTypeMajor, false},
		{" build ", ReleaseTypeBuild, false},
		{"patch", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReleaseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReleaseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseReleaseType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
