package steps

import (
	"strings"
	"testing"

	"github.com/systemstart/modbuild/pkg/manifest"
)

func TestUpdateVersion(t *testing.T) {
	info := newTestInfo(t)
	writeSource(t, info, "Widgets.psd1", "ModuleVersion = '0.9.0.0'\n")

	if err := NewUpdateVersionStep(manifest.Store{}).Run(info); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, info.SourceManifestPath())
	if !strings.Contains(got, "ModuleVersion = '1.2.3.0'") {
		t.Errorf("source manifest not updated:\n%s", got)
	}
}

func TestUpdateVersion_EnablesCommentedField(t *testing.T) {
	info := newTestInfo(t)
	writeSource(t, info, "Widgets.psd1", "# ModuleVersion = '0.0.0.0'\nAuthor = 'x'\n")

	if err := NewUpdateVersionStep(manifest.Store{}).Run(info); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := manifest.Store{}
	got, ok := store.ReadField(info.SourceManifestPath(), "ModuleVersion")
	if !ok || got != "1.2.3.0" {
		t.Errorf("ReadField = (%q, %v), want (1.2.3.0, true)", got, ok)
	}
}

func TestUpdateVersion_MissingManifest(t *testing.T) {
	info := newTestInfo(t)

	if err := NewUpdateVersionStep(manifest.Store{}).Run(info); err == nil {
		t.Fatal("expected error without a source manifest")
	}
}
