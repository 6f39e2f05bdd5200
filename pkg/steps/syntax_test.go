package steps

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type fakeChecker struct {
	checked []string
	badFile string
}

func (f *fakeChecker) Check(path string) error {
	f.checked = append(f.checked, filepath.Base(path))
	if f.badFile != "" && filepath.Base(path) == f.badFile {
		return errors.New("unexpected token")
	}
	return nil
}

func TestSyntax_ChecksEverySourceFile(t *testing.T) {
	info := newTestInfo(t)
	writeSource(t, info, "a.ps1", "function A {}\n")
	writeSource(t, info, "b.psm1", "function B {}\n")
	writeSource(t, info, "notes.md", "skip me\n")

	checker := &fakeChecker{}
	if err := NewSyntaxStep(checker).Run(info); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(checker.checked) != 2 {
		t.Errorf("checked = %v, want the two script files", checker.checked)
	}
}

func TestSyntaxProbeCommand_PathTravelsViaEnvironment(t *testing.T) {
	cmd := syntaxProbeCommand("/work/src/widget.ps1")

	// A string handed to -Command must be the final argument; a trailing
	// path would be glued onto the command text instead of reaching $args.
	if last := cmd.Args[len(cmd.Args)-1]; last != syntaxProbeScript {
		t.Errorf("last argument = %q, want the probe script", last)
	}
	for _, arg := range cmd.Args {
		if strings.Contains(arg, "widget.ps1") {
			t.Errorf("file path leaked into argv: %q", arg)
		}
	}

	want := syntaxFileEnv + "=/work/src/widget.ps1"
	found := false
	for _, kv := range cmd.Env {
		if kv == want {
			found = true
		}
	}
	if !found {
		t.Errorf("environment is missing %q", want)
	}
	if !strings.Contains(syntaxProbeScript, "$env:"+syntaxFileEnv) {
		t.Errorf("probe script does not read %s", syntaxFileEnv)
	}
}

func TestSyntax_FailsOnFirstBadFile(t *testing.T) {
	info := newTestInfo(t)
	writeSource(t, info, "a.ps1", "ok\n")
	writeSource(t, info, "b.ps1", "broken {\n")

	checker := &fakeChecker{badFile: "b.ps1"}
	err := NewSyntaxStep(checker).Run(info)
	if err == nil {
		t.Fatal("expected error for the broken file")
	}
	if !strings.Contains(err.Error(), "b.ps1") {
		t.Errorf("error must name the offending file: %v", err)
	}
}
