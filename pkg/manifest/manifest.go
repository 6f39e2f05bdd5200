// Package manifest reads and edits module manifest data files. A manifest is
// a line-oriented file of `Key = 'value'` entries; a field can be shipped
// disabled behind a leading # and enabled later without disturbing layout.
package manifest

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Store edits manifest files in place, line by line, so that formatting and
// comments outside the touched field survive.
type Store struct{}

func fieldPattern(field string) *regexp.Regexp {
	return regexp.MustCompile(`^(\s*)` + regexp.QuoteMeta(field) + `(\s*=\s*)(.*)$`)
}

func disabledPattern(field string) *regexp.Regexp {
	return regexp.MustCompile(`^(\s*)#\s*(` + regexp.QuoteMeta(field) + `\s*=.*)$`)
}

// ReadField returns the value of an active field, with surrounding quotes
// stripped. Absent files and absent fields both report false.
func (Store) ReadField(path, field string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	re := fieldPattern(field)
	for _, line := range strings.Split(string(data), "\n") {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return unquote(strings.TrimSpace(m[3])), true
	}
	return "", false
}

// WriteField sets the value of a field, preserving the line's indentation
// and quoting style. A field not present in the file is appended.
func (Store) WriteField(path, field, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	re := fieldPattern(field)
	replaced := false
	for i, line := range lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines[i] = m[1] + field + m[2] + requote(strings.TrimSpace(m[3]), value)
		replaced = true
		break
	}
	if !replaced {
		lines = appendField(lines, field, value)
	}

	if err := writeBack(path, lines); err != nil {
		return fmt.Errorf("writing manifest file: %w", err)
	}
	return nil
}

// EnableField uncomments a disabled field and reports whether the field now
// exists in active form. An already-active field reports true unchanged.
func (Store) EnableField(path, field string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading manifest file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	active := fieldPattern(field)
	disabled := disabledPattern(field)
	for i, line := range lines {
		if active.MatchString(line) {
			return true, nil
		}
		m := disabled.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines[i] = m[1] + m[2]
		if err := writeBack(path, lines); err != nil {
			return false, fmt.Errorf("writing manifest file: %w", err)
		}
		return true, nil
	}
	return false, nil
}

func appendField(lines []string, field, value string) []string {
	entry := fmt.Sprintf("%s = '%s'", field, value)
	// Keep a trailing newline at the end of the file if one was there.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		return append(lines[:n-1], entry, "")
	}
	return append(lines, entry)
}

func writeBack(path string, lines []string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode())
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// requote wraps the new value in the quote style of the old one.
func requote(old, value string) string {
	if len(old) >= 2 && old[0] == '"' && old[len(old)-1] == '"' {
		return `"` + value + `"`
	}
	return "'" + value + "'"
}
