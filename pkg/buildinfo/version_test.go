package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "v1.2.3", "abc123"
	got := String()
	for _, want := range []string{"version: v1.2.3", "commit: abc123", "built: "} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	oldVersion := Version
	defer func() { Version = oldVersion }()

	Version = "v0.4.0"
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v0.4.0\n") {
		t.Errorf("Template() = %q, want cobra name placeholder and version", got)
	}
}
