package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestBuildInfo(t *testing.T) {
	if BuildTime == "" {
		t.Error("BuildTime should be initialized")
	}
	if GitCommit == "" {
		t.Error("GitCommit should be initialized")
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, "docbuild ") || !strings.Contains(s, Version) {
		t.Errorf("unexpected version string %q", s)
	}
}
