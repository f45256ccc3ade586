package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "abc", RunID("abc")},
		{"Stage", KeyStage, "image", Stage("image")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Mount", KeyMount, "/repo:/doc:ro", Mount("/repo:/doc:ro")},
		{"Flag", KeyFlag, "--doc", Flag("--doc")},
		{"Image", KeyImage, "docs:1", Image("docs:1")},
		{"Program", KeyProgram, "docker", Program("docker")},
		{"URL", KeyURL, "http://localhost:8000", URL("http://localhost:8000")},
		{"Commit", KeyCommit, "deadbeef", Commit("deadbeef")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := ExitCode(3); a.Key != KeyExitCode || a.Value.Int64() != 3 {
		t.Fatalf("unexpected exit code attr %v", a)
	}
	if a := Lines(12); a.Key != KeyLines || a.Value.Int64() != 12 {
		t.Fatalf("unexpected lines attr %v", a)
	}
	if a := Duration(1500 * time.Microsecond); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("unexpected duration attr %v", a)
	}
}
