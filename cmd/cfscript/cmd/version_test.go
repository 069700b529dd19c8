package cmd

import (
	"strings"
	"testing"
)

func TestVersionCommandPrintsVersionAndCommit(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate }()
	Version, GitCommit, BuildDate = "1.2.3", "deadbeef", "2026-07-31"

	output := captureStdout(t, func() {
		if err := versionCmd.RunE(versionCmd, nil); err != nil {
			t.Fatalf("version command failed: %v", err)
		}
	})

	if !strings.Contains(output, "1.2.3") {
		t.Errorf("expected version in output, got %q", output)
	}
	if !strings.Contains(output, "deadbeef") {
		t.Errorf("expected commit in output, got %q", output)
	}
}
