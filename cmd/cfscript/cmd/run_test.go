package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever was written to it. run.go writes through stdoutWriter, which
// goes straight to os.Stdout rather than any injectable writer, so tests
// have to swap the fd the same way the dwscript CLI tests do.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestRunScriptExecutesFileAndPrints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cfs")
	if err := os.WriteFile(path, []byte(`print("hello from disk")`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	output := captureStdout(t, func() {
		if err := runScript(runCmd, []string{path}); err != nil {
			t.Fatalf("runScript failed: %v", err)
		}
	})

	if !strings.Contains(output, "hello from disk") {
		t.Errorf("expected output to contain script's print, got %q", output)
	}
}

func TestRunScriptWithImportResolvesRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.cfs"), []byte(`let value = 7`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	mainPath := filepath.Join(dir, "main.cfs")
	mainSrc := `import value from "lib"
print(value)`
	if err := os.WriteFile(mainPath, []byte(mainSrc), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	output := captureStdout(t, func() {
		if err := runScript(runCmd, []string{mainPath}); err != nil {
			t.Fatalf("runScript failed: %v", err)
		}
	})

	if strings.TrimSpace(output) != "7" {
		t.Errorf("got %q, want \"7\"", output)
	}
}

func TestRunScriptMissingFileReturnsError(t *testing.T) {
	err := runScript(runCmd, []string{filepath.Join(t.TempDir(), "does-not-exist.cfs")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRunScriptDumpASTPrintsTreeBeforeRunning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cfs")
	if err := os.WriteFile(path, []byte(`print("ok")`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	oldDump := dumpAST
	defer func() { dumpAST = oldDump }()
	dumpAST = true

	output := captureStdout(t, func() {
		if err := runScript(runCmd, []string{path}); err != nil {
			t.Fatalf("runScript failed: %v", err)
		}
	})

	dumpAt := strings.Index(output, "ast.Program")
	if dumpAt < 0 || strings.LastIndex(output, "ok") < dumpAt {
		t.Errorf("expected both the AST dump and the script output, got %q", output)
	}
}
