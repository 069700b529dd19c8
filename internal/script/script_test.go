package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func newTestDriver() (*Driver, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := bytes.NewBufferString("")
	return NewDriver(out, in), out
}

func TestRunSucceedsAndPrints(t *testing.T) {
	d, out := newTestDriver()
	res := d.Run("main.cfs", t.TempDir(), `print("hello")`)
	if !res.Success() {
		t.Fatalf("expected success, got diagnostic: %s", res.Rendered(`print("hello")`))
	}
	if out.String() != "hello\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestRunReportsParseDiagnostic(t *testing.T) {
	d, _ := newTestDriver()
	src := `let x = `
	res := d.Run("bad.cfs", t.TempDir(), src)
	if res.Success() {
		t.Fatal("expected a parse failure")
	}
	rendered := res.Rendered(src)
	if rendered == "" {
		t.Error("expected a non-empty rendered diagnostic")
	}
}

func TestRunReportsRuntimeDiagnostic(t *testing.T) {
	d, _ := newTestDriver()
	src := `let x = undefined_thing`
	res := d.Run("bad.cfs", t.TempDir(), src)
	if res.Success() {
		t.Fatal("expected a runtime failure")
	}
	if res.Rendered(src) == "" {
		t.Error("expected a non-empty rendered diagnostic")
	}
}

func TestRunFileUsesContainingDirectoryForImports(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.cfs")
	if err := os.WriteFile(libPath, []byte(`let greeting = "hi from lib"`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	mainPath := filepath.Join(dir, "main.cfs")
	mainSrc := `import greeting from "lib"
print(greeting)`
	if err := os.WriteFile(mainPath, []byte(mainSrc), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	d, out := newTestDriver()
	res := d.RunFile(mainPath, mainSrc)
	if !res.Success() {
		t.Fatalf("expected success, got: %s", res.Rendered(mainSrc))
	}
	if out.String() != "hi from lib\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestImportBuiltinModuleResolvesBeforeFilesystem(t *testing.T) {
	d, _ := newTestDriver()
	src := `import sqrt from "math"
let x = sqrt(9)
print(x)`
	res := d.Run("main.cfs", t.TempDir(), src)
	if !res.Success() {
		t.Fatalf("expected success, got: %s", res.Rendered(src))
	}
}

func TestImportAppendsCFSExtensionWhenMissing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "helper.cfs"), []byte(`let value = 42`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	src := `import value from "helper"
print(value)`
	d, out := newTestDriver()
	res := d.Run("main.cfs", dir, src)
	if !res.Success() {
		t.Fatalf("expected success, got: %s", res.Rendered(src))
	}
	if out.String() != "42\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestImportExportsIncludeFunctionsAndVariables(t *testing.T) {
	dir := t.TempDir()
	lib := `let constant = "value"
fn double(n) { return n * 2 }`
	if err := os.WriteFile(filepath.Join(dir, "lib.cfs"), []byte(lib), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	src := `import constant, double from "lib"
print(constant)
print(double(21))`
	d, out := newTestDriver()
	res := d.Run("main.cfs", dir, src)
	if !res.Success() {
		t.Fatalf("expected success, got: %s", res.Rendered(src))
	}
	if out.String() != "value\n42\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestImportStarBindsEveryExportIntoNamespace(t *testing.T) {
	dir := t.TempDir()
	lib := `let a = 1
let b = 2`
	if err := os.WriteFile(filepath.Join(dir, "lib.cfs"), []byte(lib), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	src := `import * as m from "lib"
print(m.a + m.b)`
	d, out := newTestDriver()
	res := d.Run("main.cfs", dir, src)
	if !res.Success() {
		t.Fatalf("expected success, got: %s", res.Rendered(src))
	}
	if out.String() != "3\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestCircularImportIsDetected(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.cfs"), []byte(`import x from "b"`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.cfs"), []byte(`import x from "a"`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	src := `import x from "a"`
	d, _ := newTestDriver()
	res := d.Run("main.cfs", dir, src)
	if res.Success() {
		t.Fatal("expected a circular import failure")
	}
}

func TestImportCachesAModuleRunOnlyOnce(t *testing.T) {
	dir := t.TempDir()
	// lib.cfs prints as a side effect so we can observe it only runs once
	// even though two different scripts import it.
	lib := `print("loaded")
let value = 1`
	if err := os.WriteFile(filepath.Join(dir, "lib.cfs"), []byte(lib), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.cfs"), []byte(`import value from "lib"`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	src := `import value as v1 from "lib"
import value as v2 from "a"
print(v1)`

	d, out := newTestDriver()
	res := d.Run("main.cfs", dir, src)
	if !res.Success() {
		t.Fatalf("expected success, got: %s", res.Rendered(src))
	}
	count := bytes.Count(out.Bytes(), []byte("loaded\n"))
	if count != 1 {
		t.Errorf("expected lib.cfs to run exactly once, saw %d runs:\n%s", count, out.String())
	}
}
