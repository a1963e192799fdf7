package compiler

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"golang.org/x/text/language"
)

func TestWriteReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := Analyze(validProgram, Options{})

	written, err := WriteReports(res, dir, Options{})
	if err != nil {
		t.Fatalf("WriteReports failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "tokens.txt"),
		filepath.Join(dir, "global_vars.txt"),
		filepath.Join(dir, "functions.txt"),
		filepath.Join(dir, "errors.txt"),
	}
	if diff := deep.Equal(written, want); diff != nil {
		t.Fatal(diff)
	}

	globals, err := os.ReadFile(filepath.Join(dir, "global_vars.txt"))
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(globals) != "Variable: limit | Type: int | Init: 3\n" {
		t.Errorf("unexpected global_vars.txt:\n%s", globals)
	}

	errs, err := os.ReadFile(filepath.Join(dir, "errors.txt"))
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(errs) != "No errors\n" {
		t.Errorf("unexpected errors.txt:\n%s", errs)
	}

	tokens, err := os.ReadFile(filepath.Join(dir, "tokens.txt"))
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.HasPrefix(string(tokens), "<CONST, const, 1>\n<INT_TYPE, int, 1>\n") {
		t.Errorf("unexpected tokens.txt:\n%s", tokens)
	}
}

func TestWriteReportsRomanian(t *testing.T) {
	dir := t.TempDir()
	res := Analyze("int f() { }", Options{})

	if _, err := WriteReports(res, dir, Options{Lang: language.Romanian}); err != nil {
		t.Fatalf("WriteReports failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "errors.txt"))
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	want := "=== Erori Semantice ===\n" +
		"Eroare Semantica la linia 1: Functia 'f' (tip int) nu returneaza o valoare.\n" +
		"Eroare Semantica la linia 1: Programul nu contine functia 'main'.\n"
	if string(content) != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, content)
	}

	functions, err := os.ReadFile(filepath.Join(dir, "functions.txt"))
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.Contains(string(functions), "Tip Functie: ITERATIVA") {
		t.Errorf("expected Romanian classification, got:\n%s", functions)
	}
}

func TestWriteReportUnknownName(t *testing.T) {
	res := Analyze(validProgram, Options{})
	_, err := WriteReport(res, "bytecode", t.TempDir(), Options{})
	if err == nil {
		t.Fatal("Expected error for unknown report")
	}
	if !strings.Contains(err.Error(), "unknown report") {
		t.Errorf("Expected 'unknown report' error, got: %v", err)
	}
}

func TestWriteReportsUnwritableDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	res := Analyze(validProgram, Options{})
	if _, err := WriteReports(res, filepath.Join(blocker, "out"), Options{}); err == nil {
		t.Fatal("Expected error when output dir is below a regular file")
	}
}

func TestRenderReport(t *testing.T) {
	res := Analyze(validProgram, Options{})

	var buf bytes.Buffer
	if err := RenderReport(res, "functions", &buf, Options{}); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Name: square") {
		t.Errorf("expected square in functions report, got:\n%s", buf.String())
	}
}

func TestReportNames(t *testing.T) {
	if diff := deep.Equal(ReportNames(), []string{"tokens", "globals", "functions", "errors"}); diff != nil {
		t.Error(diff)
	}
}
