package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"golang.org/x/text/language"

	"github.com/lhaig/minilang/internal/checker"
	"github.com/lhaig/minilang/internal/diagnostic"
	"github.com/lhaig/minilang/internal/lexer"
	"github.com/lhaig/minilang/internal/parser"
)

const sample = `int g = 1;
float h;
int fact(int n) {
    if (n <= 1) {
        return 1;
    }
    return n * fact(n - 1);
}
void main() {
    int i = fact(3);
}`

func analyze(t *testing.T, source string) (*parser.Parser, *checker.CheckResult) {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()
	return p, checker.CheckWithResult(prog)
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestGlobalVars(t *testing.T) {
	_, res := analyze(t, sample)

	var en, ro bytes.Buffer
	if err := New(language.English).GlobalVars(&en, res.Globals); err != nil {
		t.Fatal(err)
	}
	if err := New(language.Romanian).GlobalVars(&ro, res.Globals); err != nil {
		t.Fatal(err)
	}

	if diff := deep.Equal(lines(&en), []string{
		"Variable: g | Type: int | Init: 1",
		"Variable: h | Type: float | Init: null",
	}); diff != nil {
		t.Errorf("english: %v", diff)
	}
	if diff := deep.Equal(lines(&ro), []string{
		"Variabila: g | Tip: int | Init: 1",
		"Variabila: h | Tip: float | Init: null",
	}); diff != nil {
		t.Errorf("romanian: %v", diff)
	}
}

func TestFunctions(t *testing.T) {
	_, res := analyze(t, sample)

	var buf bytes.Buffer
	if err := New(language.Romanian).Functions(&buf, res.Functions); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"Nume: fact",
		"   Tip Functie: RECURSIVA",
		"   Returnat: int",
		"   Parametri: [int n]",
		"   Variabile Locale:",
		"      (niciuna)",
		"   Structuri Control:",
		"      <if, 4, 6>",
		"--------------------",
		"Nume: main",
		"   Tip Functie: MAIN",
		"   Returnat: void",
		"   Parametri: []",
		"   Variabile Locale:",
		"      int i = fact(3)",
		"   Structuri Control:",
		"      (niciuna)",
		"--------------------",
	}
	if diff := deep.Equal(lines(&buf), want); diff != nil {
		t.Error(diff)
	}
}

func TestFunctionsEnglishLabels(t *testing.T) {
	_, res := analyze(t, sample)

	var buf bytes.Buffer
	if err := New(language.English).Functions(&buf, res.Functions); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Name: fact", "   Function kind: RECURSIVE", "   Control structures:", "      (none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestTokens(t *testing.T) {
	toks := lexer.New("int x = \"a\";").Tokenize()

	var buf bytes.Buffer
	if err := New(language.English).Tokens(&buf, toks); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"<INT_TYPE, int, 1>",
		"<IDENT, x, 1>",
		"<ASSIGN, =, 1>",
		`<STRING_LIT, "a", 1>`,
		"<SEMICOLON, ;, 1>",
	}
	if diff := deep.Equal(lines(&buf), want); diff != nil {
		t.Error(diff)
	}
}

func TestErrorsNone(t *testing.T) {
	p, res := analyze(t, sample)

	var en, ro bytes.Buffer
	if err := New(language.English).Errors(&en, p.Diagnostics(), res.Diagnostics); err != nil {
		t.Fatal(err)
	}
	if err := New(language.Romanian).Errors(&ro, p.Diagnostics(), res.Diagnostics); err != nil {
		t.Fatal(err)
	}
	if en.String() != "No errors\n" {
		t.Errorf("unexpected english output %q", en.String())
	}
	if ro.String() != "Fara erori\n" {
		t.Errorf("unexpected romanian output %q", ro.String())
	}
}

func TestErrorsSections(t *testing.T) {
	source := `void main() {
    int x = 5
    y = 2;
}`
	p, res := analyze(t, source)

	var buf bytes.Buffer
	if err := New(language.Romanian).Errors(&buf, p.Diagnostics(), res.Diagnostics); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"=== Erori Lexicale si Sintactice ===",
		"Eroare sintactica la linia 3:5 - Asteptat SEMICOLON, primit IDENT",
		"",
		"=== Erori Semantice ===",
		"Eroare Semantica la linia 3: Variabila 'y' nu este declarata.",
	}
	if diff := deep.Equal(lines(&buf), want); diff != nil {
		t.Error(diff)
	}
}

func TestErrorsSemanticOnly(t *testing.T) {
	_, res := analyze(t, "int f() {}")

	var buf bytes.Buffer
	if err := New(language.English).Errors(&buf, nil, res.Diagnostics); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"=== Semantic Errors ===",
		"Semantic error at line 1: function 'f' (type int) does not return a value",
		"Semantic error at line 1: program has no 'main' function",
	}
	if diff := deep.Equal(lines(&buf), want); diff != nil {
		t.Error(diff)
	}
}

func TestDiagnosticLexical(t *testing.T) {
	d := diagnostic.New()
	d.Errorf(diagnostic.Lexical, 2, 7, diagnostic.MsgIllegalChar, "@")

	got := New(language.English).Diagnostic(d.All()[0])
	if got != "Lexical error at line 2:7 - unexpected character '@'" {
		t.Errorf("unexpected rendering %q", got)
	}
}
