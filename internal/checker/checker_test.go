package checker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/lhaig/minilang/internal/diagnostic"
	"github.com/lhaig/minilang/internal/parser"
)

func parseAndAnalyze(t *testing.T, source string) *CheckResult {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()

	if p.Diagnostics().HasErrors() {
		t.Fatalf("Parser errors: %s", p.Diagnostics().Format("test"))
	}

	return CheckWithResult(prog)
}

func parseAndCheck(t *testing.T, source string) *diagnostic.Diagnostics {
	t.Helper()
	return parseAndAnalyze(t, source).Diagnostics
}

func expectClean(t *testing.T, diags *diagnostic.Diagnostics) {
	t.Helper()
	if diags.Count() != 0 {
		t.Errorf("expected no diagnostics, got:\n%s", diags.Format("test"))
	}
}

func expectKind(t *testing.T, diags *diagnostic.Diagnostics, kind diagnostic.Kind, count int) {
	t.Helper()
	if got := diags.CountKind(kind); got != count {
		t.Errorf("expected %d %s diagnostics, got %d:\n%s", count, kind, got, diags.Format("test"))
	}
}

func expectMessage(t *testing.T, diags *diagnostic.Diagnostics, line int, substr string) {
	t.Helper()
	for _, d := range diags.All() {
		if d.Line == line && strings.Contains(d.Message, substr) {
			return
		}
	}
	t.Errorf("expected %q on line %d, got:\n%s", substr, line, diags.Format("test"))
}

func TestValidProgram(t *testing.T) {
	source := `const double rate = 1.5;
int counter;

int square(int x) {
    return x * x;
}

float scale(float v, double d) {
    return v * 2;
}

void main() {
    int a = square(3);
    float f = scale(a, rate);
    string s = "n=" + a;
    if (a > 2 && !(f < 1.0)) {
        counter = counter + 1;
    } else {
        counter = 0;
    }
    while (counter < 10) {
        counter = counter + 1;
    }
    for (int i = 0; i < 3; i = i + 1) {
        a = a + i;
    }
    return;
}`
	expectClean(t, parseAndCheck(t, source))
}

func TestConstAssignment(t *testing.T) {
	source := `const int x = 5;
void main() {
    x = 6;
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.ConstAssignment, 1)
	expectKind(t, diags, diagnostic.TypeMismatch, 0)
	if diags.Count() != 1 {
		t.Errorf("expected exactly one diagnostic, got:\n%s", diags.Format("test"))
	}
	expectMessage(t, diags, 3, "illegal assignment to constant 'x'")
}

func TestConstAssignmentStillTypeChecks(t *testing.T) {
	source := `const int x = 5;
void main() {
    x = "six";
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.ConstAssignment, 1)
	expectKind(t, diags, diagnostic.TypeMismatch, 1)
	expectMessage(t, diags, 3, "cannot assign string to int")
}

func TestArityMismatch(t *testing.T) {
	source := `int foo(int a) {
    return a;
}
void main() {
    foo(1, 2);
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.ArityMismatch, 1)
	expectKind(t, diags, diagnostic.TypeMismatch, 0)
	expectMessage(t, diags, 5, "wrong number of arguments to 'foo': expected 1, got 2")
}

func TestArityMismatchStillTypesArguments(t *testing.T) {
	source := `int foo(int a) {
    return a;
}
void main() {
    foo(missing, 2);
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.ArityMismatch, 1)
	expectKind(t, diags, diagnostic.UndeclaredIdentifier, 1)
}

func TestDeclarationWidening(t *testing.T) {
	tests := []struct {
		name       string
		decl       string
		mismatches int
	}{
		{"int into float", "float f = 3;", 0},
		{"int into double", "double d = 3;", 0},
		{"float into double", "double d = 3.5;", 0},
		{"float into int", "int i = 3.5;", 1},
		{"int into string", "string s = 3;", 1},
		{"string into int", `int i = "3";`, 1},
		{"no initializer", "string s;", 0},
		{"mixed arithmetic narrows", "int i = 1 + 2.0;", 1},
		{"float product widens", "double d = 2.0 * 3;", 0},
		{"comparison is int", "int r = 1.5 < 2;", 0},
		{"string concatenation", `string s = "a" + 1.5;`, 0},
		{"string product is unknown", `float z = "a" * 2;`, 1},
		{"not is int", "int n = !1.5;", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := parseAndCheck(t, "void main() {\n    "+tt.decl+"\n}")
			expectKind(t, diags, diagnostic.TypeMismatch, tt.mismatches)
			if diags.Count() != tt.mismatches {
				t.Errorf("unexpected extra diagnostics:\n%s", diags.Format("test"))
			}
		})
	}
}

func TestDeclTypeMismatchMessage(t *testing.T) {
	diags := parseAndCheck(t, "int i = 3.5;\nvoid main() {}")
	expectMessage(t, diags, 1, "type mismatch for 'i': expected int, got float")
}

func TestMissingMain(t *testing.T) {
	source := `int helper() {
    return 1;
}
`
	res := parseAndAnalyze(t, source)
	expectKind(t, res.Diagnostics, diagnostic.MissingMain, 1)
	expectKind(t, res.Diagnostics, diagnostic.DuplicateMain, 0)
	for _, fn := range res.Functions {
		if fn.Classification == ClassMain {
			t.Errorf("expected no MAIN function, got %s", fn.Name)
		}
	}
}

func TestDuplicateMainDeclaration(t *testing.T) {
	source := `void main() {}
void main() {}`
	res := parseAndAnalyze(t, source)
	expectKind(t, res.Diagnostics, diagnostic.DuplicateDeclaration, 1)
	expectKind(t, res.Diagnostics, diagnostic.MissingMain, 0)
	expectKind(t, res.Diagnostics, diagnostic.DuplicateMain, 0)
	expectMessage(t, res.Diagnostics, 2, "function 'main' is already defined")
	if len(res.Functions) != 1 {
		t.Errorf("expected one function report, got %d", len(res.Functions))
	}
}

func TestMissingReturn(t *testing.T) {
	source := `void main() {}

int compute(int a) {
    int b = a + 1;
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.MissingReturn, 1)
	expectMessage(t, diags, 3, "function 'compute' (type int) does not return a value")
	if diags.Count() != 1 {
		t.Errorf("expected exactly one diagnostic, got:\n%s", diags.Format("test"))
	}
}

func TestReturnInBranchCounts(t *testing.T) {
	source := `int sign(int a) {
    if (a < 0) {
        return 0;
    }
}
void main() {}`
	expectClean(t, parseAndCheck(t, source))
}

func TestReturnMismatch(t *testing.T) {
	source := `int a() {
    return "s";
}
void b() {
    return 1;
}
int c() {
    return;
}
double d() {
    return 1;
}
void main() {}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.TypeMismatch, 3)
	expectKind(t, diags, diagnostic.MissingReturn, 0)
	expectMessage(t, diags, 2, "invalid return: function 'a' requires int, returned string")
	expectMessage(t, diags, 5, "function 'b' requires void, returned int")
	expectMessage(t, diags, 8, "function 'c' requires int, returned void")
}

func TestForwardReference(t *testing.T) {
	source := `void a() {
    b();
}
void b() {
    return;
}
void main() {
    a();
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.UndeclaredFunction, 0)
	expectClean(t, diags)
}

func TestClassification(t *testing.T) {
	source := `int fact(int n) {
    if (n <= 1) {
        return 1;
    }
    return n * fact(n - 1);
}
int twice(int n) {
    return n + n;
}
void main() {
    fact(3);
}`
	res := parseAndAnalyze(t, source)
	expectClean(t, res.Diagnostics)

	got := make(map[string]Classification)
	for _, fn := range res.Functions {
		got[fn.Name] = fn.Classification
	}
	want := map[string]Classification{
		"fact":  ClassRecursive,
		"twice": ClassIterative,
		"main":  ClassMain,
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestRedeclarationKeepsFirstSymbol(t *testing.T) {
	source := `void main() {
    int x = 1;
    string x = "a";
    int y = x;
}`
	res := parseAndAnalyze(t, source)
	expectKind(t, res.Diagnostics, diagnostic.DuplicateDeclaration, 1)
	expectKind(t, res.Diagnostics, diagnostic.TypeMismatch, 0)
	expectMessage(t, res.Diagnostics, 3, "local variable 'x' is already defined")

	locals := res.Functions[0].Locals
	if len(locals) != 2 || locals[0].Name != "x" || locals[0].Type != Int || locals[1].Name != "y" {
		t.Errorf("expected locals [int x, int y], got %v", symbolStrings(locals))
	}
}

func TestGlobalRedeclaration(t *testing.T) {
	source := `int g = 1;
float g = 2.0;
void main() {}`
	res := parseAndAnalyze(t, source)
	expectMessage(t, res.Diagnostics, 2, "global variable 'g' is already defined")
	if len(res.Globals) != 1 || res.Globals[0].Type != Int {
		t.Errorf("expected the first global to remain, got %v", symbolStrings(res.Globals))
	}
}

func TestShadowingAcrossFrames(t *testing.T) {
	source := `int g = 1;
int f(int n) {
    if (n > 0) {
        string n = "inner";
    }
    for (int n = 0; n < 2; n = n + 1) {
        float g = 2.5;
    }
    return n;
}
void main() {}`
	expectClean(t, parseAndCheck(t, source))
}

func TestLocalCannotRedeclareParameter(t *testing.T) {
	source := `int f(int n) {
    int n = 2;
    return n;
}
void main() {}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.DuplicateDeclaration, 1)
	expectMessage(t, diags, 2, "local variable 'n' is already defined")
}

func TestDuplicateParameter(t *testing.T) {
	source := `int f(int a, float a) {
    return a;
}
void main() {
    f(1, 2);
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.DuplicateDeclaration, 1)
	expectKind(t, diags, diagnostic.ArityMismatch, 0)
	expectMessage(t, diags, 1, "parameter 'a' is duplicated")
}

func TestDuplicateFunction(t *testing.T) {
	source := `int f() {
    return 1;
}
string f(int a) {
    return missing;
}
void main() {
    int r = f();
}`
	res := parseAndAnalyze(t, source)
	diags := res.Diagnostics
	expectMessage(t, diags, 4, "function 'f' is already defined")
	expectMessage(t, diags, 5, "variable 'missing' is not declared")
	expectKind(t, diags, diagnostic.ArityMismatch, 0)

	names := make([]string, 0, len(res.Functions))
	for _, fn := range res.Functions {
		names = append(names, fmt.Sprintf("%s %s", fn.ReturnType, fn.Name))
	}
	if diff := deep.Equal(names, []string{"int f", "void main"}); diff != nil {
		t.Error(diff)
	}
}

func TestUndeclaredNames(t *testing.T) {
	source := `void main() {
    int a = b;
    c = 1;
    int r = nothing(a, d);
}`
	diags := parseAndCheck(t, source)
	expectMessage(t, diags, 2, "variable 'b' is not declared")
	expectMessage(t, diags, 3, "variable 'c' is not declared")
	expectMessage(t, diags, 4, "call to undefined function 'nothing'")
	expectMessage(t, diags, 4, "variable 'd' is not declared")
	expectKind(t, diags, diagnostic.UndeclaredIdentifier, 3)
	expectKind(t, diags, diagnostic.UndeclaredFunction, 1)
	// unknown never validates: both initializers are mismatches too
	expectKind(t, diags, diagnostic.TypeMismatch, 2)
}

func TestIllegalMainCall(t *testing.T) {
	source := `void helper() {
    main();
}
void main() {
    helper();
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.IllegalMainCall, 1)
	expectMessage(t, diags, 2, "function 'main' cannot be called")
}

func TestArgumentTypeMismatch(t *testing.T) {
	source := `void take(int a, string b, double c) {}
void main() {
    take(1.5, "ok", 2);
    take(1, 2, "x");
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.TypeMismatch, 3)
	expectMessage(t, diags, 3, "argument 1 to 'take' is incompatible: expected int, got float")
	expectMessage(t, diags, 4, "argument 2 to 'take' is incompatible: expected string, got int")
	expectMessage(t, diags, 4, "argument 3 to 'take' is incompatible: expected double, got string")
}

func TestBlockScopeEnds(t *testing.T) {
	source := `void main() {
    if (1) {
        int t = 1;
    }
    t = 2;
    for (int i = 0; i < 1; i = i + 1) {}
    i = 3;
}`
	diags := parseAndCheck(t, source)
	expectMessage(t, diags, 5, "variable 't' is not declared")
	expectMessage(t, diags, 7, "variable 'i' is not declared")
	expectKind(t, diags, diagnostic.UndeclaredIdentifier, 2)
}

func TestGlobalVisibleOnlyAfterDeclaration(t *testing.T) {
	source := `void main() {
    late = 1;
}
int late;`
	diags := parseAndCheck(t, source)
	expectMessage(t, diags, 2, "variable 'late' is not declared")
}

func TestInitializerCannotSeeItself(t *testing.T) {
	diags := parseAndCheck(t, "void main() {\n    int x = x + 1;\n}")
	expectMessage(t, diags, 2, "variable 'x' is not declared")
}

func TestNestedAssignmentType(t *testing.T) {
	source := `void main() {
    int a;
    int b;
    a = b = 3;
    string s = a = 4;
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.TypeMismatch, 1)
	expectMessage(t, diags, 5, "type mismatch for 's': expected string, got int")
}

func TestDiagnosticsAreDeduplicated(t *testing.T) {
	source := `void main() {
    y = 1; y = 2;
    y = 3;
}`
	diags := parseAndCheck(t, source)
	expectKind(t, diags, diagnostic.UndeclaredIdentifier, 2)
}

func TestDiagnosticOrder(t *testing.T) {
	source := `void main() {
    int a = "s";
    b = 1;
    undefinedCall();
}`
	diags := parseAndCheck(t, source)
	var kinds []diagnostic.Kind
	for _, d := range diags.All() {
		kinds = append(kinds, d.Kind)
	}
	want := []diagnostic.Kind{diagnostic.TypeMismatch, diagnostic.UndeclaredIdentifier, diagnostic.UndeclaredFunction}
	if diff := deep.Equal(kinds, want); diff != nil {
		t.Error(diff)
	}
}

func symbolStrings(syms []*Symbol) []string {
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		prefix := ""
		if s.Const {
			prefix = "const "
		}
		out = append(out, fmt.Sprintf("%s%s %s = %s", prefix, s.Type, s.Name, s.InitText))
	}
	return out
}

func TestReportContents(t *testing.T) {
	source := `int g = 1;
const string name = "mini";
float h;
int fact(int n) {
    if (n <= 1) {
        return 1;
    }
    return n * fact(n - 1);
}
void main() {
    int i = 0;
    while (i < 3) {
        int sq = i * i;
        i = i + 1;
    }
    for (int k = 0; k < 2; k = k + 1) {
        g = fact(k);
    }
}`
	res := parseAndAnalyze(t, source)
	expectClean(t, res.Diagnostics)

	wantGlobals := []string{"int g = 1", `const string name = "mini"`, "float h = null"}
	if diff := deep.Equal(symbolStrings(res.Globals), wantGlobals); diff != nil {
		t.Errorf("globals: %v", diff)
	}

	if len(res.Functions) != 2 {
		t.Fatalf("expected 2 function reports, got %d", len(res.Functions))
	}

	fact := res.Functions[0]
	if fact.Name != "fact" || fact.ReturnType != Int || fact.Classification != ClassRecursive {
		t.Errorf("unexpected fact header: %s %s %s", fact.ReturnType, fact.Name, fact.Classification)
	}
	if diff := deep.Equal(symbolStrings(fact.Parameters), []string{"int n = "}); diff != nil {
		t.Errorf("fact params: %v", diff)
	}
	if len(fact.Locals) != 0 {
		t.Errorf("expected no locals in fact, got %v", symbolStrings(fact.Locals))
	}
	if diff := deep.Equal(fact.ControlStructures, []ControlRecord{{Kind: ControlIf, StartLine: 5, EndLine: 7}}); diff != nil {
		t.Errorf("fact controls: %v", diff)
	}

	main := res.Functions[1]
	if main.Classification != ClassMain || main.ReturnType != Void {
		t.Errorf("unexpected main header: %s %s", main.ReturnType, main.Classification)
	}
	wantLocals := []string{"int i = 0", "int sq = i * i", "int k = 0"}
	if diff := deep.Equal(symbolStrings(main.Locals), wantLocals); diff != nil {
		t.Errorf("main locals: %v", diff)
	}
	wantControls := []ControlRecord{
		{Kind: ControlWhile, StartLine: 12, EndLine: 15},
		{Kind: ControlFor, StartLine: 16, EndLine: 18},
	}
	if diff := deep.Equal(main.ControlStructures, wantControls); diff != nil {
		t.Errorf("main controls: %v", diff)
	}
}

func TestDetachedDuplicateKeepsFirstSignature(t *testing.T) {
	source := `int f(int a) {
    return a;
}
void f() {
    f(1);
}
void main() {
    f(2);
}`
	res := parseAndAnalyze(t, source)
	expectKind(t, res.Diagnostics, diagnostic.DuplicateDeclaration, 1)
	expectKind(t, res.Diagnostics, diagnostic.ArityMismatch, 0)
	if res.Functions[0].Classification != ClassIterative {
		t.Errorf("the duplicate body must not mark the registered f recursive")
	}
}
