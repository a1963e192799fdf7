package compiler

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/lhaig/minilang/internal/ast"
	"github.com/lhaig/minilang/internal/checker"
	"github.com/lhaig/minilang/internal/diagnostic"
	"github.com/lhaig/minilang/internal/formatter"
	"github.com/lhaig/minilang/internal/lexer"
	"github.com/lhaig/minilang/internal/linter"
	"github.com/lhaig/minilang/internal/parser"
)

// Options configures a pipeline run
type Options struct {
	// Lang selects the language of rendered reports and diagnostics.
	// The zero value means English.
	Lang language.Tag
	// Logger receives debug traces of each stage. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) lang() language.Tag {
	if o.Lang == language.Und {
		return language.English
	}
	return o.Lang
}

// Result holds the output of an analysis run
type Result struct {
	Tokens    []lexer.Token
	Program   *ast.Program
	Globals   []*checker.Symbol
	Functions []*checker.FunctionReport

	// ParseDiagnostics holds lexical then syntax errors
	ParseDiagnostics *diagnostic.Diagnostics
	// SemanticDiagnostics holds the checker's errors
	SemanticDiagnostics *diagnostic.Diagnostics
	// Diagnostics is both of the above, parse diagnostics first
	Diagnostics *diagnostic.Diagnostics
}

// HasErrors reports whether any stage produced an error
func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Analyze runs lex -> parse -> check. The checker runs even when parsing
// failed, on whatever partial tree the parser recovered.
func Analyze(source string, opts Options) *Result {
	log := opts.logger()

	p := parser.New(source)
	log.Debug("lexed source", "tokens", len(p.Tokens()), "bytes", len(source))

	prog := p.Parse()
	log.Debug("parsed program",
		"decls", len(prog.Decls),
		"lexical", p.Diagnostics().CountKind(diagnostic.Lexical),
		"syntax", p.Diagnostics().CountKind(diagnostic.Syntax))

	checkResult := checker.CheckWithResult(prog)
	log.Debug("checked program",
		"globals", len(checkResult.Globals),
		"functions", len(checkResult.Functions),
		"errors", checkResult.Diagnostics.ErrorCount())

	all := diagnostic.New()
	all.Append(p.Diagnostics())
	all.Append(checkResult.Diagnostics)

	return &Result{
		Tokens:              p.Tokens(),
		Program:             prog,
		Globals:             checkResult.Globals,
		Functions:           checkResult.Functions,
		ParseDiagnostics:    p.Diagnostics(),
		SemanticDiagnostics: checkResult.Diagnostics,
		Diagnostics:         all,
	}
}

// Check runs parse + check and returns every diagnostic
func Check(source string) *diagnostic.Diagnostics {
	return Analyze(source, Options{}).Diagnostics
}

// Lint runs the lint rules. Parse errors stop it before any rule runs and
// are returned instead.
func Lint(source string, opts Options) *diagnostic.Diagnostics {
	log := opts.logger()

	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		log.Debug("lint skipped", "parse_errors", p.Diagnostics().ErrorCount())
		return p.Diagnostics()
	}

	diag := linter.Lint(prog)
	log.Debug("linted program", "warnings", diag.WarningCount())
	return diag
}

// Format pretty-prints source. Source that does not parse is returned
// unchanged together with the parse diagnostics.
func Format(source string) (string, *diagnostic.Diagnostics) {
	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		return source, p.Diagnostics()
	}
	return formatter.Format(prog), p.Diagnostics()
}

// ParseLang maps a -lang value such as "en" or "ro" to a supported tag.
// The empty string selects English.
func ParseLang(s string) (language.Tag, error) {
	if s == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", s, err)
	}
	base, _ := tag.Base()
	for _, supported := range diagnostic.Languages {
		if b, _ := supported.Base(); b == base {
			return supported, nil
		}
	}
	return language.Und, fmt.Errorf("unsupported language %q (supported: %s)", s, supportedNames())
}

func supportedNames() string {
	names := make([]string, len(diagnostic.Languages))
	for i, tag := range diagnostic.Languages {
		names[i] = tag.String()
	}
	return strings.Join(names, ", ")
}

// FormatDiagnostics renders diagnostics one per line as
// severity[file:line:col]: message, localized to opts.Lang.
func FormatDiagnostics(d *diagnostic.Diagnostics, filename string, opts Options) string {
	p := diagnostic.Printer(opts.lang())
	var sb strings.Builder
	for i, item := range d.All() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s[%s:%d:%d]: %s", item.Severity, filename, item.Line, item.Column, item.Localize(p))
	}
	return sb.String()
}
