// Package report renders analysis results as the plain-text report files:
// tokens, global variables, functions and errors.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lhaig/minilang/internal/checker"
	"github.com/lhaig/minilang/internal/diagnostic"
	"github.com/lhaig/minilang/internal/lexer"
)

// Report labels. Each one is its own catalog key.
const (
	labelGlobal        = "Variable: %s | Type: %s | Init: %s"
	labelName          = "Name: %s"
	labelKind          = "   Function kind: %s"
	labelReturns       = "   Returns: %s"
	labelParams        = "   Parameters: [%s]"
	labelLocals        = "   Local variables:"
	labelControls      = "   Control structures:"
	labelNone          = "(none)"
	labelNoErrors      = "No errors"
	labelParseSection  = "=== Lexical and Syntax Errors ==="
	labelSemaSection   = "=== Semantic Errors ==="
	labelLexicalError  = "Lexical error at line %d:%d - %s"
	labelSyntaxError   = "Syntax error at line %d:%d - %s"
	labelSemanticError = "Semantic error at line %d: %s"
	labelRecursive     = "RECURSIVE"
	labelIterative     = "ITERATIVE"
	labelMain          = "MAIN"
)

var romanian = map[string]string{
	labelGlobal:        "Variabila: %s | Tip: %s | Init: %s",
	labelName:          "Nume: %s",
	labelKind:          "   Tip Functie: %s",
	labelReturns:       "   Returnat: %s",
	labelParams:        "   Parametri: [%s]",
	labelLocals:        "   Variabile Locale:",
	labelControls:      "   Structuri Control:",
	labelNone:          "(niciuna)",
	labelNoErrors:      "Fara erori",
	labelParseSection:  "=== Erori Lexicale si Sintactice ===",
	labelSemaSection:   "=== Erori Semantice ===",
	labelLexicalError:  "Eroare lexicala la linia %d:%d - %s",
	labelSyntaxError:   "Eroare sintactica la linia %d:%d - %s",
	labelSemanticError: "Eroare Semantica la linia %d: %s",
	labelRecursive:     "RECURSIVA",
	labelIterative:     "ITERATIVA",
	labelMain:          "MAIN",
}

func init() {
	english := make(map[string]string, len(romanian))
	for key := range romanian {
		english[key] = key
	}
	diagnostic.Register(language.English, english)
	diagnostic.Register(language.Romanian, romanian)
}

const separator = "--------------------"

// Renderer writes reports in one language
type Renderer struct {
	p *message.Printer
}

// New creates a renderer for tag
func New(tag language.Tag) *Renderer {
	return &Renderer{p: diagnostic.Printer(tag)}
}

// errWriter remembers the first write error so render code can stay linear
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) line(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s+"\n")
}

// Tokens writes one <TYPE, text, line> entry per token. EOF is omitted.
func (r *Renderer) Tokens(w io.Writer, toks []lexer.Token) error {
	ew := &errWriter{w: w}
	for _, tok := range toks {
		if tok.Type == lexer.EOF {
			continue
		}
		ew.line(tok.String())
	}
	return ew.err
}

// GlobalVars writes one line per global variable
func (r *Renderer) GlobalVars(w io.Writer, vars []*checker.Symbol) error {
	ew := &errWriter{w: w}
	for _, v := range vars {
		ew.line(r.p.Sprintf(labelGlobal, v.Name, v.Type, v.InitText))
	}
	return ew.err
}

func (r *Renderer) classification(c checker.Classification) string {
	switch c {
	case checker.ClassMain:
		return r.p.Sprintf(labelMain)
	case checker.ClassRecursive:
		return r.p.Sprintf(labelRecursive)
	default:
		return r.p.Sprintf(labelIterative)
	}
}

// Functions writes a block per function, each closed by a dashed separator
func (r *Renderer) Functions(w io.Writer, fns []*checker.FunctionReport) error {
	ew := &errWriter{w: w}
	none := "      " + r.p.Sprintf(labelNone)

	for _, fn := range fns {
		ew.line(r.p.Sprintf(labelName, fn.Name))
		ew.line(r.p.Sprintf(labelKind, r.classification(fn.Classification)))
		ew.line(r.p.Sprintf(labelReturns, fn.ReturnType))

		params := make([]string, 0, len(fn.Parameters))
		for _, p := range fn.Parameters {
			params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
		}
		ew.line(r.p.Sprintf(labelParams, strings.Join(params, ", ")))

		ew.line(r.p.Sprintf(labelLocals))
		if len(fn.Locals) == 0 {
			ew.line(none)
		}
		for _, l := range fn.Locals {
			ew.line(fmt.Sprintf("      %s %s = %s", l.Type, l.Name, l.InitText))
		}

		ew.line(r.p.Sprintf(labelControls))
		if len(fn.ControlStructures) == 0 {
			ew.line(none)
		}
		for _, c := range fn.ControlStructures {
			ew.line(fmt.Sprintf("      <%s, %d, %d>", c.Kind, c.StartLine, c.EndLine))
		}

		ew.line(separator)
	}
	return ew.err
}

// Errors writes the lexical and syntax section followed by the semantic
// section. Either diagnostics value may be nil.
func (r *Renderer) Errors(w io.Writer, parse, sema *diagnostic.Diagnostics) error {
	ew := &errWriter{w: w}
	parseErrs := errorsOf(parse)
	semaErrs := errorsOf(sema)

	if len(parseErrs) == 0 && len(semaErrs) == 0 {
		ew.line(r.p.Sprintf(labelNoErrors))
		return ew.err
	}

	if len(parseErrs) > 0 {
		ew.line(r.p.Sprintf(labelParseSection))
		for _, d := range parseErrs {
			ew.line(r.Diagnostic(d))
		}
	}
	if len(semaErrs) > 0 {
		if len(parseErrs) > 0 {
			ew.line("")
		}
		ew.line(r.p.Sprintf(labelSemaSection))
		for _, d := range semaErrs {
			ew.line(r.Diagnostic(d))
		}
	}
	return ew.err
}

// Diagnostic renders a single error line in the report language
func (r *Renderer) Diagnostic(d diagnostic.Diagnostic) string {
	msg := d.Localize(r.p)
	switch d.Kind {
	case diagnostic.Lexical:
		return r.p.Sprintf(labelLexicalError, d.Line, d.Column, msg)
	case diagnostic.Syntax:
		return r.p.Sprintf(labelSyntaxError, d.Line, d.Column, msg)
	default:
		return r.p.Sprintf(labelSemanticError, d.Line, msg)
	}
}

func errorsOf(d *diagnostic.Diagnostics) []diagnostic.Diagnostic {
	if d == nil {
		return nil
	}
	return d.Errors()
}
