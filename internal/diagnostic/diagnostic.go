package diagnostic

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Kind classifies what produced a diagnostic
type Kind int

const (
	Lexical Kind = iota
	Syntax
	DuplicateDeclaration
	UndeclaredIdentifier
	UndeclaredFunction
	ArityMismatch
	TypeMismatch
	ConstAssignment
	MissingReturn
	IllegalMainCall
	MissingMain
	DuplicateMain
	Lint
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case DuplicateDeclaration:
		return "DuplicateDeclaration"
	case UndeclaredIdentifier:
		return "UndeclaredIdentifier"
	case UndeclaredFunction:
		return "UndeclaredFunction"
	case ArityMismatch:
		return "ArityMismatch"
	case TypeMismatch:
		return "TypeMismatch"
	case ConstAssignment:
		return "ConstAssignment"
	case MissingReturn:
		return "MissingReturn"
	case IllegalMainCall:
		return "IllegalMainCall"
	case MissingMain:
		return "MissingMain"
	case DuplicateMain:
		return "DuplicateMain"
	case Lint:
		return "Lint"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Semantic reports whether the kind is produced by the semantic analyzer
func (k Kind) Semantic() bool {
	return k >= DuplicateDeclaration && k <= DuplicateMain
}

// Diagnostic represents a single error, warning, or info message
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Line     int
	Column   int

	format string
	args   []any
}

// Key is the rendered text used for deduplication. Column is left out so
// the same message raised twice on one line collapses to a single entry.
func (d Diagnostic) Key() string {
	return fmt.Sprintf("%s %d: %s", d.Severity, d.Line, d.Message)
}

// Localize renders the message through a catalog-backed printer
func (d Diagnostic) Localize(p *message.Printer) string {
	if p == nil || d.format == "" {
		return d.Message
	}
	return p.Sprintf(d.format, d.args...)
}

// Diagnostics is an ordered, deduplicated collection of diagnostic messages
type Diagnostics struct {
	items []Diagnostic
	seen  map[string]bool
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
		seen:  make(map[string]bool),
	}
}

// Add appends d unless a diagnostic with identical rendered text is already
// present. It reports whether d was kept.
func (d *Diagnostics) Add(diag Diagnostic) bool {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	key := diag.Key()
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	d.items = append(d.items, diag)
	return true
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(kind Kind, line, col int, format string, args ...any) {
	d.Add(Diagnostic{
		Severity: Error,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
		format:   format,
		args:     args,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(kind Kind, line, col int, format string, args ...any) {
	d.Add(Diagnostic{
		Severity: Warning,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
		format:   format,
		args:     args,
	})
}

// Append adds every diagnostic of other, in order, still deduplicating
func (d *Diagnostics) Append(other *Diagnostics) {
	if other == nil {
		return
	}
	for _, item := range other.items {
		d.Add(item)
	}
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	errors := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == Error {
			errors = append(errors, item)
		}
	}
	return errors
}

// OfKind returns the diagnostics of the given kind, in insertion order
func (d *Diagnostics) OfKind(kind Kind) []Diagnostic {
	var out []Diagnostic
	for _, item := range d.items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

// CountKind returns how many diagnostics of the given kind were recorded
func (d *Diagnostics) CountKind(kind Kind) int {
	return len(d.OfKind(kind))
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Error {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Warning {
			count++
		}
	}
	return count
}

// Format returns human-readable error messages
// Output format:
//
//	error[filename:3:10]: variable 'x' is not declared
//	warning[filename:5:1]: local variable 'z' in function 'f' is never used
func (d *Diagnostics) Format(filename string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		builder.WriteString(fmt.Sprintf("%s[%s:%d:%d]: %s",
			item.Severity.String(),
			filename,
			item.Line,
			item.Column,
			item.Message,
		))

		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Clear removes all diagnostics from the collection
func (d *Diagnostics) Clear() {
	d.items = make([]Diagnostic, 0)
	d.seen = make(map[string]bool)
}
