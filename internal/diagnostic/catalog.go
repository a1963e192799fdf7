package diagnostic

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message formats. Each one is also the catalog key for its translations.
const (
	// Lexical
	MsgIllegalChar         = "unexpected character '%s'"
	MsgUnterminatedString  = "unterminated string literal"
	MsgUnterminatedComment = "unterminated block comment"
	MsgMalformedNumber     = "malformed number '%s'"

	// Syntax
	MsgExpected            = "expected %s, got %s"
	MsgUnexpectedInExpr    = "unexpected %s in expression"
	MsgUnexpectedTopLevel  = "unexpected %s at top level"
	MsgVoidNotAllowed      = "'%s' cannot have type void"
	MsgInvalidAssignTarget = "invalid assignment target"

	// Semantic
	MsgGlobalRedeclared    = "global variable '%s' is already defined"
	MsgLocalRedeclared     = "local variable '%s' is already defined"
	MsgFunctionRedeclared  = "function '%s' is already defined"
	MsgParamDuplicated     = "parameter '%s' is duplicated"
	MsgDeclTypeMismatch    = "type mismatch for '%s': expected %s, got %s"
	MsgUndeclaredVariable  = "variable '%s' is not declared"
	MsgConstAssignment     = "illegal assignment to constant '%s'"
	MsgAssignTypeMismatch  = "cannot assign %s to %s"
	MsgReturnMismatch      = "invalid return: function '%s' requires %s, returned %s"
	MsgMissingReturn       = "function '%s' (type %s) does not return a value"
	MsgUndeclaredFunction  = "call to undefined function '%s'"
	MsgIllegalMainCall     = "function 'main' cannot be called"
	MsgArityMismatch       = "wrong number of arguments to '%s': expected %d, got %d"
	MsgArgTypeMismatch     = "argument %d to '%s' is incompatible: expected %s, got %s"
	MsgMissingMain         = "program has no 'main' function"
	MsgDuplicateMain       = "program defines %d 'main' functions"

	// Lint
	MsgEmptyBody      = "function '%s' has an empty body"
	MsgUnusedParam    = "parameter '%s' of function '%s' is never used"
	MsgUnusedLocal    = "local variable '%s' in function '%s' is never used"
	MsgUnusedConst    = "constant '%s' is never read"
	MsgFunctionNaming = "function name '%s' should be lowerCamelCase"
	MsgCouldBeConst   = "local variable '%s' is never reassigned and could be const"
)

var romanian = map[string]string{
	MsgIllegalChar:         "Caracter neasteptat '%s'",
	MsgUnterminatedString:  "Sir de caractere neterminat",
	MsgUnterminatedComment: "Comentariu bloc neterminat",
	MsgMalformedNumber:     "Numar invalid '%s'",

	MsgExpected:            "Asteptat %s, primit %s",
	MsgUnexpectedInExpr:    "%s neasteptat in expresie",
	MsgUnexpectedTopLevel:  "%s neasteptat la nivel global",
	MsgVoidNotAllowed:      "'%s' nu poate avea tipul void",
	MsgInvalidAssignTarget: "Tinta atribuirii este invalida",

	MsgGlobalRedeclared:   "Variabila 'globala' '%s' este deja definita.",
	MsgLocalRedeclared:    "Variabila 'locala' '%s' este deja definita.",
	MsgFunctionRedeclared: "Functia '%s' este deja definita.",
	MsgParamDuplicated:    "Parametrul '%s' este duplicat.",
	MsgDeclTypeMismatch:   "Incompatibilitate tip '%s'. Asteptat: %s, Primit: %s",
	MsgUndeclaredVariable: "Variabila '%s' nu este declarata.",
	MsgConstAssignment:    "Atribuire ilegala la constanta '%s'.",
	MsgAssignTypeMismatch: "Nu se poate atribui %s la %s.",
	MsgReturnMismatch:     "Return invalid. Functia '%s' cere %s, returnat %s",
	MsgMissingReturn:      "Functia '%s' (tip %s) nu returneaza o valoare.",
	MsgUndeclaredFunction: "Apel functie nedefinita: '%s'.",
	MsgIllegalMainCall:    "Functia 'main' nu poate fi apelata.",
	MsgArityMismatch:      "Numar argumente incorect la '%s'. Asteptat %d, Primit %d",
	MsgArgTypeMismatch:    "Argument %d incompatibil la '%s'. Asteptat %s, Primit %s",
	MsgMissingMain:        "Programul nu contine functia 'main'.",
	MsgDuplicateMain:      "Programul defineste %d functii 'main'.",

	MsgEmptyBody:      "Functia '%s' are corpul gol",
	MsgUnusedParam:    "Parametrul '%s' al functiei '%s' nu este folosit",
	MsgUnusedLocal:    "Variabila locala '%s' din functia '%s' nu este folosita",
	MsgUnusedConst:    "Constanta '%s' nu este citita niciodata",
	MsgFunctionNaming: "Numele functiei '%s' ar trebui sa fie lowerCamelCase",
	MsgCouldBeConst:   "Variabila locala '%s' nu este reatribuita si poate fi const",
}

// Languages lists the locales with a complete message catalog
var Languages = []language.Tag{language.English, language.Romanian}

func init() {
	for key, ro := range romanian {
		mustSet(language.English, key, key)
		mustSet(language.Romanian, key, ro)
	}
}

// mustSet registers a translation in the default catalog. Other packages
// with their own strings (report labels) use it too.
func mustSet(tag language.Tag, key, msg string) {
	if err := message.SetString(tag, key, msg); err != nil {
		panic(fmt.Sprintf("diagnostic: registering %q for %s: %v", key, tag, err))
	}
}

// Register adds translations for keys owned by another package
func Register(tag language.Tag, entries map[string]string) {
	for key, msg := range entries {
		mustSet(tag, key, msg)
	}
}

// Printer returns a message printer for tag backed by the default catalog
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Supported reports whether tag has a registered catalog
func Supported(tag language.Tag) bool {
	for _, t := range Languages {
		if t == tag {
			return true
		}
	}
	return false
}
