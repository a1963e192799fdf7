package checker

// Symbol is a declared variable or parameter
type Symbol struct {
	Name     string
	Type     Type
	Const    bool
	InitText string // initializer as written, "null" when omitted
	Line     int
	Column   int
}

// ControlKind identifies a control structure
type ControlKind int

const (
	ControlIf ControlKind = iota
	ControlWhile
	ControlFor
)

func (k ControlKind) String() string {
	switch k {
	case ControlIf:
		return "if"
	case ControlWhile:
		return "while"
	case ControlFor:
		return "for"
	default:
		return "unknown"
	}
}

// ControlRecord is one control statement inside a function body
type ControlRecord struct {
	Kind      ControlKind
	StartLine int
	EndLine   int
}

// Classification is the reported category of a function
type Classification int

const (
	ClassIterative Classification = iota
	ClassRecursive
	ClassMain
)

func (c Classification) String() string {
	switch c {
	case ClassMain:
		return "MAIN"
	case ClassRecursive:
		return "RECURSIVE"
	default:
		return "ITERATIVE"
	}
}

// FunctionSymbol is a function signature plus everything learned while
// walking its body. Type is the return type.
type FunctionSymbol struct {
	Symbol
	Params      []*Symbol
	Locals      []*Symbol // every local in the body, flattened, in declaration order
	Controls    []ControlRecord
	IsRecursive bool
	HasReturn   bool
	IsMain      bool
}

// Classification derives the category from IsMain and IsRecursive
func (f *FunctionSymbol) Classification() Classification {
	switch {
	case f.IsMain:
		return ClassMain
	case f.IsRecursive:
		return ClassRecursive
	default:
		return ClassIterative
	}
}

// FunctionReport is the frozen summary of one analyzed function
type FunctionReport struct {
	Name              string
	Classification    Classification
	ReturnType        Type
	Parameters        []*Symbol
	Locals            []*Symbol
	ControlStructures []ControlRecord
	Line              int
}

func (f *FunctionSymbol) report() *FunctionReport {
	return &FunctionReport{
		Name:              f.Name,
		Classification:    f.Classification(),
		ReturnType:        f.Type,
		Parameters:        f.Params,
		Locals:            f.Locals,
		ControlStructures: f.Controls,
		Line:              f.Line,
	}
}
