package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lhaig/minilang/internal/ast"
	"github.com/lhaig/minilang/internal/compiler"
	"github.com/lhaig/minilang/internal/lexer"
	"github.com/lhaig/minilang/internal/report"
)

const usage = `minilangc - The MiniLang static analyzer

Usage:
  minilangc check [-v] [-lang en|ro] <file>...         Parse and analyze, print diagnostics
  minilangc analyze [-v] [-lang en|ro] [-o dir] <file>  Write tokens, globals, functions and errors reports
  minilangc tokens [-v] <file>                          Print the token stream
  minilangc lint [-v] [-lang en|ro] <file>              Run lint checks for style/best practices
  minilangc fmt [-v] [-w] <file>                        Pretty-print source (-w rewrites the file)
  minilangc ast [-v] <file>                             Dump the syntax tree

Options:
  -v       Trace pipeline stages on stderr
  -lang    Language of diagnostics and reports (en, ro)
  -o       Output directory for analyze (default ".")
  -w       Write formatted source back to the file

Examples:
  minilangc check prog.mini               Check for errors
  minilangc check a.mini b.mini           Check several independent programs
  minilangc analyze -lang ro -o out p.mini Write out/tokens.txt, out/global_vars.txt, ...
  minilangc fmt -w prog.mini              Reformat prog.mini in place
`

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(exitUsage)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		os.Exit(handleCheck(args))
	case "analyze":
		os.Exit(handleAnalyze(args))
	case "tokens":
		os.Exit(handleTokens(args))
	case "lint":
		os.Exit(handleLint(args))
	case "fmt":
		os.Exit(handleFmt(args))
	case "ast":
		os.Exit(handleAST(args))
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(exitUsage)
	}
}

// commonFlags are shared by every subcommand
type commonFlags struct {
	verbose bool
	lang    string
}

func newFlagSet(name string, withLang bool) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	cf := &commonFlags{}
	fs.BoolVar(&cf.verbose, "v", false, "trace pipeline stages on stderr")
	if withLang {
		fs.StringVar(&cf.lang, "lang", "en", "language of diagnostics and reports")
	}
	return fs, cf
}

// options turns the common flags into pipeline options
func (cf *commonFlags) options() (compiler.Options, error) {
	tag, err := compiler.ParseLang(cf.lang)
	if err != nil {
		return compiler.Options{}, err
	}

	logger := slog.New(slog.DiscardHandler)
	if cf.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return compiler.Options{Lang: tag, Logger: logger}, nil
}

// parseArgs parses fs and returns the options plus the positional args.
// ok is false when the caller should exit with code.
func parseArgs(fs *flag.FlagSet, cf *commonFlags, args []string, minFiles int) (opts compiler.Options, files []string, code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, nil, exitOK, false
		}
		return opts, nil, exitUsage, false
	}

	files = fs.Args()
	if len(files) < minFiles {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		return opts, nil, exitUsage, false
	}

	opts, err := cf.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return opts, nil, exitUsage, false
	}
	return opts, files, exitOK, true
}

func readSource(path string) (string, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		return "", false
	}
	return string(source), true
}

func handleCheck(args []string) int {
	fs, cf := newFlagSet("check", true)
	opts, files, code, ok := parseArgs(fs, cf, args, 1)
	if !ok {
		return code
	}

	registry := compiler.NewSourceRegistry()
	for _, path := range files {
		if err := registry.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return exitError
		}
	}

	failed := false
	for _, res := range registry.AnalyzeAll(opts) {
		if res.Diagnostics.Count() > 0 {
			fmt.Fprintln(os.Stderr, compiler.FormatDiagnostics(res.Diagnostics, res.Path, opts))
		}
		if res.HasErrors() {
			failed = true
		}
	}

	if failed {
		return exitError
	}
	fmt.Println("No errors found.")
	return exitOK
}

func handleAnalyze(args []string) int {
	fs, cf := newFlagSet("analyze", true)
	outDir := fs.String("o", ".", "output directory")
	opts, files, code, ok := parseArgs(fs, cf, args, 1)
	if !ok {
		return code
	}

	source, ok := readSource(files[0])
	if !ok {
		return exitError
	}

	res := compiler.Analyze(source, opts)
	written, err := compiler.WriteReports(res, *outDir, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return exitError
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}

	if res.HasErrors() {
		fmt.Fprintf(os.Stderr, "%d error(s) found.\n", res.Diagnostics.ErrorCount())
		return exitError
	}
	return exitOK
}

func handleTokens(args []string) int {
	fs, cf := newFlagSet("tokens", false)
	opts, files, code, ok := parseArgs(fs, cf, args, 1)
	if !ok {
		return code
	}

	source, ok := readSource(files[0])
	if !ok {
		return exitError
	}

	lx := lexer.New(source)
	toks := lx.Tokenize()
	opts.Logger.Debug("lexed source", "tokens", len(toks))

	if err := report.New(opts.Lang).Tokens(os.Stdout, toks); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return exitError
	}
	if lx.Diagnostics().HasErrors() {
		fmt.Fprintln(os.Stderr, compiler.FormatDiagnostics(lx.Diagnostics(), files[0], opts))
		return exitError
	}
	return exitOK
}

func handleLint(args []string) int {
	fs, cf := newFlagSet("lint", true)
	opts, files, code, ok := parseArgs(fs, cf, args, 1)
	if !ok {
		return code
	}

	source, ok := readSource(files[0])
	if !ok {
		return exitError
	}

	diag := compiler.Lint(source, opts)
	if diag.HasErrors() {
		fmt.Fprintln(os.Stderr, compiler.FormatDiagnostics(diag, files[0], opts))
		return exitError
	}

	if diag.Count() == 0 {
		fmt.Println("No lint warnings.")
		return exitOK
	}

	fmt.Println(compiler.FormatDiagnostics(diag, files[0], opts))
	fmt.Printf("%d warning(s) found.\n", diag.Count())
	return exitOK
}

func handleFmt(args []string) int {
	fs, cf := newFlagSet("fmt", false)
	write := fs.Bool("w", false, "write result to the source file")
	opts, files, code, ok := parseArgs(fs, cf, args, 1)
	if !ok {
		return code
	}

	path := files[0]
	source, ok := readSource(path)
	if !ok {
		return exitError
	}

	formatted, diag := compiler.Format(source)
	if diag.HasErrors() {
		fmt.Fprintln(os.Stderr, compiler.FormatDiagnostics(diag, path, opts))
		return exitError
	}

	if !*write {
		fmt.Print(formatted)
		return exitOK
	}
	if formatted == source {
		return exitOK
	}
	if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %s\n", err)
		return exitError
	}
	opts.Logger.Debug("rewrote file", "path", path)
	return exitOK
}

func handleAST(args []string) int {
	fs, cf := newFlagSet("ast", false)
	opts, files, code, ok := parseArgs(fs, cf, args, 1)
	if !ok {
		return code
	}

	source, ok := readSource(files[0])
	if !ok {
		return exitError
	}

	res := compiler.Analyze(source, opts)
	fmt.Print(ast.Print(res.Program))
	if res.ParseDiagnostics.HasErrors() {
		fmt.Fprintln(os.Stderr, compiler.FormatDiagnostics(res.ParseDiagnostics, files[0], opts))
		return exitError
	}
	return exitOK
}
