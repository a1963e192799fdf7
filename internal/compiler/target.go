package compiler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lhaig/minilang/internal/report"
)

// reportTarget is one of the text files written by WriteReports
type reportTarget struct {
	name  string
	file  string
	write func(r *report.Renderer, w io.Writer, res *Result) error
}

var reportTargets = []reportTarget{
	{
		name: "tokens",
		file: "tokens.txt",
		write: func(r *report.Renderer, w io.Writer, res *Result) error {
			return r.Tokens(w, res.Tokens)
		},
	},
	{
		name: "globals",
		file: "global_vars.txt",
		write: func(r *report.Renderer, w io.Writer, res *Result) error {
			return r.GlobalVars(w, res.Globals)
		},
	},
	{
		name: "functions",
		file: "functions.txt",
		write: func(r *report.Renderer, w io.Writer, res *Result) error {
			return r.Functions(w, res.Functions)
		},
	},
	{
		name: "errors",
		file: "errors.txt",
		write: func(r *report.Renderer, w io.Writer, res *Result) error {
			return r.Errors(w, res.ParseDiagnostics, res.SemanticDiagnostics)
		},
	},
}

// getReportTarget returns the report target for the given name
func getReportTarget(name string) (reportTarget, error) {
	for _, t := range reportTargets {
		if t.name == name {
			return t, nil
		}
	}
	return reportTarget{}, fmt.Errorf("unknown report: %s", name)
}

// ReportNames lists the reports WriteReports produces, in write order
func ReportNames() []string {
	names := make([]string, len(reportTargets))
	for i, t := range reportTargets {
		names[i] = t.name
	}
	return names
}

// RenderReport writes the named report to w
func RenderReport(res *Result, name string, w io.Writer, opts Options) error {
	t, err := getReportTarget(name)
	if err != nil {
		return err
	}
	return t.write(report.New(opts.lang()), w, res)
}

// WriteReport writes the named report into dir and returns the file path
func WriteReport(res *Result, name, dir string, opts Options) (string, error) {
	t, err := getReportTarget(name)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(dir, t.file)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	if err := t.write(report.New(opts.lang()), f, res); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", outPath, err)
	}

	opts.logger().Debug("wrote report", "report", t.name, "path", outPath)
	return outPath, nil
}

// WriteReports writes tokens.txt, global_vars.txt, functions.txt and
// errors.txt into dir, creating it if needed
func WriteReports(res *Result, dir string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string
	for _, t := range reportTargets {
		path, err := WriteReport(res, t.name, dir, opts)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
