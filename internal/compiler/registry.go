package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SourceRegistry collects the source files of one invocation. Each file is
// an independent program; paths are deduplicated by absolute path.
type SourceRegistry struct {
	sources map[string]string // absolute file path -> source text
	display map[string]string // absolute file path -> path as given
}

// FileResult pairs an analysis result with the file it came from
type FileResult struct {
	Path string
	*Result
}

// NewSourceRegistry creates an empty registry
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make(map[string]string),
		display: make(map[string]string),
	}
}

// Add reads the file at path. Adding the same file twice, under any
// spelling of its path, is a no-op.
func (r *SourceRegistry) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, ok := r.sources[absPath]; ok {
		return nil
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("source file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	source, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	r.sources[absPath] = string(source)
	r.display[absPath] = path
	return nil
}

// Len returns the number of distinct files
func (r *SourceRegistry) Len() int {
	return len(r.sources)
}

// Paths returns the absolute paths of all files in sorted order
func (r *SourceRegistry) Paths() []string {
	paths := make([]string, 0, len(r.sources))
	for p := range r.sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Source returns the text read for an absolute path
func (r *SourceRegistry) Source(absPath string) (string, bool) {
	src, ok := r.sources[absPath]
	return src, ok
}

// AnalyzeAll analyzes every file in path order. FileResult.Path is the path
// as it was passed to Add.
func (r *SourceRegistry) AnalyzeAll(opts Options) []FileResult {
	log := opts.logger()
	results := make([]FileResult, 0, len(r.sources))
	for _, p := range r.Paths() {
		log.Debug("analyzing file", "path", r.display[p])
		results = append(results, FileResult{
			Path:   r.display[p],
			Result: Analyze(r.sources[p], opts),
		})
	}
	return results
}
