package typeset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/go-typeset/internal/fileutil"
	"github.com/alnah/go-typeset/internal/logging"
)

// filePermissions is rw-r--r--: output documents are meant to be shared.
const filePermissions = 0o644

// Result holds the outcome of processing one file.
type Result struct {
	InputPath  string
	OutputPath string
	// Written is false for dry runs, list runs and failures.
	Written   bool
	Collected int
	Err       error
	Duration  time.Duration
}

// ProcessFile reads, converts and writes one file. An existing output file
// is refused unless overwrite is configured; a dry run stops before
// writing.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) Result {
	start := time.Now()
	result := Result{InputPath: path}
	finish := func(err error) Result {
		result.Err = err
		result.Duration = time.Since(start)
		if err != nil {
			p.logger.Error("processing failed", logging.File(path), logging.Error(err))
		}
		return result
	}

	p.logger.Info("processing", logging.File(path), logging.FormatName(p.format.Name))

	doc, err := p.reader.ReadFile(ctx, path)
	if err != nil {
		return finish(err)
	}
	out, err := p.convertDocument(doc, path)
	if err != nil {
		return finish(err)
	}
	result.Collected = out.Collected

	if p.mode == ModeListUnknown {
		p.logger.Info("collected unknown words", logging.File(path), logging.Count(out.Collected))
		return finish(nil)
	}

	result.OutputPath = p.outputPath(path, out.Name)

	if fileutil.FileExists(result.OutputPath) && !p.cfg.Overwrite {
		return finish(fmt.Errorf("%w: %s", ErrOutputExists, result.OutputPath))
	}

	if p.cfg.DryRun {
		p.logger.Info(p.format.Description+" would have been written", logging.Output(result.OutputPath))
		return finish(nil)
	}

	if err := fileutil.WriteFileAtomic(result.OutputPath, []byte(out.Content), filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	result.Written = true
	p.logger.Info(p.format.Description+" written", logging.Output(result.OutputPath))
	return finish(nil)
}

// outputPath joins name to the configured output directory, or to the
// input file's directory when none is configured.
func (p *Pipeline) outputPath(input, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	dir := p.cfg.OutputPath
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name)
}

// Run processes paths in order. A failed document is recorded in its Result
// and the run continues. Cancellation is checked between documents only;
// documents not started are reported with the context error.
func (p *Pipeline) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{InputPath: path, Err: err})
			continue
		}
		results = append(results, p.ProcessFile(context.WithoutCancel(ctx), path))
	}
	return results
}

// Summary counts succeeded and failed results.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// FirstError returns the first error in results, or nil.
func FirstError(results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
