package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"analex/internal/cache"
	"analex/internal/diag"
	"analex/internal/source"
	"analex/internal/suggest"
	"analex/internal/trace"
)

// DefaultExtensions are the file suffixes a directory run picks up.
var DefaultExtensions = []string{".prg", ".txt"}

// DirOptions configure AnalyzeDir.
type DirOptions struct {
	Options
	Jobs       int      // <= 0: GOMAXPROCS
	Extensions []string // nil: DefaultExtensions
	Cache      *cache.DiskCache
	Progress   ProgressSink
}

// FileResult is the outcome for one file of a directory run.
type FileResult struct {
	Path   string
	Result *Result // nil when the file could not be loaded
	Load   *diag.Diagnostic
}

// HasDiagnostics reports whether the file produced any finding or failed to load.
func (r FileResult) HasDiagnostics() bool {
	return r.Load != nil || r.Result.HasDiagnostics()
}

// ListFiles returns the sorted files under dir with one of exts.
func ListFiles(dir string, exts []string) ([]string, error) {
	if exts == nil {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyses every matching file under dir in parallel, each in a
// fresh session. Results come back in path order.
func AnalyzeDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "analyze_dir", trace.ParentFrom(ctx))
	root.WithExtra("files", fmt.Sprint(len(files)))
	defer root.End("")

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet пишется только здесь, горутины его только читают
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			started := time.Now()

			if loadErr, failed := loadErrors[path]; failed {
				d := diag.NewError(diag.IOLoadFile, source.Span{}, 0, "failed to load file: "+loadErr.Error())
				results[i] = FileResult{Path: path, Load: &d}
				trace.Failure(tracer, trace.ScopeFile, "load "+path, loadErr, root.ID())
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			span := trace.Begin(tracer, trace.ScopeFile, "file:"+path, root.ID())
			fctx := trace.WithParent(gctx, span)
			res, status := analyzeCached(fctx, fileSet.Get(fileIDs[path]), opts)
			span.End(string(status))

			results[i] = FileResult{Path: path, Result: res}
			emit(opts.Progress, Event{
				File: path, Stage: StageCheck, Status: status,
				Diagnostics: len(res.Diagnostics), Elapsed: time.Since(started),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// analyzeCached consults the disk cache before running a fresh analysis.
// Cache failures only cost the cache.
func analyzeCached(ctx context.Context, file *source.File, opts DirOptions) (*Result, Status) {
	emit(opts.Progress, Event{File: file.Path, Stage: StageLex, Status: StatusWorking})
	if opts.Cache == nil {
		return AnalyzeWithOptions(ctx, nil, file, opts.Options), StatusDone
	}

	tracer := trace.FromContext(ctx)
	parent := trace.ParentFrom(ctx)
	threshold := suggest.New(opts.Threshold).Threshold
	key := cache.Key(file.Hash, threshold)

	var payload cache.Payload
	hit, err := opts.Cache.Get(key, &payload)
	trace.Failure(tracer, trace.ScopeFile, "cache read", err, parent)
	if hit {
		trace.Point(tracer, trace.ScopeFile, "cache", "hit", parent)
		tokens, diags, counts := payload.Restore(file.ID)
		res := &Result{
			File:        file,
			Tokens:      tokens,
			Diagnostics: diags,
			Counts:      counts,
			Cached:      true,
		}
		res.truncate(opts.MaxDiagnostics)
		return res, StatusCached
	}

	full := opts.Options
	full.MaxDiagnostics = 0
	res := AnalyzeWithOptions(ctx, nil, file, full)
	err = opts.Cache.Put(key, cache.NewPayload(file.Path, res.Tokens, res.Diagnostics, res.Counts))
	trace.Failure(tracer, trace.ScopeFile, "cache write", err, parent)
	res.truncate(opts.MaxDiagnostics)
	return res, StatusDone
}

// truncate keeps the first n diagnostics, as a limited bag would have.
func (r *Result) truncate(n int) {
	if n > 0 && len(r.Diagnostics) > n {
		r.Dropped += len(r.Diagnostics) - n
		r.Diagnostics = r.Diagnostics[:n]
	}
}
