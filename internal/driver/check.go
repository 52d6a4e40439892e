package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fern/internal/diag"
	"fern/internal/observ"
	"fern/internal/source"
	"fern/internal/tree"
)

// DefaultExtensions are the file suffixes collected from directories.
var DefaultExtensions = []string{".fern"}

type CheckOptions struct {
	Jobs           int      // <= 0 — GOMAXPROCS
	MaxDiagnostics int      // на файл, 0 — без ограничений
	Extensions     []string // пусто — DefaultExtensions
	// Events получает FileEvent по ходу работы; закрывается по завершении CheckFiles.
	Events chan<- FileEvent
	Cache  *DiskCache    // nil — без кэша
	Timer  *observ.Timer // nil — без замеров
}

// CheckResult содержит результат разбора одного файла
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Stats  tree.Stats
	Tokens int
	Cached bool
	Dur    time.Duration
}

// ListSources expands paths into a sorted, de-duplicated list of files. Directories
// are walked for files with one of exts; explicit file paths are kept as given.
func ListSources(paths []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// пусть ошибка загрузки всплывёт как диагностика файла
			files = append(files, p)
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExt(path, exts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func hasExt(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// CheckFiles разбирает все файлы параллельно. FileSet загружается целиком до старта
// воркеров и дальше только читается; каждый воркер владеет своим lexer/parser/Bag.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}

	files, err := ListSources(paths, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	baseDir := ""
	if len(paths) == 1 {
		if info, statErr := os.Stat(paths[0]); statErr == nil && info.IsDir() {
			baseDir = paths[0]
		}
	}
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	loadIdx := -1
	if opts.Timer != nil {
		loadIdx = opts.Timer.Begin("load")
	}
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		if loadErrors[i] != nil {
			// пустой виртуальный файл, чтобы диагностике было к чему привязаться
			fileIDs[i] = fileSet.AddVirtual(path, nil)
		}
		emit(ctx, opts.Events, FileEvent{Path: path, Status: StatusQueued})
	}
	if opts.Timer != nil {
		opts.Timer.End(loadIdx, fmt.Sprintf("%d files", len(files)))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]CheckResult, len(files))

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
			if loadErrors[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				sp := source.Span{File: fileIDs[i]}
				bag.Add(diag.NewError(diag.IOLoadFileError, sp, (&InputError{Path: path, Err: loadErrors[i]}).Error()))
				results[i] = CheckResult{Path: path, FileID: fileIDs[i], Bag: bag}
				emit(gctx, opts.Events, FileEvent{Path: path, Status: StatusError, Errors: 1})
				return nil
			}

			file := fileSet.Get(fileIDs[i])
			key := CacheKey(file, opts.MaxDiagnostics)
			if cached, ok := loadCached(opts.Cache, key, file, opts.MaxDiagnostics); ok {
				cached.Path = path
				cached.Dur = time.Since(started)
				results[i] = cached
				emit(gctx, opts.Events, FileEvent{Path: path, Status: StatusCached, Errors: FileErrors(cached)})
				return nil
			}

			emit(gctx, opts.Events, FileEvent{Path: path, Status: StatusParsing})
			res, err := parseLoaded(gctx, fileSet, file, opts.MaxDiagnostics, io.Discard)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			res.Bag.Sort()

			results[i] = CheckResult{
				Path:   path,
				FileID: file.ID,
				Bag:    res.Bag,
				Stats:  res.Stats,
				Tokens: res.Tokens,
				Dur:    time.Since(started),
			}
			if opts.Timer != nil {
				opts.Timer.Add("parse", results[i].Dur)
			}
			storeCached(opts.Cache, key, &results[i])

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			emit(gctx, opts.Events, FileEvent{Path: path, Status: status, Errors: FileErrors(results[i])})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// emit не блокирует воркер навсегда: при отмене событие теряется.
func emit(ctx context.Context, ch chan<- FileEvent, ev FileEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

// FileErrors counts the errors of one file, including diagnostics cut off by the limit.
func FileErrors(r CheckResult) int {
	if r.Bag == nil {
		return 0
	}
	return r.Bag.ErrorCount() + r.Bag.Dropped()
}

// CountErrors sums FileErrors over results.
func CountErrors(results []CheckResult) int {
	total := 0
	for _, r := range results {
		total += FileErrors(r)
	}
	return total
}
