package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

// Walker finds documents under a directory using include/exclude globs.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.txt"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// Walk returns matching files under root sorted by path.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, port.FileInfo{
				Path:    path,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Expand resolves paths into document paths: files are kept as given (made
// absolute), directories are walked. A missing path is an input error.
func (w *Walker) Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, &domain.ReadError{Path: p, Err: fmt.Errorf("%w: %w", domain.ErrUnreadable, err)}
		}
		if !info.IsDir() {
			out = append(out, abs)
			continue
		}
		files, err := w.Walk(abs)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			out = append(out, f.Path)
		}
	}
	return out, nil
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Reader reads UTF-8 text documents from disk.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadFile returns the file contents. Failures are *domain.ReadError wrapping
// domain.ErrUnreadable or domain.ErrNotUTF8.
func (Reader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.ReadError{Path: path, Err: fmt.Errorf("%w: %w", domain.ErrUnreadable, err)}
	}
	if !utf8.Valid(data) {
		return "", &domain.ReadError{Path: path, Err: domain.ErrNotUTF8}
	}
	return string(data), nil
}

var (
	_ port.FileWalker = (*Walker)(nil)
	_ port.FileReader = Reader{}
)
