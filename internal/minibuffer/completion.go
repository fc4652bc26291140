package minibuffer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// maxCandidates is the completion cap named in §4.5.
const maxCandidates = 50

// FileCompletionSource implements CompletionSource for FindFile/WriteFile:
// split input at the final '/' into directory + stem, enumerate entries
// whose name matches "stem*" (case-sensitive), directories sorted before
// files, lexicographically within each group, capped at 50.
//
// A fsnotify watch on the directory currently being completed invalidates
// the cached listing on any Write/Create/Remove/Rename event, so a long
// lived prompt doesn't keep showing entries from before an external
// process touched the directory.
type FileCompletionSource struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	watchedDir  string
	cachedDir   string
	cachedNames []string
	dirty       bool
}

// NewFileCompletionSource creates a file path completion source. The
// returned source owns an fsnotify watcher and can serve any number of
// minibuffer sessions; call Close once it is no longer needed.
func NewFileCompletionSource() *FileCompletionSource {
	w, err := fsnotify.NewWatcher()
	s := &FileCompletionSource{watcher: w, dirty: true}
	if err == nil {
		go s.watchLoop()
	}
	return s
}

func (s *FileCompletionSource) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.mu.Lock()
				s.dirty = true
				s.mu.Unlock()
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close releases the underlying watcher.
func (s *FileCompletionSource) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

// Complete implements CompletionSource.
func (s *FileCompletionSource) Complete(input string) []string {
	dir, stem := splitDirStem(input)

	s.mu.Lock()
	if s.watcher != nil && dir != s.watchedDir {
		if s.watchedDir != "" {
			_ = s.watcher.Remove(s.watchedDir)
		}
		_ = s.watcher.Add(dir)
		s.watchedDir = dir
		s.dirty = true
	}
	needsScan := s.dirty || dir != s.cachedDir
	s.mu.Unlock()

	if needsScan {
		s.rescan(dir)
	}

	s.mu.Lock()
	names := append([]string(nil), s.cachedNames...)
	s.mu.Unlock()

	var dirs, files []string
	for _, n := range names {
		ok, _ := doublestar.Match(stem+"*", n)
		if !ok && !strings.HasPrefix(n, stem) {
			continue
		}
		full := filepath.Join(dir, n)
		if info, err := os.Stat(full); err == nil && info.IsDir() {
			dirs = append(dirs, n+"/")
		} else {
			files = append(files, n)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	out := append(dirs, files...)
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

func (s *FileCompletionSource) rescan(dir string) {
	entries, err := os.ReadDir(dir)
	names := make([]string, 0, len(entries))
	if err == nil {
		for _, e := range entries {
			names = append(names, e.Name())
		}
	}

	s.mu.Lock()
	s.cachedDir = dir
	s.cachedNames = names
	s.dirty = false
	s.mu.Unlock()
}

// splitDirStem splits a path-in-progress at its final '/' into a directory
// to scan and the stem to filter by, defaulting the directory to "." when
// no slash is present.
func splitDirStem(input string) (dir, stem string) {
	idx := strings.LastIndexByte(input, '/')
	if idx < 0 {
		return ".", input
	}
	dir = input[:idx+1]
	if dir == "" {
		dir = "/"
	}
	return dir, input[idx+1:]
}
