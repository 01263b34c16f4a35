package logging

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

const (
	mb = 1000000

	DefaultMaxLogSize = int64(2.5 * mb)
	DefaultMaxLogs    = 2
)

// RollingFileWriter appends to <dir>/<name>.log. Once that file reaches MaxSize it becomes
// <name>-1.log, older archives shift up by one and anything past MaxLogs files is removed.
type RollingFileWriter struct {
	Dir     string
	Name    string
	MaxSize int64
	MaxLogs int

	mu sync.Mutex
}

func NewRollingFileWriter(dir, name string) (*RollingFileWriter, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	return &RollingFileWriter{
		Dir:     absDir,
		Name:    name,
		MaxSize: DefaultMaxLogSize,
		MaxLogs: DefaultMaxLogs,
	}, nil
}

func (w *RollingFileWriter) mainPath() string {
	return filepath.Join(w.Dir, w.Name+".log")
}

func (w *RollingFileWriter) indexedPath(index int) string {
	return filepath.Join(w.Dir, fmt.Sprintf("%s-%d.log", w.Name, index))
}

func (w *RollingFileWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if stats, err := os.Stat(w.mainPath()); err == nil && stats.Size() >= w.MaxSize {
		if err := w.roll(); err != nil {
			return 0, err
		}
	}

	file, err := os.OpenFile(w.mainPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.Write(b)
}

// archives returns the indexes of the archived logs, highest first.
func (w *RollingFileWriter) archives() ([]int, error) {
	matches, err := fs.Glob(os.DirFS(w.Dir), w.Name+"-*.log")
	if err != nil {
		return nil, err
	}

	indexes := lo.FilterMap(matches, func(match string, _ int) (int, bool) {
		index, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(match, w.Name+"-"), ".log"))
		return index, err == nil && index > 0
	})
	slices.Sort(indexes)
	slices.Reverse(indexes)
	return indexes, nil
}

func (w *RollingFileWriter) roll() error {
	indexes, err := w.archives()
	if err != nil {
		return err
	}

	// the main file takes one of the MaxLogs spots
	for _, index := range indexes {
		if index+1 > w.MaxLogs-1 {
			if err := os.Remove(w.indexedPath(index)); err != nil {
				return err
			}
			continue
		}
		if err := os.Rename(w.indexedPath(index), w.indexedPath(index+1)); err != nil {
			return err
		}
	}

	if w.MaxLogs <= 1 {
		return os.Remove(w.mainPath())
	}
	return os.Rename(w.mainPath(), w.indexedPath(1))
}
