// Package errorlog appends pipeline errors to a newline-delimited JSON file.
package errorlog

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Record is one line of the error log.
type Record struct {
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Stack     string    `json:"stack"`
	Timestamp time.Time `json:"timestamp"`
}

type Options struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// Writer serializes appends so concurrent requests never interleave lines.
type Writer struct {
	mu   sync.Mutex
	out  io.WriteCloser
	path string
}

// New opens the log lazily; the file is created on the first append.
func New(opts Options) *Writer {
	return &Writer{
		out: &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		},
		path: opts.Path,
	}
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Append(rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode error record: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(line); err != nil {
		return fmt.Errorf("append error record: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Close()
}
