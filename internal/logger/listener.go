package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shaharia-lab/designpatterns/internal/eventbus"
)

// LogListener appends one line per editor event to a log file.
type LogListener struct {
	path   string
	out    *lumberjack.Logger
	logger *slog.Logger
	now    func() time.Time

	closeOnce sync.Once
}

// NewLogListener creates a listener appending to path, rotating the file
// once it exceeds maxSizeMB (zero selects the default). Failures to write are
// reported on logger, which may be nil.
func NewLogListener(path string, maxSizeMB int, logger *slog.Logger) (*LogListener, error) {
	if path == "" {
		return nil, fmt.Errorf("log listener: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating event log directory for %q: %w", path, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogListener{
		path:   path,
		out:    newRotatingWriter(path, maxSizeMB),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Path returns the destination file captured at construction.
func (l *LogListener) Path() string { return l.path }

// Update writes a line describing the event.
func (l *LogListener) Update(kind eventbus.EventKind, file eventbus.File) {
	line := fmt.Sprintf("%s Someone has performed %s operation with the file %s\n",
		l.now().UTC().Format(time.RFC3339), kind, file.Name())
	if _, err := io.WriteString(l.out, line); err != nil {
		l.logger.Error("failed to append event log", "path", l.path, "kind", kind, "error", err)
	}
}

// Close releases the log file.
func (l *LogListener) Close() error {
	var err error
	l.closeOnce.Do(func() { err = l.out.Close() })
	return err
}
