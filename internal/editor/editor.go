// Package editor provides a minimal document editor that raises events on
// its lifecycle actions.
package editor

import (
	"io"
	"log/slog"

	"github.com/shaharia-lab/designpatterns/internal/eventbus"
)

// Editor is an event source. It owns one EventManager tracking every
// eventbus kind and remembers the file most recently opened.
type Editor struct {
	events *eventbus.EventManager
	logger *slog.Logger
	file   *eventbus.File
}

// New creates an Editor with no file open.
func New(logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Editor{
		events: eventbus.NewEventManager(logger, eventbus.Kinds()...),
		logger: logger,
	}
}

// Events returns the editor's EventManager for subscribing listeners.
func (e *Editor) Events() *eventbus.EventManager {
	return e.events
}

// OpenFile makes path the current file and notifies Open listeners.
func (e *Editor) OpenFile(path string) {
	f := eventbus.NewFile(path)
	e.file = &f
	e.logger.Info("file opened", "path", path)
	e.events.Notify(eventbus.Open, f)
}

// SaveFile notifies Saved listeners about the current file. It reports
// false and does nothing when no file has been opened.
func (e *Editor) SaveFile() bool {
	if e.file == nil {
		e.logger.Debug("save requested with no open file")
		return false
	}
	e.logger.Info("file saved", "path", e.file.Path)
	e.events.Notify(eventbus.Saved, *e.file)
	return true
}

// CurrentFile returns the open file, if any.
func (e *Editor) CurrentFile() (eventbus.File, bool) {
	if e.file == nil {
		return eventbus.File{}, false
	}
	return *e.file, true
}
