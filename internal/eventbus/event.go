package eventbus

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EventKind identifies a category of editor event.
type EventKind string

// Supported event kinds. The set is closed.
const (
	Open  EventKind = "open"
	Saved EventKind = "saved"
)

// Kinds returns every supported event kind in declaration order.
func Kinds() []EventKind {
	return []EventKind{Open, Saved}
}

func (k EventKind) String() string { return string(k) }

// UnknownKindError is returned when a string does not name a supported event kind.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown event kind %q", e.Kind)
}

// ParseEventKind converts s (case-insensitive) to an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	k := EventKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", &UnknownKindError{Kind: s}
}

// File is the payload delivered with every notification.
type File struct {
	Path string `json:"path"`
}

// NewFile returns a File referring to path.
func NewFile(path string) File {
	return File{Path: path}
}

// Name returns the last element of the file path.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Listener receives notifications from an EventManager.
//
// Listeners are compared by identity when unsubscribing, so implementations
// should use pointer receivers.
type Listener interface {
	Update(kind EventKind, file File)
}
