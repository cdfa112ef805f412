// Package eventbus provides a synchronous, in-process observer: an
// EventManager keeps an ordered list of listeners per event kind and calls
// them in turn when an event is raised.
package eventbus

import (
	"io"
	"log/slog"
	"reflect"
	"sort"
)

// EventManager dispatches events to the listeners registered for each kind.
//
// The set of kinds is fixed at construction. Subscribe, Unsubscribe and
// Notify referencing any other kind are no-ops that log a warning.
//
// EventManager is not safe for concurrent use. Listeners that subscribe or
// unsubscribe on the same manager from inside Update observe undefined
// iteration order for the notification in progress.
type EventManager struct {
	listeners map[EventKind][]Listener
	logger    *slog.Logger
}

// NewEventManager creates an EventManager with an empty subscriber list for
// each of kinds. Duplicate kinds collapse to a single list. A nil logger
// discards warnings.
func NewEventManager(logger *slog.Logger, kinds ...EventKind) *EventManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &EventManager{
		listeners: make(map[EventKind][]Listener, len(kinds)),
		logger:    logger,
	}
	for _, k := range kinds {
		if _, ok := m.listeners[k]; !ok {
			m.listeners[k] = []Listener{}
		}
	}
	return m
}

// Subscribe appends l to the subscriber list for kind.
func (m *EventManager) Subscribe(kind EventKind, l Listener) {
	users, ok := m.listeners[kind]
	if !ok {
		m.logger.Warn("subscribe to unknown event kind", "kind", kind)
		return
	}
	m.listeners[kind] = append(users, l)
}

// Unsubscribe removes the first registration of l for kind. It does nothing
// if l was never subscribed.
func (m *EventManager) Unsubscribe(kind EventKind, l Listener) {
	users, ok := m.listeners[kind]
	if !ok {
		m.logger.Warn("unsubscribe from unknown event kind", "kind", kind)
		return
	}
	for i, u := range users {
		if sameListener(u, l) {
			m.listeners[kind] = append(users[:i:i], users[i+1:]...)
			return
		}
	}
}

// Notify calls Update on every listener subscribed to kind, in the order
// they subscribed, before returning.
func (m *EventManager) Notify(kind EventKind, file File) {
	users, ok := m.listeners[kind]
	if !ok {
		m.logger.Warn("notify on unknown event kind", "kind", kind, "file", file.Path)
		return
	}
	m.logger.Debug("notifying listeners", "kind", kind, "file", file.Path, "listeners", len(users))
	for _, u := range users {
		u.Update(kind, file)
	}
}

// Listeners returns a copy of the subscriber list for kind, or nil if the
// manager does not track kind.
func (m *EventManager) Listeners(kind EventKind) []Listener {
	users, ok := m.listeners[kind]
	if !ok {
		return nil
	}
	out := make([]Listener, len(users))
	copy(out, users)
	return out
}

// Kinds returns the kinds this manager tracks, sorted.
func (m *EventManager) Kinds() []EventKind {
	kinds := make([]EventKind, 0, len(m.listeners))
	for k := range m.listeners {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// sameListener reports whether a and b are the same listener. Listeners
// whose values cannot be compared never match. This covers funcs, maps and
// slices, and structs holding one of those in an interface field.
func sameListener(a, b Listener) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
