package eventbus_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/designpatterns/internal/eventbus"
)

type call struct {
	name string
	kind eventbus.EventKind
	file eventbus.File
}

// recorder appends every call it receives to a shared log so that ordering
// across listeners can be asserted.
type recorder struct {
	name string
	log  *[]call
}

func (r *recorder) Update(kind eventbus.EventKind, file eventbus.File) {
	*r.log = append(*r.log, call{name: r.name, kind: kind, file: file})
}

type funcListener func(eventbus.EventKind, eventbus.File)

func (f funcListener) Update(k eventbus.EventKind, file eventbus.File) { f(k, file) }

// wrapper is comparable by type, but not when inner holds a func.
type wrapper struct {
	inner eventbus.Listener
}

func (w wrapper) Update(k eventbus.EventKind, file eventbus.File) { w.inner.Update(k, file) }

// rewirer swaps one subscription for another the first time it is notified.
type rewirer struct {
	m       *eventbus.EventManager
	drop    eventbus.Listener
	add     eventbus.Listener
	rec     *recorder
	rewired bool
}

func (r *rewirer) Update(kind eventbus.EventKind, file eventbus.File) {
	r.rec.Update(kind, file)
	if r.rewired {
		return
	}
	r.rewired = true
	r.m.Unsubscribe(kind, r.drop)
	r.m.Subscribe(kind, r.add)
}

func newManager(t *testing.T) (*eventbus.EventManager, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return eventbus.NewEventManager(logger, eventbus.Open, eventbus.Saved), &buf
}

func TestNotify_SubscribedListenerCalledOnce(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	a := &recorder{name: "a", log: &calls}

	m.Subscribe(eventbus.Open, a)
	m.Notify(eventbus.Open, eventbus.NewFile("test.txt"))

	require.Len(t, calls, 1)
	assert.Equal(t, eventbus.Open, calls[0].kind)
	assert.Equal(t, "test.txt", calls[0].file.Path)
}

func TestUnsubscribe_StopsNotifications(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	a := &recorder{name: "a", log: &calls}

	m.Subscribe(eventbus.Saved, a)
	m.Unsubscribe(eventbus.Saved, a)
	m.Notify(eventbus.Saved, eventbus.NewFile("test.txt"))

	assert.Empty(t, calls)
	assert.Empty(t, m.Listeners(eventbus.Saved))
}

func TestUnsubscribe_RemovesOnlyFirstMatch(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	a := &recorder{name: "a", log: &calls}
	b := &recorder{name: "b", log: &calls}

	m.Subscribe(eventbus.Open, a)
	m.Subscribe(eventbus.Open, b)
	m.Subscribe(eventbus.Open, a)
	m.Unsubscribe(eventbus.Open, a)

	got := m.Listeners(eventbus.Open)
	require.Len(t, got, 2)
	assert.Same(t, b, got[0])
	assert.Same(t, a, got[1])
}

func TestUnsubscribe_MatchesByIdentity(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	a := &recorder{name: "a", log: &calls}
	twin := &recorder{name: "a", log: &calls}

	m.Subscribe(eventbus.Open, a)
	m.Unsubscribe(eventbus.Open, twin)

	assert.Len(t, m.Listeners(eventbus.Open), 1)
}

func TestUnsubscribe_NonComparableListenerDoesNotPanic(t *testing.T) {
	m, _ := newManager(t)
	count := 0
	f := funcListener(func(eventbus.EventKind, eventbus.File) { count++ })

	m.Subscribe(eventbus.Open, f)
	assert.NotPanics(t, func() { m.Unsubscribe(eventbus.Open, f) })

	m.Notify(eventbus.Open, eventbus.NewFile("a.txt"))
	assert.Equal(t, 1, count)

	w := wrapper{inner: f}
	m.Subscribe(eventbus.Saved, w)
	assert.NotPanics(t, func() { m.Unsubscribe(eventbus.Saved, wrapper{inner: f}) })
	assert.NotPanics(t, func() { m.Unsubscribe(eventbus.Saved, w) })
	assert.Len(t, m.Listeners(eventbus.Saved), 1)
}

func TestUnsubscribe_ComparableWrapperMatches(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	w := wrapper{inner: &recorder{name: "inner", log: &calls}}

	m.Subscribe(eventbus.Open, w)
	m.Unsubscribe(eventbus.Open, w)

	assert.Empty(t, m.Listeners(eventbus.Open))
}

func TestNotify_SubscriptionChangesApplyToLaterNotifications(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	dropped := &recorder{name: "dropped", log: &calls}
	added := &recorder{name: "added", log: &calls}
	r := &rewirer{m: m, drop: dropped, add: added, rec: &recorder{name: "rewirer", log: &calls}}

	m.Subscribe(eventbus.Open, r)
	m.Subscribe(eventbus.Open, dropped)

	m.Notify(eventbus.Open, eventbus.NewFile("a.txt"))
	require.Len(t, calls, 2)
	assert.Equal(t, "rewirer", calls[0].name)
	assert.Equal(t, "dropped", calls[1].name)

	calls = calls[:0]
	m.Notify(eventbus.Open, eventbus.NewFile("a.txt"))
	require.Len(t, calls, 2)
	assert.Equal(t, "rewirer", calls[0].name)
	assert.Equal(t, "added", calls[1].name)
}

func TestUnsubscribe_AbsentListenerIsNoop(t *testing.T) {
	m, buf := newManager(t)
	var calls []call

	m.Unsubscribe(eventbus.Open, &recorder{log: &calls})

	assert.Empty(t, m.Listeners(eventbus.Open))
	assert.Empty(t, buf.String())
}

func TestNotify_NoSubscribers(t *testing.T) {
	m, buf := newManager(t)
	assert.NotPanics(t, func() { m.Notify(eventbus.Saved, eventbus.NewFile("x")) })
	assert.Empty(t, buf.String())
}

func TestUnknownKind_IsNoopWithWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := eventbus.NewEventManager(logger, eventbus.Open)
	var calls []call
	a := &recorder{name: "a", log: &calls}

	m.Subscribe(eventbus.Saved, a)
	m.Notify(eventbus.Saved, eventbus.NewFile("test.txt"))
	m.Unsubscribe(eventbus.Saved, a)

	assert.Empty(t, calls)
	assert.Nil(t, m.Listeners(eventbus.Saved))
	out := buf.String()
	assert.Contains(t, out, "subscribe to unknown event kind")
	assert.Contains(t, out, "notify on unknown event kind")
	assert.Contains(t, out, "unsubscribe from unknown event kind")
}

func TestNotify_RegistrationOrder(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	for _, name := range []string{"first", "second", "third"} {
		m.Subscribe(eventbus.Open, &recorder{name: name, log: &calls})
	}

	m.Notify(eventbus.Open, eventbus.NewFile("a.txt"))

	require.Len(t, calls, 3)
	assert.Equal(t, "first", calls[0].name)
	assert.Equal(t, "second", calls[1].name)
	assert.Equal(t, "third", calls[2].name)
}

func TestNewEventManager_DuplicateKindsCollapse(t *testing.T) {
	m := eventbus.NewEventManager(nil, eventbus.Saved, eventbus.Open, eventbus.Saved)
	assert.Equal(t, []eventbus.EventKind{eventbus.Open, eventbus.Saved}, m.Kinds())
	assert.NotNil(t, m.Listeners(eventbus.Open))
	assert.Empty(t, m.Listeners(eventbus.Open))
}

func TestListeners_ReturnsCopy(t *testing.T) {
	m, _ := newManager(t)
	var calls []call
	m.Subscribe(eventbus.Open, &recorder{log: &calls})

	got := m.Listeners(eventbus.Open)
	got[0] = nil

	assert.NotNil(t, m.Listeners(eventbus.Open)[0])
}

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		in      string
		want    eventbus.EventKind
		wantErr bool
	}{
		{"open", eventbus.Open, false},
		{"SAVED", eventbus.Saved, false},
		{" Open ", eventbus.Open, false},
		{"closed", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := eventbus.ParseEventKind(tt.in)
			if tt.wantErr {
				var kindErr *eventbus.UnknownKindError
				require.ErrorAs(t, err, &kindErr)
				assert.Equal(t, tt.in, kindErr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFile_Name(t *testing.T) {
	assert.Equal(t, "test.txt", eventbus.NewFile("path/to/test.txt").Name())
	assert.Equal(t, "test.txt", eventbus.NewFile("test.txt").Name())
}
