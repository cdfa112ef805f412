package notification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaharia-lab/designpatterns/internal/eventbus"
	"github.com/shaharia-lab/designpatterns/internal/storage"
)

const sendTimeout = 30 * time.Second

// EmailListener emails a fixed recipient whenever it is notified of an
// editor event.
type EmailListener struct {
	address  string
	provider Provider
	store    storage.NotificationStore
	logger   *slog.Logger
	now      func() time.Time
}

// EmailOption configures an EmailListener.
type EmailOption func(*EmailListener)

// WithStore records every delivery attempt in store.
func WithStore(store storage.NotificationStore) EmailOption {
	return func(l *EmailListener) { l.store = store }
}

// WithLogger sets the logger used to report delivery failures.
func WithLogger(logger *slog.Logger) EmailOption {
	return func(l *EmailListener) { l.logger = logger }
}

// NewEmailListener creates a listener that sends to address through provider.
func NewEmailListener(address string, provider Provider, opts ...EmailOption) *EmailListener {
	l := &EmailListener{
		address:  address,
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Address returns the recipient captured at construction.
func (l *EmailListener) Address() string { return l.address }

// Update sends one email describing the event. Delivery failures are logged
// and recorded, never returned.
func (l *EmailListener) Update(kind eventbus.EventKind, file eventbus.File) {
	msg := Message{
		ID:      uuid.NewString(),
		Subject: buildSubject(kind.String()),
		Body:    describe(kind, file),
		To:      []string{l.address},
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	sendErr := l.provider.Send(ctx, msg)

	entry := storage.NotificationLogEntry{
		MessageID: msg.ID,
		EventType: kind.String(),
		Provider:  l.provider.Name(),
		Recipient: l.address,
		Subject:   msg.Subject,
		Status:    storage.StatusSent,
		CreatedAt: l.now().UTC(),
	}
	if sendErr != nil {
		entry.Status = storage.StatusFailed
		entry.ErrorMsg = sendErr.Error()
		l.logger.Error("email notification failed",
			"kind", kind, "file", file.Path, "to", l.address, "error", sendErr)
	} else {
		l.logger.Info("email notification sent", "kind", kind, "file", file.Path, "to", l.address)
	}

	if l.store == nil {
		return
	}
	if logErr := l.store.LogNotification(context.Background(), entry); logErr != nil {
		l.logger.Error("failed to record notification delivery", "kind", kind, "error", logErr)
	}
}

func describe(kind eventbus.EventKind, file eventbus.File) string {
	return fmt.Sprintf("Someone has performed %s operation with the file %s", kind, file.Name())
}
