// Package notification delivers editor events by email and provides the
// email-notification listener.
package notification

import "context"

// Message is the content to be delivered by a Provider.
type Message struct {
	ID      string
	Subject string
	Body    string
	To      []string
}

// Provider is the interface for notification delivery backends.
type Provider interface {
	// Name returns the provider identifier (e.g. "smtp").
	Name() string
	// Send delivers the message using the provider's transport.
	Send(ctx context.Context, msg Message) error
}
