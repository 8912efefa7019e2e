// Package mail abstracts "send an email" over a configurable SMTP relay.
// Provider selection is a prioritized fallback chain evaluated over the
// configuration snapshot; sending hides the specific relay behind Transport.
package mail

import "context"

// Message is a rendered outbound email.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Attachment is a file forwarded with the message, held in memory only.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Transport sends one message and fails with an error on network, auth or
// quota problems. Implementations must respect ctx cancellation.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}
