package ports

import "context"

// Message is a single outbound transactional email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single message. Implementations are expected to be safe
// for concurrent use by the dispatcher workers.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailQueue accepts messages for asynchronous delivery. Enqueueing never
// reports delivery failures back to the caller.
type MailQueue interface {
	Enqueue(msg Message)
}
