// Package models defines server-side data models persisted in the database.
package models

// Message is one row of the append-only chat feed. Rows are immutable once
// inserted; there is no update or delete path.
type Message struct {
	// ID is the auto-incrementing insertion identifier; it is the only
	// ordering the feed has.
	ID int64
	// Author is the display name of the participant who wrote the message.
	Author string
	// Text is the message body; may be empty when an attachment is present.
	Text string
	// SentAt is the human-formatted write-time timestamp ("DD/MM HH:MM" at
	// the fixed UTC-3 offset), stored as text.
	SentAt string
	// AttachmentRef is the bare object-storage name of the attachment, or
	// empty when the message has none. Never a URL; signed URLs are
	// recomputed on every read.
	AttachmentRef string
}
