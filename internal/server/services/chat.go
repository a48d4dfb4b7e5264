// Package services contains the chat orchestration between the message
// repository and the object store.
package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cofre/internal/logging"
	"cofre/internal/server/identity"
	"cofre/internal/server/models"
	"cofre/internal/server/repositories/messages"
	"cofre/internal/server/storage"
)

// FeedLimit caps how many messages a page render loads.
const FeedLimit = 50

const (
	timestampLayout = "02/01 15:04"
	// clockOffset is the fixed UTC-3 offset stored timestamps use. A design
	// choice for a fixed-locale audience: no timezone database, no DST.
	clockOffset = -3 * time.Hour
)

// now is a seam for tests.
var now = time.Now

// WriteTimestamp formats the write-time instant the way stored rows expect.
func WriteTimestamp(t time.Time) string {
	return t.UTC().Add(clockOffset).Format(timestampLayout)
}

// Attachment is a submitted file, already opened by the HTTP layer.
type Attachment struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// FeedItem is one rendered message: the stored row with its attachment
// reference swapped for a freshly signed URL (or empty when the message has
// no media or signing failed).
type FeedItem struct {
	Author   string
	Text     string
	SentAt   string
	MediaURL string
}

// ChatService orchestrates chat submissions and page loads.
type ChatService struct {
	repo   messages.Repository
	store  storage.ObjectStore
	logger logging.Logger
}

func NewChatService(repo messages.Repository, store storage.ObjectStore, logger logging.Logger) *ChatService {
	return &ChatService{repo: repo, store: store, logger: logger}
}

// Post persists one chat submission. The attachment, if any, is uploaded
// first under a sanitized, timestamp-prefixed name; when the upload fails
// the message still goes in text-only. A submission with neither text nor a
// surviving attachment is dropped without error.
func (s *ChatService) Post(ctx context.Context, author identity.Participant, text string, att *Attachment) error {
	ref := ""
	if att != nil && att.Filename != "" {
		name := storage.ObjectName(now(), att.Filename)
		if err := s.store.Upload(ctx, name, att.ContentType, att.Body); err != nil {
			s.logger.Error(ctx, "attachment upload failed", "object", name, "error", err.Error())
		} else {
			ref = name
		}
	}

	if strings.TrimSpace(text) == "" && ref == "" {
		return nil
	}

	msg := &models.Message{
		Author:        author.Name,
		Text:          text,
		SentAt:        WriteTimestamp(now()),
		AttachmentRef: ref,
	}
	if err := s.repo.Append(ctx, msg); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Feed loads the latest messages in chronological order. Each attachment is
// resolved to a signed URL on every call; a failed signing call drops that
// message's media, never the page.
func (s *ChatService) Feed(ctx context.Context) ([]FeedItem, error) {
	rows, err := s.repo.Recent(ctx, FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	items := make([]FeedItem, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- { // repo returns newest first
		m := rows[i]
		items = append(items, FeedItem{
			Author:   m.Author,
			Text:     m.Text,
			SentAt:   m.SentAt,
			MediaURL: s.resolveMedia(ctx, m.AttachmentRef),
		})
	}
	return items, nil
}

func (s *ChatService) resolveMedia(ctx context.Context, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := s.store.SignURL(ctx, ref)
	if err != nil {
		s.logger.Error(ctx, "media signing failed", "ref", ref, "error", err.Error())
		return ""
	}
	return u
}
