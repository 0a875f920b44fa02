package anonymize

import (
	"context"
	"errors"
)

// Delete error taxonomy. The transport implementation maps platform API
// failures onto these; "message to delete not found" is treated as success
// and never surfaces here.
var (
	// ErrDeleteForbidden means the bot lacks permission to delete in the chat.
	ErrDeleteForbidden = errors.New("no permission to delete message")

	// ErrDeleteTooOld means the platform refuses to delete an old message
	// (Telegram enforces a 48h limit for bots).
	ErrDeleteTooOld = errors.New("message too old to delete")
)

// ErrUnsupported is returned by the router for content it cannot repost.
var ErrUnsupported = errors.New("unsupported content kind")

// Transport is the chat-platform boundary the core drives: deleting originals
// and re-posting anonymized copies. replyTo > 0 threads the new message under
// an existing one; 0 means no reply.
type Transport interface {
	Delete(ctx context.Context, chatID int64, messageID int) error

	SendText(ctx context.Context, chatID int64, text string, replyTo int) error
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error
	SendVideo(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error
	SendAnimation(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error
	SendDocument(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error
	SendAudio(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error
	SendVoice(ctx context.Context, chatID int64, fileID string, replyTo int) error
	SendVideoNote(ctx context.Context, chatID int64, fileID string, replyTo int) error
	SendSticker(ctx context.Context, chatID int64, fileID string, replyTo int) error

	// SendNotice posts a system notice and returns its message ID so the
	// caller can schedule removal.
	SendNotice(ctx context.Context, chatID int64, text string) (int, error)
}
