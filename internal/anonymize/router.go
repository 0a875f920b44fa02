package anonymize

import (
	"context"
	"log/slog"

	"github.com/mymmrac/telego"
)

// Router re-posts a classified message through the transport.
//
// Caption policy: the router never reuses the original caption on its own —
// override is the only caption source. Direct mode passes the prefix-stripped
// text, delayed mode passes the follow-up's own text verbatim; both decisions
// belong to the orchestrator.
type Router struct {
	transport Transport
}

// NewRouter creates a router over the given transport.
func NewRouter(t Transport) *Router {
	return &Router{transport: t}
}

// Route sends an anonymized copy of msg to its chat. override substitutes the
// text (for text messages) or the caption (for caption-capable media); it is
// ignored for kinds that take no caption. replyTo > 0 threads the repost.
// Returns ErrUnsupported without touching the transport when the content
// cannot be re-posted.
func (r *Router) Route(ctx context.Context, msg *telego.Message, override string, replyTo int) error {
	kind := Classify(msg)
	chatID := msg.Chat.ID

	slog.Debug("routing repost", "kind", kind.String(), "reply_to", replyTo)

	switch kind {
	case KindText:
		text := override
		if text == "" {
			text = msg.Text
		}
		return r.transport.SendText(ctx, chatID, text, replyTo)

	case KindPhoto:
		return r.transport.SendPhoto(ctx, chatID, FileID(msg), override, replyTo)

	case KindVideo:
		return r.transport.SendVideo(ctx, chatID, FileID(msg), override, replyTo)

	case KindAnimation:
		return r.transport.SendAnimation(ctx, chatID, FileID(msg), override, replyTo)

	case KindDocument:
		return r.transport.SendDocument(ctx, chatID, FileID(msg), override, replyTo)

	case KindAudio:
		return r.transport.SendAudio(ctx, chatID, FileID(msg), override, replyTo)

	case KindVoice:
		return r.transport.SendVoice(ctx, chatID, FileID(msg), replyTo)

	case KindVideoNote:
		return r.transport.SendVideoNote(ctx, chatID, FileID(msg), replyTo)

	case KindSticker:
		return r.transport.SendSticker(ctx, chatID, FileID(msg), replyTo)

	default:
		return ErrUnsupported
	}
}
