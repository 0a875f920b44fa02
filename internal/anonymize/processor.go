package anonymize

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mymmrac/telego"

	"github.com/nextlevelbuilder/anonbot/internal/queue"
)

// defaultNoticeTTL is how long transient error notices stay in the chat.
const defaultNoticeTTL = 10 * time.Second

// User-facing notice texts for the delete/send failure taxonomy.
const (
	noticeForbidden = "⚠️ Failed to anonymize — insufficient permissions"
	noticeTooOld    = "⚠️ Telegram doesn't allow deleting this message (>48h)"
	noticeGeneric   = "⚠️ An error occurred, please try again"
)

// Options are the runtime knobs of the processor. They can be swapped at any
// time via SetOptions (config hot reload).
type Options struct {
	Prefix       string
	ErrorNotices bool
	RateLimitRPM int
}

// Processor orchestrates anonymization per inbound message: it decides
// between direct mode, queue (delayed) mode and pass-through, and drives
// delete-then-repost with error fallback. All dependencies are injected; the
// processor holds no global state.
type Processor struct {
	queue     *queue.Queue
	router    *Router
	transport Transport

	mu      sync.RWMutex
	opts    Options
	limiter *RateLimiter

	// noticeTTL is how long a notice stays before self-deleting.
	noticeTTL time.Duration

	// noticeCtx cancels outstanding notice self-delete timers on Close.
	noticeCtx    context.Context
	noticeCancel context.CancelFunc
	noticeWG     sync.WaitGroup
}

// NewProcessor wires the orchestrator together.
func NewProcessor(q *queue.Queue, r *Router, t Transport, opts Options) *Processor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		queue:        q,
		router:       r,
		transport:    t,
		opts:         opts,
		limiter:      NewRateLimiter(opts.RateLimitRPM),
		noticeTTL:    defaultNoticeTTL,
		noticeCtx:    ctx,
		noticeCancel: cancel,
	}
}

// SetOptions replaces the runtime options (hot reload).
func (p *Processor) SetOptions(opts Options) {
	p.mu.Lock()
	if opts.RateLimitRPM != p.opts.RateLimitRPM {
		p.limiter = NewRateLimiter(opts.RateLimitRPM)
	}
	p.opts = opts
	p.mu.Unlock()
	slog.Info("processor options updated", "prefix", opts.Prefix, "notices", opts.ErrorNotices)
}

// Close cancels outstanding notice timers and waits, bounded, for their
// goroutines to exit. Notices are cosmetic, so a slow cleanup delete is
// abandoned rather than allowed to block shutdown.
func (p *Processor) Close() {
	p.noticeCancel()

	done := make(chan struct{})
	go func() {
		p.noticeWG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		slog.Warn("notice timers did not exit before shutdown")
	}
}

func (p *Processor) options() Options {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts
}

// HandleMessage processes one inbound group message. Never returns an error:
// all failures are handled in-band (logged, optionally surfaced as a
// transient notice) so one bad event can not take the loop down.
func (p *Processor) HandleMessage(ctx context.Context, msg *telego.Message) {
	if msg == nil || msg.From == nil {
		return
	}
	if msg.Chat.Type != "group" && msg.Chat.Type != "supergroup" {
		return
	}

	opts := p.options()
	text := messageText(msg)

	if HasPrefix(text, opts.Prefix) {
		p.handleCommand(ctx, msg, text, opts)
		return
	}
	p.handleFollowUp(ctx, msg, opts)
}

// handleCommand processes a prefix-prefixed message: direct mode when it
// carries content, queue mode when it is the bare prefix.
func (p *Processor) handleCommand(ctx context.Context, msg *telego.Message, text string, opts Options) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	p.mu.RLock()
	limiter := p.limiter
	p.mu.RUnlock()
	if !limiter.Allow(userID) {
		slog.Debug("prefix command rate limited", "chat_id", chatID)
		return
	}

	stripped := StripPrefix(text, opts.Prefix)
	hasMedia := Classify(msg) != KindText && Classify(msg) != KindUnknown

	replyTo := 0
	if msg.ReplyToMessage != nil {
		replyTo = msg.ReplyToMessage.MessageID
	}

	if stripped == "" && !hasMedia {
		// Queue mode: bare prefix, content comes in a later message.
		slog.Debug("queuing for delayed anonymization", "chat_id", chatID)
		p.deleteOriginal(ctx, msg, opts)
		p.queue.Add(userID, chatID, replyTo)
		return
	}

	// Direct mode: prefix and content in the same message.
	slog.Debug("direct anonymization", "chat_id", chatID, "kind", Classify(msg).String())
	if !p.deleteOriginal(ctx, msg, opts) {
		// Never show both the original and the anonymized copy.
		return
	}
	p.repost(ctx, msg, stripped, replyTo, opts)
}

// handleFollowUp matches a non-prefixed message against the pending queue.
func (p *Processor) handleFollowUp(ctx context.Context, msg *telego.Message, opts Options) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !p.queue.Check(userID, chatID) {
		return // not our concern
	}

	// An empty follow-up does not consume the slot — the user may still send
	// real content before the timeout.
	if !HasContent(msg) {
		return
	}

	entry := p.queue.Pop(userID, chatID)
	if entry == nil {
		return // expired or raced with another event
	}

	slog.Debug("processing queued follow-up", "chat_id", chatID, "kind", Classify(msg).String())
	if !p.deleteOriginal(ctx, msg, opts) {
		return
	}

	// Keep the follow-up's own text/caption verbatim; there is no prefix on it.
	p.repost(ctx, msg, messageText(msg), entry.ReplyTo, opts)
}

// repost routes the anonymized copy and reports failures as a generic notice.
func (p *Processor) repost(ctx context.Context, msg *telego.Message, override string, replyTo int, opts Options) {
	err := p.router.Route(ctx, msg, override, replyTo)
	if err == nil {
		return
	}
	if errors.Is(err, ErrUnsupported) {
		// Nothing was deletable in the first place; stay silent.
		slog.Warn("unsupported content kind", "chat_id", msg.Chat.ID)
		return
	}
	slog.Error("repost failed", "chat_id", msg.Chat.ID, "error", err)
	p.sendNotice(ctx, msg.Chat.ID, noticeGeneric, opts)
}

// deleteOriginal removes the user's message and reports whether the repost
// may proceed. Distinct failure classes get distinct notices.
func (p *Processor) deleteOriginal(ctx context.Context, msg *telego.Message, opts Options) bool {
	err := p.transport.Delete(ctx, msg.Chat.ID, msg.MessageID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrDeleteForbidden):
		slog.Warn("no permission to delete", "chat_id", msg.Chat.ID)
		p.sendNotice(ctx, msg.Chat.ID, noticeForbidden, opts)
		return false
	case errors.Is(err, ErrDeleteTooOld):
		p.sendNotice(ctx, msg.Chat.ID, noticeTooOld, opts)
		return false
	default:
		slog.Error("delete failed", "chat_id", msg.Chat.ID, "error", err)
		p.sendNotice(ctx, msg.Chat.ID, noticeGeneric, opts)
		return false
	}
}

// sendNotice posts a transient notice that self-deletes after the TTL.
// Best-effort: failures are swallowed, and pending timers are cancelled on
// Close before the bounded join.
func (p *Processor) sendNotice(ctx context.Context, chatID int64, text string, opts Options) {
	if !opts.ErrorNotices {
		return
	}

	noticeID, err := p.transport.SendNotice(ctx, chatID, text)
	if err != nil {
		slog.Debug("notice send failed", "chat_id", chatID, "error", err)
		return
	}

	p.noticeWG.Add(1)
	go func() {
		defer p.noticeWG.Done()

		timer := time.NewTimer(p.noticeTTL)
		defer timer.Stop()

		select {
		case <-p.noticeCtx.Done():
			return
		case <-timer.C:
		}

		delCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.transport.Delete(delCtx, chatID, noticeID); err != nil {
			slog.Debug("notice cleanup failed", "chat_id", chatID, "error", err)
		}
	}()
}
