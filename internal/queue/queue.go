// Package queue implements the pending anonymization queue for delayed mode.
//
// A user who sends the bare prefix gets an entry here; their next message in
// the same chat (within the timeout) is the content to anonymize. Everything
// is in-memory only and auto-expires — nothing is ever persisted, and entries
// are lost on restart by design.
package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// sweepInterval is how often expired entries are removed in the background.
// Check and Pop validate expiry themselves; the sweep only reclaims memory
// from abandoned requests.
const sweepInterval = 10 * time.Second

// Entry is a pending anonymization request for one (chat, user) pair.
type Entry struct {
	UserID    int64
	ChatID    int64
	ExpiresAt time.Time
	ReplyTo   int // message ID the eventual repost should reply to (0 = none)
}

type key struct {
	chatID int64
	userID int64
}

// Queue is a thread-safe map of pending requests with expiry.
// At most one live entry exists per (chat, user) key; Add overwrites.
type Queue struct {
	mu      sync.Mutex
	entries map[key]Entry
	timeout time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a queue whose entries expire after timeout.
func New(timeout time.Duration) *Queue {
	return &Queue{
		entries: make(map[key]Entry),
		timeout: timeout,
	}
}

// Start launches the background sweep loop.
func (q *Queue) Start(ctx context.Context) {
	sweepCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.done = make(chan struct{})

	go q.sweepLoop(sweepCtx)
	slog.Info("pending queue started", "timeout", q.Timeout())
}

// Stop cancels the sweep loop and waits for it to exit, guaranteeing no
// further access to the map after return.
func (q *Queue) Stop() {
	if q.cancel != nil {
		q.cancel()
	}
	if q.done != nil {
		<-q.done
	}
	slog.Info("pending queue stopped")
}

// Add registers a pending request. An existing entry for the same
// (chat, user) is replaced with a fresh expiry — last request wins.
func (q *Queue) Add(userID, chatID int64, replyTo int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries[key{chatID, userID}] = Entry{
		UserID:    userID,
		ChatID:    chatID,
		ExpiresAt: time.Now().Add(q.timeout),
		ReplyTo:   replyTo,
	}
	// No user or chat identifiers in the log, on purpose.
	slog.Debug("queue entry added", "size", len(q.entries))
}

// Check reports whether the user has a live (non-expired) pending request in
// the chat. Pure read; never mutates the queue.
func (q *Queue) Check(userID, chatID int64) bool {
	q.mu.Lock()
	entry, ok := q.entries[key{chatID, userID}]
	q.mu.Unlock()

	return ok && entry.ExpiresAt.After(time.Now())
}

// Pop removes the entry for the key and returns it if it was still live.
// An expired entry is removed too but nil is returned — popping consumes the
// slot either way, so a stale request can never be matched twice.
func (q *Queue) Pop(userID, chatID int64) *Entry {
	q.mu.Lock()
	entry, ok := q.entries[key{chatID, userID}]
	if ok {
		delete(q.entries, key{chatID, userID})
	}
	q.mu.Unlock()

	if !ok || !entry.ExpiresAt.After(time.Now()) {
		return nil
	}
	slog.Debug("queue entry popped")
	return &entry
}

// Len returns the number of entries, expired ones included.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Timeout returns the current entry lifetime.
func (q *Queue) Timeout() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.timeout
}

// SetTimeout changes the lifetime applied to future Add calls.
// Existing entries keep their original expiry.
func (q *Queue) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	q.mu.Lock()
	q.timeout = d
	q.mu.Unlock()
}

func (q *Queue) sweepLoop(ctx context.Context) {
	defer close(q.done)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.sweep(time.Now())
		}
	}
}

// sweep removes every entry whose expiry has passed.
func (q *Queue) sweep(now time.Time) {
	q.mu.Lock()
	removed := 0
	for k, entry := range q.entries {
		if !entry.ExpiresAt.After(now) {
			delete(q.entries, k)
			removed++
		}
	}
	q.mu.Unlock()

	if removed > 0 {
		slog.Debug("queue sweep removed expired entries", "count", removed)
	}
}
