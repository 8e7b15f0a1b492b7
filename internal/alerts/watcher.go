package alerts

import (
	"context"
	"fmt"
	"sync"

	"tryvohabot/internal/notifier"
	kit "tryvohabot/internal/transport"
	logx "tryvohabot/pkg/logx"
)

// Fetcher yields the current alert signal. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context) (bool, error)
}

// Sender delivers composed messages. *notifier.Service implements it.
type Sender interface {
	Notify(ctx context.Context, n notifier.Notification) error
}

// Watcher turns the polled signal into edge-triggered notifications.
//
// Poll holds w.mu for its whole body, so overlapping fires serialize: a slow
// fetch delays, never duplicates, the comparison against the last-known state.
type Watcher struct {
	log    logx.Logger
	fetch  Fetcher
	send   Sender
	chatID int64

	mu   sync.Mutex
	last *bool
}

func NewWatcher(fetch Fetcher, send Sender, chatID int64, log logx.Logger) *Watcher {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Watcher{log: log, fetch: fetch, send: send, chatID: chatID}
}

// Poll fetches the signal once and notifies on a state change.
//
// Rules, in order:
//   - fetch failure or cancellation: state untouched, error returned
//     (logged by the trigger)
//   - first successful observation: prime the state, no message
//   - same value as last: no message
//   - changed value: store the new value, then send exactly one of the two
//     transition messages
func (w *Watcher) Poll(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	active, err := w.fetch.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if w.last == nil {
		v := active
		w.last = &v
		w.log.Info("alert state primed", logx.Bool("active", active))
		return nil
	}
	if *w.last == active {
		return nil
	}

	*w.last = active
	w.log.Info("alert state changed", logx.Bool("active", active))

	n := notifier.Notification{
		Target:  kit.ChatTarget{ChatID: w.chatID},
		Text:    MessageFor(active),
		Options: &kit.SendOptions{ParseMode: "Markdown"},
	}
	if err := w.send.Notify(ctx, n); err != nil {
		// State already advanced: the transition is lost for this recipient
		// rather than retried (at-most-once).
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// Last reports the last observed signal (ok=false before the first
// successful poll).
func (w *Watcher) Last() (active bool, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return false, false
	}
	return *w.last, true
}
