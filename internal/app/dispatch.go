package app

import (
	"context"
	"runtime/debug"
	"strings"

	kit "tryvohabot/internal/transport"
	logx "tryvohabot/pkg/logx"
)

// dispatch routes inbound updates for the life of the process.
// Handler failures are logged at this boundary and never stop the loop.
func (a *App) dispatch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case up := <-a.updates:
			if up.Message == nil {
				continue
			}
			a.handleMessage(ctx, up.Message)
		}
	}
}

func (a *App) handleMessage(ctx context.Context, m *kit.Message) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("message handler panic",
				logx.Any("panic", r),
				logx.String("stack", string(debug.Stack())))
		}
	}()

	if a.rozklad == nil {
		return
	}

	cmd, isCommand := parseCommand(m.Text)
	if isCommand {
		if cmd != "rozklad" {
			return // unknown commands are ignored
		}
		if err := a.rozklad.HandleCommand(ctx, m); err != nil {
			a.log.Warn("rozklad command failed", logx.Int64("chat_id", m.ChatID), logx.Err(err))
		}
		return
	}

	if err := a.rozklad.HandleText(ctx, m); err != nil {
		a.log.Warn("rozklad reply failed", logx.Int64("chat_id", m.ChatID), logx.Err(err))
	}
}

// parseCommand extracts a bot command name from message text.
// "/rozklad@SomeBot arg" yields ("rozklad", true).
func parseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	token := text[1:]
	if i := strings.IndexAny(token, " \t\n"); i >= 0 {
		token = token[:i]
	}
	if i := strings.IndexByte(token, '@'); i >= 0 {
		token = token[:i]
	}
	if token == "" {
		return "", false
	}
	return strings.ToLower(token), true
}
