// Package logging configures the process logger and forwards lifecycle
// signals into it.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zoobzio/capitan"

	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/navigation"
)

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level string) (*slog.Logger, *slog.LevelVar) {
	if w == nil {
		w = os.Stdout
	}
	lv := &slog.LevelVar{}
	lv.Set(ParseLevel(level))
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})), lv
}

// HookSignals logs navigation and mail signals through logger.
func HookSignals(logger *slog.Logger) {
	capitan.Hook(navigation.TransitionAccepted, func(_ context.Context, e *capitan.Event) {
		from, _ := navigation.KeyFrom.From(e)
		to, _ := navigation.KeyTo.From(e)
		src, _ := navigation.KeySource.From(e)
		logger.Debug("section changed", "from", from, "to", to, "source", src)
	})
	capitan.Hook(navigation.IntentRejected, func(_ context.Context, e *capitan.Event) {
		in, _ := navigation.KeyIntent.From(e)
		errMsg, _ := navigation.KeyError.From(e)
		logger.Warn("navigation intent rejected", "intent", in, "error", errMsg)
	})
	capitan.Hook(navigation.HistoryWritten, func(_ context.Context, e *capitan.Event) {
		url, _ := navigation.KeyURL.From(e)
		logger.Debug("history replaced", "url", url)
	})
	capitan.Hook(mailer.MessageSent, func(_ context.Context, e *capitan.Event) {
		id, _ := mailer.KeyMessageID.From(e)
		logger.Info("contact message sent", "id", id)
	})
	capitan.Hook(mailer.MessageFailed, func(_ context.Context, e *capitan.Event) {
		id, _ := mailer.KeyMessageID.From(e)
		errMsg, _ := mailer.KeyError.From(e)
		logger.Error("contact message failed", "id", id, "error", errMsg)
	})
	capitan.Hook(mailer.SenderVerified, func(_ context.Context, e *capitan.Event) {
		logger.Info("email server is ready to send messages")
	})
}

// Shutdown drains pending signal deliveries.
func Shutdown() {
	capitan.Shutdown()
}
