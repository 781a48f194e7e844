// Package logging constructs the application logger.
//
// Log lines go to the given writer as text and, when the journal socket is
// available, to the systemd journal as well.
package logging

import (
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// New builds a logger writing to w. Debug lowers the level to slog.LevelDebug.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}

	journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
		ReplaceGroup: toJournalKey,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	// No journal socket is the normal case outside systemd; log to the
	// writer only.
	if err == nil {
		handlers = append(handlers, journalHandler)
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// toJournalKey maps an attribute key to the journal field character set
// (uppercase ASCII letters, digits and underscore).
func toJournalKey(key string) string {
	key = strings.ToUpper(key)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, key)
}
