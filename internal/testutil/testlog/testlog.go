package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/netstring/internal/logging"
)

// Start configures the test logging profile and returns a logger that
// writes through t.Log.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	logging.ConfigureTests()
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = zerolog.NewTestWriter(t)
		w.NoColor = true
		w.PartsExclude = []string{zerolog.TimestampFieldName}
	})).With().Str("test", t.Name()).Logger()
	logger.Debug().Msg("start")
	return logger
}
