package observability

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/netstring/internal/netstring"
)

// CodecLogger is a netstring.Observer that reports codec events on a
// zerolog logger. Frame events log at trace, failures at warn.
type CodecLogger struct {
	Logger zerolog.Logger
}

func NewCodecLogger(logger zerolog.Logger) CodecLogger {
	return CodecLogger{Logger: logger.With().Str("component", "codec").Logger()}
}

func (l CodecLogger) FrameDecoded(n int) {
	l.Logger.Trace().Int("payload_len", n).Msg("frame decoded")
}

func (l CodecLogger) FrameEncoded(n int) {
	l.Logger.Trace().Int("payload_len", n).Msg("frame encoded")
}

func (l CodecLogger) DecodeFailed(err error) {
	l.Logger.Warn().Err(err).Str("kind", netstring.Kind(err)).Msg("decode failed")
}

var _ netstring.Observer = CodecLogger{}

// NewObserver combines the logging and metrics observers.
func NewObserver(logger zerolog.Logger, metrics bool) netstring.Observer {
	if !metrics {
		return NewCodecLogger(logger)
	}
	return netstring.MultiObserver{NewCodecLogger(logger), Metrics{}}
}
