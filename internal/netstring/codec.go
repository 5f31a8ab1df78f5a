package netstring

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// Config holds codec behavior.
type Config struct {
	Limits   Limits
	Observer Observer
}

func DefaultConfig() Config {
	return Config{
		Limits:   DefaultLimits(),
		Observer: NopObserver{},
	}
}

// Codec decodes and encodes text items. It keeps no per-stream state, so
// one Codec may serve many connections; each working buffer must only be
// used by one goroutine at a time. The zero value is unbounded and silent.
type Codec struct {
	limits   Limits
	observer Observer
}

func New(cfg Config) *Codec {
	return &Codec{limits: cfg.Limits, observer: cfg.Observer}
}

func (c *Codec) Limits() Limits {
	return c.limits
}

func (c *Codec) obs() Observer {
	if c.observer == nil {
		return NopObserver{}
	}
	return c.observer
}

// Parse is the package Parse with the codec limits applied.
func (c *Codec) Parse(buf []byte) (int, []byte, error) {
	return parse(buf, c.limits)
}

// Decode extracts at most one item from the front of buf.
//
// On success the frame is removed from buf and ok is true. When buf holds
// no complete frame, ok is false, err is nil and buf is untouched. Any
// error is fatal for the stream; buf is left as it was.
func (c *Codec) Decode(buf *bytes.Buffer) (item string, ok bool, err error) {
	n, payload, err := parse(buf.Bytes(), c.limits)
	if err != nil {
		c.obs().DecodeFailed(err)
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}
	if !utf8.Valid(payload) {
		err := fmt.Errorf("%w: payload of %d bytes is not valid UTF-8", ErrInvalidPayload, len(payload))
		c.obs().DecodeFailed(err)
		return "", false, err
	}
	item = string(payload)
	buf.Next(n)
	c.obs().FrameDecoded(len(item))
	return item, true, nil
}

// DecodeAll drains every complete item currently in buf.
func (c *Codec) DecodeAll(buf *bytes.Buffer) ([]string, error) {
	var items []string
	for {
		item, ok, err := c.Decode(buf)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

// Encode appends the frame of item to dst.
func (c *Codec) Encode(item string, dst *bytes.Buffer) error {
	if c.limits.MaxPayloadBytes > 0 && len(item) > c.limits.MaxPayloadBytes {
		return fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(item), c.limits.MaxPayloadBytes)
	}
	size := EncodedLen(len(item))
	if size < 0 {
		return fmt.Errorf("%w: %d overflows frame size", ErrPayloadTooLarge, len(item))
	}
	dst.Grow(size)
	dst.Write(AppendString(dst.AvailableBuffer(), item))
	c.obs().FrameEncoded(len(item))
	return nil
}

// SplitFunc returns a bufio.SplitFunc yielding raw payloads under the codec
// limits. Payloads are not checked for UTF-8.
func (c *Codec) SplitFunc() bufio.SplitFunc {
	limits := c.limits
	return func(data []byte, atEOF bool) (int, []byte, error) {
		return splitFrames(data, atEOF, limits)
	}
}

// ScanFrames is a bufio.SplitFunc that yields netstring payloads without
// limits.
func ScanFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	return splitFrames(data, atEOF, Unlimited())
}

func splitFrames(data []byte, atEOF bool, limits Limits) (int, []byte, error) {
	n, payload, err := parse(data, limits)
	if err != nil {
		return 0, nil, err
	}
	if n > 0 {
		return n, payload, nil
	}
	if atEOF && len(data) > 0 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	return 0, nil, nil
}
