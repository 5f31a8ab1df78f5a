package netstring

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const (
	DefaultReadChunk = 4096

	maxConsecutiveEmptyReads = 100
)

// Reader decodes items from an io.Reader. It owns the working buffer for
// the stream and is not safe for concurrent use.
type Reader struct {
	rd      io.Reader
	codec   *Codec
	buf     bytes.Buffer
	chunk   []byte
	readErr error
	err     error
}

// NewReader reads from rd in chunks of chunkSize bytes. A nil codec decodes
// without limits.
func NewReader(rd io.Reader, codec *Codec, chunkSize int) *Reader {
	if codec == nil {
		codec = &Codec{}
	}
	if chunkSize <= 0 {
		chunkSize = DefaultReadChunk
	}
	return &Reader{rd: rd, codec: codec, chunk: make([]byte, chunkSize)}
}

// ReadItem returns the next item. Buffered frames are drained before the
// underlying reader is touched again. io.EOF is returned on a clean frame
// boundary and io.ErrUnexpectedEOF when the stream ends mid-frame. The first
// error is sticky.
func (r *Reader) ReadItem() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	empty := 0
	for {
		item, ok, err := r.codec.Decode(&r.buf)
		if err != nil {
			r.err = err
			return "", err
		}
		if ok {
			return item, nil
		}
		if r.readErr != nil {
			err := r.readErr
			if errors.Is(err, io.EOF) && r.buf.Len() > 0 {
				err = io.ErrUnexpectedEOF
			}
			r.err = err
			return "", err
		}

		n, err := r.rd.Read(r.chunk)
		if n < 0 {
			n = 0
		}
		r.buf.Write(r.chunk[:n])
		if err != nil {
			r.readErr = err
			continue
		}
		if n == 0 {
			empty++
			if empty >= maxConsecutiveEmptyReads {
				r.readErr = io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}
}

// Buffered returns the number of received bytes not yet decoded.
func (r *Reader) Buffered() int {
	return r.buf.Len()
}

// Writer encodes items onto an io.Writer through a bufio.Writer.
type Writer struct {
	bw      *bufio.Writer
	codec   *Codec
	scratch bytes.Buffer
}

func NewWriter(w io.Writer, codec *Codec) *Writer {
	if codec == nil {
		codec = &Codec{}
	}
	return &Writer{bw: bufio.NewWriter(w), codec: codec}
}

// WriteItem buffers one frame. Call Flush to push it to the wire.
func (w *Writer) WriteItem(item string) error {
	w.scratch.Reset()
	if err := w.codec.Encode(item, &w.scratch); err != nil {
		return err
	}
	_, err := w.bw.Write(w.scratch.Bytes())
	return err
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}
