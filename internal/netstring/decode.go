package netstring

import (
	"bytes"
	"fmt"
	"math"
)

// Parse extracts at most one frame from the front of buf.
//
// It returns the number of bytes the frame occupies and its payload, which
// aliases buf. consumed == 0 with a nil error means buf does not yet hold a
// complete frame; the caller should wait for more bytes. A non-nil error is
// fatal for the stream.
func Parse(buf []byte) (consumed int, payload []byte, err error) {
	return parse(buf, Unlimited())
}

func parse(buf []byte, limits Limits) (int, []byte, error) {
	colon := bytes.IndexByte(buf, ':')
	if colon < 0 {
		if limits.MaxLengthDigits > 0 && len(buf) > limits.MaxLengthDigits {
			return 0, nil, fmt.Errorf("%w: no colon within %d bytes", ErrMalformedLength, limits.MaxLengthDigits)
		}
		return 0, nil, nil
	}
	if limits.MaxLengthDigits > 0 && colon > limits.MaxLengthDigits {
		return 0, nil, fmt.Errorf("%w: length field is %d bytes wide", ErrMalformedLength, colon)
	}

	n, err := parseLength(buf[:colon])
	if err != nil {
		return 0, nil, err
	}
	if limits.MaxPayloadBytes > 0 && n > limits.MaxPayloadBytes {
		return 0, nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, n, limits.MaxPayloadBytes)
	}

	// colon + ':' + payload + ',' must fit in int.
	if n > math.MaxInt-colon-2 {
		return 0, nil, fmt.Errorf("%w: %d overflows frame size", ErrMalformedLength, n)
	}
	total := colon + 1 + n + 1
	if len(buf) < total {
		return 0, nil, nil
	}

	// The terminator is located by the declared length; the payload may
	// itself contain ',' and ':'.
	if term := buf[total-1]; term != ',' {
		return 0, nil, fmt.Errorf("%w: want ',' at offset %d, got %q", ErrTerminatorMismatch, total-1, term)
	}
	return total, buf[colon+1 : total-1], nil
}

func parseLength(field []byte) (int, error) {
	if len(field) == 0 {
		return 0, fmt.Errorf("%w: empty length field", ErrMalformedLength)
	}
	n := 0
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: non-digit %q in length field", ErrMalformedLength, c)
		}
		d := int(c - '0')
		if n > (math.MaxInt-d)/10 {
			return 0, fmt.Errorf("%w: length overflows int", ErrMalformedLength)
		}
		n = n*10 + d
	}
	return n, nil
}
