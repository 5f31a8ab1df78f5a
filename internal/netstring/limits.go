package netstring

// Limits constrains decode/encode memory use. Zero fields are unbounded.
type Limits struct {
	// MaxPayloadBytes caps the declared payload length.
	MaxPayloadBytes int
	// MaxLengthDigits caps the width of the length field, leading zeros
	// included. A stream that sends this many bytes without a colon is
	// rejected instead of buffered forever.
	MaxLengthDigits int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 8 * 1024 * 1024,
		MaxLengthDigits: 20,
	}
}

// Unlimited returns limits that only reject lengths overflowing int.
func Unlimited() Limits {
	return Limits{}
}
