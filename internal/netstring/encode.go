package netstring

import (
	"math"
	"strconv"
)

// Append appends the frame of payload to dst and returns the extended slice.
func Append(dst, payload []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(payload)), 10)
	dst = append(dst, ':')
	dst = append(dst, payload...)
	return append(dst, ',')
}

// AppendString is Append for text items.
func AppendString(dst []byte, item string) []byte {
	dst = strconv.AppendInt(dst, int64(len(item)), 10)
	dst = append(dst, ':')
	dst = append(dst, item...)
	return append(dst, ',')
}

// EncodedLen returns the frame size of an n byte payload, or -1 when it
// does not fit in int.
func EncodedLen(n int) int {
	digits := lengthDigits(n)
	if n > math.MaxInt-digits-2 {
		return -1
	}
	return digits + 1 + n + 1
}

func lengthDigits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
