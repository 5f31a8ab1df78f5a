package netstring

import (
	"bytes"
	"testing"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"", "0:,", "5:hello,", "7:a,b:c,d,", "ab:xx,", "5:hello;", "005:hello,5:w"} {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		n, payload, err := Parse(data)
		if err != nil {
			if n != 0 || payload != nil {
				t.Fatalf("error consumed bytes: n=%d", n)
			}
			return
		}
		if n == 0 {
			return
		}
		if n > len(data) || data[n-1] != ',' {
			t.Fatalf("bad frame boundary n=%d in %q", n, data)
		}
		again, out, err := Parse(Append(nil, payload))
		if err != nil || !bytes.Equal(out, payload) || again != EncodedLen(len(payload)) {
			t.Fatalf("re-encode mismatch: %q -> %q (%v)", payload, out, err)
		}
	})
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("hello"), 3)
	f.Add([]byte(""), 1)
	f.Fuzz(func(t *testing.T, payload []byte, chunk int) {
		if chunk <= 0 || chunk > 64 {
			chunk = 1
		}
		wire := Append(Append(nil, payload), payload)
		var buf bytes.Buffer
		got := 0
		for off := 0; off < len(wire); off += chunk {
			end := min(off+chunk, len(wire))
			buf.Write(wire[off:end])
			for {
				n, out, err := Parse(buf.Bytes())
				if err != nil {
					t.Fatalf("parse: %v", err)
				}
				if n == 0 {
					break
				}
				if !bytes.Equal(out, payload) {
					t.Fatalf("payload mismatch: %q != %q", out, payload)
				}
				buf.Next(n)
				got++
			}
		}
		if got != 2 || buf.Len() != 0 {
			t.Fatalf("expected 2 frames and empty buffer, got %d frames %d left", got, buf.Len())
		}
	})
}
