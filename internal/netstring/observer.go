package netstring

// Observer receives codec events. Implementations must be safe for
// concurrent use when the Codec is shared across connections.
type Observer interface {
	FrameDecoded(payloadLen int)
	FrameEncoded(payloadLen int)
	DecodeFailed(err error)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) FrameDecoded(int)   {}
func (NopObserver) FrameEncoded(int)   {}
func (NopObserver) DecodeFailed(error) {}

// MultiObserver fans events out in order.
type MultiObserver []Observer

func (m MultiObserver) FrameDecoded(n int) {
	for _, o := range m {
		o.FrameDecoded(n)
	}
}

func (m MultiObserver) FrameEncoded(n int) {
	for _, o := range m {
		o.FrameEncoded(n)
	}
}

func (m MultiObserver) DecodeFailed(err error) {
	for _, o := range m {
		o.DecodeFailed(err)
	}
}

var (
	_ Observer = NopObserver{}
	_ Observer = MultiObserver(nil)
)
