package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/danmuck/netstring/internal/netstring"
)

// Send dials addr, writes every item as one frame each and closes the
// connection. Cancelling ctx aborts the dial and any pending write.
func Send(ctx context.Context, addr string, codec *netstring.Codec, items []string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetWriteDeadline(time.Now())
	})
	defer stop()

	if err := WriteItems(conn, codec, items); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("send to %s: %w", addr, err)
	}
	return nil
}

// WriteItems encodes items onto w and flushes once.
func WriteItems(w io.Writer, codec *netstring.Codec, items []string) error {
	nw := netstring.NewWriter(w, codec)
	for _, item := range items {
		if err := nw.WriteItem(item); err != nil {
			return err
		}
	}
	return nw.Flush()
}
