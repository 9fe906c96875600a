package broadcast

import (
	"context"
	"errors"
)

// DefaultReceiveBuffer is the default per-receiver frame buffer size.
const DefaultReceiveBuffer = 64

var (
	// ErrTransportClosed is returned by Send after the transport has been closed.
	ErrTransportClosed = errors.New("broadcast: transport is closed")

	// ErrChannelUnavailable is returned when the underlying broadcast
	// primitive could not be created or reached.
	ErrChannelUnavailable = errors.New("broadcast: channel unavailable")
)

// Transport is an unordered-across-senders multicast channel. Implementations
// must deliver frames from a single sender in send order and must not echo a
// frame back to the handle that sent it, unless the backend makes echoes
// unavoidable (documented per implementation).
type Transport interface {
	// Send publishes a frame to every other listener on the channel.
	// It never blocks on slow receivers.
	Send(ctx context.Context, frame []byte) error

	// Receive returns the channel of inbound frames. The channel is closed
	// when the transport is closed.
	Receive() <-chan []byte

	// Close releases the channel handle. Close is idempotent.
	Close() error
}
