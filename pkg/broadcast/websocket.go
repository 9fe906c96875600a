package broadcast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsWriteTimeout bounds a single frame write so a dead peer cannot block
// the sender indefinitely.
const wsWriteTimeout = 10 * time.Second

// WebSocketTransport connects execution contexts through a relay server:
// every binary frame written by one client is fanned out by the relay to all
// other connected clients. The relay is expected not to echo frames back to
// their sender.
type WebSocketTransport struct {
	conn *websocket.Conn
	recv chan []byte

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error

	mu     sync.Mutex
	closed bool
}

// NewWebSocket dials the relay at url (ws:// or wss://) and returns a
// transport over the connection.
func NewWebSocket(ctx context.Context, url string, opts ...MemoryOption) (*WebSocketTransport, error) {
	o := memoryOptions{bufferSize: DefaultReceiveBuffer}
	for _, opt := range opts {
		opt(&o)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelUnavailable, err)
	}

	t := &WebSocketTransport{
		conn: conn,
		recv: make(chan []byte, o.bufferSize),
	}

	go t.readLoop()

	return t, nil
}

// readLoop pumps inbound frames into the receive channel until the
// connection drops or the transport is closed.
func (t *WebSocketTransport) readLoop() {
	defer close(t.recv)

	for {
		_, frame, err := t.conn.ReadMessage()
		if err != nil {
			return
		}
		select {
		case t.recv <- frame:
		default:
			// Receiver buffer full; frame is dropped.
		}
	}
}

// Send writes the frame as a binary message to the relay.
func (t *WebSocketTransport) Send(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return ErrTransportClosed
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	deadline := time.Now().Add(wsWriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = t.conn.SetWriteDeadline(deadline)

	if err := t.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("broadcast: websocket write failed: %w", err)
	}
	return nil
}

// Receive returns the channel of inbound frames.
func (t *WebSocketTransport) Receive() <-chan []byte {
	return t.recv
}

// Close sends a close frame on a best-effort basis and tears down the
// connection, which also stops the read loop.
func (t *WebSocketTransport) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()

		t.writeMu.Lock()
		_ = t.conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = t.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		t.writeMu.Unlock()

		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}
