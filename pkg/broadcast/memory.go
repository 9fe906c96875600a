package broadcast

import (
	"context"
	"sync"
)

// Process-wide registry of named broadcast groups. Handles opened with the
// same name see each other's frames, mirroring the platform BroadcastChannel
// semantics within a single process.
var (
	groupsMu sync.Mutex
	groups   = make(map[string]*memoryGroup)
)

type memoryGroup struct {
	name string

	mu      sync.RWMutex
	members map[*MemoryChannel]struct{}
}

// register atomically resolves the named group and adds the handle to it,
// creating the group on first use.
func register(name string, ch *MemoryChannel) *memoryGroup {
	groupsMu.Lock()
	defer groupsMu.Unlock()

	g, ok := groups[name]
	if !ok {
		g = &memoryGroup{
			name:    name,
			members: make(map[*MemoryChannel]struct{}),
		}
		groups[name] = g
	}

	g.mu.Lock()
	g.members[ch] = struct{}{}
	g.mu.Unlock()

	return g
}

// MemoryChannel is an in-process Transport handle. All handles created with
// the same channel name form one broadcast group; a frame sent through one
// handle is delivered to every other live handle in the group, never back to
// the sender.
type MemoryChannel struct {
	group *memoryGroup
	recv  chan []byte

	mu     sync.Mutex
	closed bool
}

// MemoryOption configures a MemoryChannel.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	bufferSize int
}

// WithReceiveBuffer sets the inbound frame buffer size for the handle.
// Default is DefaultReceiveBuffer. When the buffer is full, further frames
// are dropped for this handle.
func WithReceiveBuffer(size int) MemoryOption {
	return func(o *memoryOptions) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// Channel opens an in-process broadcast handle on the named group.
//
// Example:
//
//	a := broadcast.Channel("app-events")
//	b := broadcast.Channel("app-events")
//	a.Send(ctx, frame) // received by b, not by a
func Channel(name string, opts ...MemoryOption) *MemoryChannel {
	o := memoryOptions{bufferSize: DefaultReceiveBuffer}
	for _, opt := range opts {
		opt(&o)
	}

	ch := &MemoryChannel{
		recv: make(chan []byte, o.bufferSize),
	}
	ch.group = register(name, ch)

	return ch
}

// Send delivers frame to every other live handle in the group. Slow handles
// with full buffers miss the frame; Send never blocks on them.
func (c *MemoryChannel) Send(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrTransportClosed
	}
	c.mu.Unlock()

	c.group.mu.RLock()
	defer c.group.mu.RUnlock()

	for member := range c.group.members {
		if member == c {
			continue
		}
		select {
		case member.recv <- frame:
		default:
			// Receiver buffer full; frame is dropped for this member.
		}
	}
	return nil
}

// Receive returns the channel of inbound frames.
func (c *MemoryChannel) Receive() <-chan []byte {
	return c.recv
}

// Close removes the handle from its group and closes the receive channel.
// The group itself is dropped from the process-wide registry once its last
// handle closes.
func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	groupsMu.Lock()
	c.group.mu.Lock()
	delete(c.group.members, c)
	if len(c.group.members) == 0 {
		delete(groups, c.group.name)
	}
	c.group.mu.Unlock()
	groupsMu.Unlock()

	close(c.recv)
	return nil
}
