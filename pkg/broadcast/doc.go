// Package broadcast provides an opaque multicast transport abstraction with
// pluggable backends for mirroring messages across execution contexts.
//
// The package defines a single Transport interface (Send, Receive, Close)
// modeled as an append-only, fire-and-forget multicast channel: frames sent
// by one party reach every other party currently listening on the same named
// channel. Frames from a single sender arrive in send order; frames from
// distinct senders may interleave arbitrarily. There is no delivery to
// parties that were not listening at send time, and no backpressure: a slow
// consumer misses frames rather than slowing the sender down.
//
// # Backends
//
// Channel returns an in-process transport where all handles opened with the
// same name form one broadcast group (the analogue of the browser's
// BroadcastChannel within a single process). Frames are never echoed back to
// the sending handle.
//
// NewRedis adapts a Redis Pub/Sub channel, connecting contexts across
// processes and hosts. Note that Redis delivers published frames back to the
// publishing connection's subscribers as well; consumers that need echo
// suppression must deduplicate by origin (the queue's bridge does).
//
// NewWebSocket connects to a relay server that fans frames out to all other
// connected clients.
//
// # Usage
//
//	tr := broadcast.Channel("events")
//	defer tr.Close()
//
//	go func() {
//		for frame := range tr.Receive() {
//			handle(frame)
//		}
//	}()
//
//	err := tr.Send(ctx, []byte("payload"))
//
// # Slow Consumer Handling
//
// If a receiver's buffer is full, frames are dropped for that receiver rather
// than blocking the send. This prevents slow consumers from affecting other
// receivers or blocking the broadcaster.
package broadcast
