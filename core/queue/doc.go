// Package queue provides a topic-based publish/subscribe message router with
// optional bounded replay history and optional mirroring to sibling execution
// contexts over a shared broadcast transport.
//
// # Core Components
//
// Queue owns the topic registry, the subscriber tables, the per-topic replay
// buffers, and (when configured) the broadcast bridge. Topics are registered
// by name and addressed afterwards by a dense, stable uint32 ID assigned in
// registration order. Registering a known name is idempotent and returns the
// existing ID.
//
// Message carries an immutable payload with its globally unique ID, topic ID,
// origin client ID, and creation timestamp. Handlers receive the full message
// and may fail independently: a handler error or panic is logged and never
// aborts delivery to the remaining subscribers, nor surfaces to the publisher.
//
// Future is returned by PublishAsync and resolves once the deferred publish
// has completed. Deferred publishes issued from the same instance run in
// issue order.
//
// # Basic Usage
//
//	q := queue.New()
//	defer q.Close()
//
//	topicID := q.RegisterTopic("orders")
//
//	subID, err := q.Subscribe(topicID, func(ctx context.Context, msg queue.Message) error {
//		fmt.Println("received:", msg.Payload)
//		return nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer q.Unsubscribe(topicID, subID)
//
//	if err := q.Publish(context.Background(), topicID, "order created"); err != nil {
//		log.Fatal(err)
//	}
//
// # Replay Buffers
//
// Each topic can retain its most recent messages in a fixed-capacity ring
// buffer for inspection by late subscribers:
//
//	_ = q.EnableBuffer(topicID, queue.DefaultBufferCapacity)
//	_ = q.Publish(ctx, topicID, 1)
//	_ = q.Publish(ctx, topicID, 2)
//	payloads := q.BufferedMessages(topicID) // [1, 2], oldest first
//
// # Cross-Context Mirroring
//
// A queue constructed with a broadcast transport mirrors every local publish
// to sibling instances on the same channel and re-dispatches inbound traffic
// locally. Topics are reconciled by name, since each instance assigns its own
// IDs; duplicate frames are suppressed by message ID, and inbound messages
// are never re-broadcast. Instances that join late request the siblings'
// buffered history once at startup.
//
//	a := queue.New(queue.WithChannelName("app-events"))
//	b := queue.New(queue.WithChannelName("app-events"))
//	defer a.Close()
//	defer b.Close()
//
//	// A subscriber on a receives what b publishes under the same topic name.
//
// Cross-process mirroring works the same way with an explicit transport:
//
//	tr, err := broadcast.NewRedis(ctx, client, "app-events")
//	if err != nil {
//		// Degrade to local-only operation.
//		tr = nil
//	}
//	q := queue.New(queue.WithBroadcast(tr))
//
// # Concurrency
//
// A Queue is safe for concurrent use. Handlers are invoked outside internal
// locks on a point-in-time snapshot of the subscriber list, so a handler may
// subscribe or unsubscribe (including removing itself) during dispatch;
// removal takes effect for subsequent deliveries.
package queue
