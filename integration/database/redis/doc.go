// Package redis provides Redis client initialization and health checking,
// used here to back the broadcast Redis transport for cross-process message
// mirroring.
//
// Connect validates the connection URL, attempts connection with retries and
// verifies connectivity with a ping before returning the client. Healthcheck
// returns a probe function suitable for readiness endpoints.
//
// Configuration is handled through the Config struct with environment
// variable mapping, loadable via core/config:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	tr, err := broadcast.NewRedis(ctx, client, "app-events")
//	if err != nil {
//		tr = nil // queue degrades to local-only
//	}
//	q := queue.New(queue.WithBroadcast(tr))
//
// Both redis:// and rediss:// (TLS) URL schemes are supported. Errors are
// stable sentinels checkable with errors.Is.
package redis
