package net

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

// Watch dials the feed at url and calls fn for every message until ctx is
// done or the connection drops. A cancelled ctx is not an error.
func Watch(ctx context.Context, url string, fn func(FeedMessage)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var msg FeedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read from %s: %w", url, err)
		}
		fn(msg)
	}
}
