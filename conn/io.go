package conn

import "context"

// Serve runs c's I/O task: it concurrently decodes frames from the socket
// into Inbound and encodes frames from Outbound to the socket, until the
// reader errors, the outbound queue closes, or c is cancelled. On exit it
// cancels c, so the tick loop's reap system destroys the entity on its
// next pass.
//
// Run this in its own goroutine, one per connection, cooperatively
// scheduled the same way Go schedules any blocking-on-channel goroutine.
func Serve(ctx context.Context, c *Connection) {
	readCtx, stopRead := context.WithCancel(ctx)
	defer stopRead()
	go func() {
		select {
		case <-c.Done():
			stopRead()
		case <-readCtx.Done():
		}
	}()

	readErr := make(chan error, 1)
	go c.readLoop(readCtx, readErr)

	defer c.Cancel()

	for {
		select {
		case <-readErr:
			return

		case p, ok := <-c.Outbound:
			if !ok {
				return
			}
			if err := c.WriteFrame(p); err != nil {
				return
			}

		case <-c.Done():
			return

		case <-ctx.Done():
			return
		}
	}
}

// readLoop decodes frames and pushes them into Inbound until it hits an
// error, the connection is cancelled, or ctx is done. It reports its
// terminal error on done: nil when cancellation interrupts a queue send,
// the context's error when it interrupts the rate-limiter wait.
func (c *Connection) readLoop(ctx context.Context, done chan<- error) {
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			done <- err
			return
		}

		p, err := c.ReadFrame()
		if err != nil {
			done <- err
			return
		}

		select {
		case c.Inbound <- p:
		case <-ctx.Done():
			done <- nil
			return
		}
	}
}
