package interview

import (
	"encoding/json"
	"errors"
	"sync"
)

// fakeChannel is an in-memory Channel for tests. Outbound messages are
// mirrored on sentCh so tests can sequence against the session.
type fakeChannel struct {
	inbound chan []byte
	done    chan struct{}
	once    sync.Once

	mu     sync.Mutex
	sent   []any
	sentCh chan any
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		inbound: make(chan []byte, 64),
		done:    make(chan struct{}),
		sentCh:  make(chan any, 64),
	}
}

func (c *fakeChannel) Send(v any) error {
	select {
	case <-c.done:
		return errors.New("connection closed")
	default:
	}

	c.mu.Lock()
	c.sent = append(c.sent, v)
	c.mu.Unlock()

	c.sentCh <- v
	return nil
}

func (c *fakeChannel) Inbound() <-chan []byte {
	return c.inbound
}

func (c *fakeChannel) Disconnected() <-chan struct{} {
	return c.done
}

func (c *fakeChannel) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

// push marshals v and queues it as an inbound message.
func (c *fakeChannel) push(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	c.inbound <- data
}

func (c *fakeChannel) sentMessages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.sent))
	copy(out, c.sent)
	return out
}
