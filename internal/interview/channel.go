package interview

// Channel is the duplex message channel one session runs over. The concrete
// transport lives in internal/websocket; tests substitute an in-memory pair.
type Channel interface {
	// Send marshals v as JSON and queues it for the peer. Returns an error
	// once the peer is gone.
	Send(v any) error

	// Inbound yields raw inbound messages in arrival order.
	Inbound() <-chan []byte

	// Disconnected is closed once the peer connection is gone.
	Disconnected() <-chan struct{}

	// Close tears the channel down. Safe to call more than once.
	Close() error
}
