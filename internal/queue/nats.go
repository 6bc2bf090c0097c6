package queue

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/soltixdb/revenue/internal/utils"
)

// NATSPublisher publishes on core NATS subjects and flushes before
// returning so a nil error means the server received the message.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to url
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("revenue-service"), nats.Timeout(utils.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish publishes a message to a subject
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush subject %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Drain()
}
