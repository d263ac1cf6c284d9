package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes events to a NATS server.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

// ConnectNATS dials url and returns a publisher. The connection reconnects
// indefinitely in the background.
func ConnectNATS(url, subjectPrefix string) (*NATSPublisher, error) {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}

	nc, err := nats.Connect(url,
		nats.Name("sponsordesk"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			slog.Error("nats error", "error", err)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			slog.Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{nc: nc, prefix: subjectPrefix}, nil
}

// Publish sends e with a de-duplication header.
func (p *NATSPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := nats.NewMsg(Subject(p.prefix, e))
	msg.Data = data
	msg.Header.Set("Nats-Msg-Id", MsgID(e))

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return err
	}
	return nil
}
