// Package delivery routes verification codes to the mail or SMS channel.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itsharenotes/signup/internal/domain"
	"github.com/itsharenotes/signup/internal/metrics"
)

// Message is one code delivery. Subject is ignored for SMS.
type Message struct {
	To      domain.Identifier
	Subject string
	Body    string
}

// Gateway sends a message over the channel matching the identifier kind.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

type mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

var errNoChannel = errors.New("channel not configured")

type gateway struct {
	mailer  mailer
	sms     smsSender
	timeout time.Duration
	metrics metrics.Recorder
}

type GatewayDeps struct {
	Mailer    mailer
	SMSSender smsSender
	Timeout   time.Duration
	Metrics   metrics.Recorder
}

// NewGateway returns a Gateway. Either channel may be nil; sends to a nil
// channel fail with ErrDeliveryFailed.
func NewGateway(deps GatewayDeps) Gateway {
	g := &gateway{
		mailer:  deps.Mailer,
		sms:     deps.SMSSender,
		timeout: deps.Timeout,
		metrics: deps.Metrics,
	}
	if g.timeout <= 0 {
		g.timeout = 10 * time.Second
	}
	if g.metrics == nil {
		g.metrics = metrics.Nop{}
	}
	return g
}

// Send blocks for at most the configured timeout; both channels receive the
// bounded context. Every failure, including the timeout itself, wraps
// domain.ErrDeliveryFailed.
func (g *gateway) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	err := g.dispatch(ctx, msg)
	g.metrics.RecordDelivery(string(msg.To.Kind), err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("send %s to %s: %v: %w", msg.To.Kind, msg.To.Masked(), err, domain.ErrDeliveryFailed)
	}
	return nil
}

func (g *gateway) dispatch(ctx context.Context, msg Message) error {
	switch msg.To.Kind {
	case domain.KindEmail:
		if g.mailer == nil {
			return errNoChannel
		}
		return g.mailer.SendEmail(ctx, msg.To.Value, msg.Subject, msg.Body)
	case domain.KindPhone:
		if g.sms == nil {
			return errNoChannel
		}
		return g.sms.SendSMS(ctx, msg.To.Value, msg.Body)
	default:
		return fmt.Errorf("unsupported identifier kind %q", msg.To.Kind)
	}
}
