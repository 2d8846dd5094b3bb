// Package notify implements outbound notification delivery: the batch
// dispatcher with per-recipient failure isolation, and the scheduled
// inactivity scan.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
	"github.com/phildaponte/senior-strength/internal/infra/metrics"
)

// PushSender delivers one push message. Implemented by the Expo client.
type PushSender interface {
	Send(ctx context.Context, msg domain.PushMessage) error
}

// EmailSender delivers one email. Implemented by the Postmark client.
type EmailSender interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// PushItem pairs a recipient with their push payload.
type PushItem struct {
	UserID  string
	Message domain.PushMessage
}

// EmailItem pairs a recipient with their email payload.
type EmailItem struct {
	UserID  string
	Message domain.EmailMessage
}

// Dispatcher sends batches over an external transport, one isolated send
// per recipient: a transport error is recorded in the result and never
// aborts the remaining sends.
type Dispatcher struct {
	push      PushSender
	email     EmailSender
	sendDelay time.Duration
}

// NewDispatcher creates a dispatcher. sendDelay is the courtesy pause
// between push sends to avoid burst-throttling by the transport.
func NewDispatcher(push PushSender, email EmailSender, sendDelay time.Duration) *Dispatcher {
	return &Dispatcher{push: push, email: email, sendDelay: sendDelay}
}

// DispatchPush sends each push message independently. Outcomes are in
// input order. Cancelling ctx stops between recipients; already-produced
// outcomes are returned.
func (d *Dispatcher) DispatchPush(ctx context.Context, items []PushItem) domain.BatchResult {
	var result domain.BatchResult
	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && d.sendDelay > 0 {
			time.Sleep(d.sendDelay)
		}

		outcome := domain.SendOutcome{UserID: item.UserID, Recipient: item.Message.Token}
		if err := d.push.Send(ctx, item.Message); err != nil {
			outcome.Error = err.Error()
			metrics.NotificationsFailed.WithLabelValues("push").Inc()
			log.Printf("[notify] push to user %s failed: %v", item.UserID, err)
		} else {
			outcome.Sent = true
			metrics.NotificationsSent.WithLabelValues("push").Inc()
		}
		result.Add(outcome)
	}
	return result
}

// DispatchEmail sends each email independently, same isolation rules as
// DispatchPush.
func (d *Dispatcher) DispatchEmail(ctx context.Context, items []EmailItem) domain.BatchResult {
	var result domain.BatchResult
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}

		outcome := domain.SendOutcome{UserID: item.UserID, Recipient: item.Message.To}
		if err := d.email.Send(ctx, item.Message); err != nil {
			outcome.Error = err.Error()
			metrics.NotificationsFailed.WithLabelValues("email").Inc()
			log.Printf("[notify] email to %s failed: %v", item.Message.To, err)
		} else {
			outcome.Sent = true
			metrics.NotificationsSent.WithLabelValues("email").Inc()
		}
		result.Add(outcome)
	}
	return result
}

// SendPush delivers one push message outside any batch (the explicit-send
// entry point).
func (d *Dispatcher) SendPush(ctx context.Context, msg domain.PushMessage) error {
	if err := d.push.Send(ctx, msg); err != nil {
		metrics.NotificationsFailed.WithLabelValues("push").Inc()
		return err
	}
	metrics.NotificationsSent.WithLabelValues("push").Inc()
	return nil
}

// SendEmail delivers one email outside any batch.
func (d *Dispatcher) SendEmail(ctx context.Context, msg domain.EmailMessage) error {
	if err := d.email.Send(ctx, msg); err != nil {
		metrics.NotificationsFailed.WithLabelValues("email").Inc()
		return err
	}
	metrics.NotificationsSent.WithLabelValues("email").Inc()
	return nil
}
