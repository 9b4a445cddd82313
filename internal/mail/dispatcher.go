package mail

import (
	"context"
	"sync"
	"time"

	"github.com/repowise/waitlist-api/internal/log"
	"github.com/repowise/waitlist-api/pkg/circuitbreaker"
)

// ErrorSink receives delivery failures from fire-and-forget dispatches.
// Failures must be observable somewhere even though they never propagate to
// the request that triggered the send.
type ErrorSink interface {
	NotificationFailed(email string, err error)
}

type logSink struct {
	logger *log.Logger
}

func (s *logSink) NotificationFailed(email string, err error) {
	s.logger.Error("Welcome email delivery failed", "email", email, "error", err)
}

const dispatchTimeout = 15 * time.Second

// Dispatcher wraps a Mailer with the fire-and-forget contract: DispatchWelcome
// never blocks the caller and never returns an error. SMTP calls pass through
// a circuit breaker so a dead relay stops burning goroutines quickly.
type Dispatcher struct {
	mailer  Mailer
	breaker circuitbreaker.CircuitBreaker
	sink    ErrorSink
	logger  *log.Logger
	wg      sync.WaitGroup
}

// NewDispatcher builds a dispatcher. A nil mailer puts the dispatcher in
// drop mode (sends are logged and discarded), which is how the service runs
// without SMTP credentials. A nil sink defaults to the logger.
func NewDispatcher(mailer Mailer, logger *log.Logger, sink ErrorSink) *Dispatcher {
	if sink == nil {
		sink = &logSink{logger: logger}
	}
	return &Dispatcher{
		mailer:  mailer,
		breaker: circuitbreaker.NewCircuitBreaker(nil),
		sink:    sink,
		logger:  logger,
	}
}

// DispatchWelcome sends the welcome email on a background goroutine. The send
// is detached from the request context: the signup response must not wait for
// SMTP, and the request finishing must not cancel the delivery.
func (d *Dispatcher) DispatchWelcome(ctx context.Context, email, referralCode string) {
	logger := log.FromContext(ctx, d.logger)

	if d.mailer == nil {
		logger.Info("SMTP not configured; dropping welcome email", "email", email)
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.send(sendCtx, email, referralCode); err != nil {
			d.sink.NotificationFailed(email, err)
		}
	}()
}

// SendWelcome delivers synchronously. Used by the admin resend path, where the
// caller wants to know whether the send worked.
func (d *Dispatcher) SendWelcome(ctx context.Context, email, referralCode string) error {
	if d.mailer == nil {
		log.FromContext(ctx, d.logger).Info("SMTP not configured; dropping welcome email", "email", email)
		return nil
	}
	return d.send(ctx, email, referralCode)
}

func (d *Dispatcher) send(ctx context.Context, email, referralCode string) error {
	return d.breaker.Call(func() error {
		return d.mailer.SendWelcome(ctx, email, referralCode)
	})
}

// Wait blocks until all in-flight dispatches finish. Test hook.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
