package pipeline

import (
	"context"

	"user-gate/internal/notify"
	gate_errors "user-gate/pkg/errors"
	"user-gate/pkg/logger"
)

// Runner starts background work without blocking the caller.
type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error) bool
}

// Limiter throttles repeated alerts for the same fingerprint.
type Limiter interface {
	Allow(ctx context.Context, fingerprint string) (bool, error)
}

type AlertConfig struct {
	From notify.Address
	To   string
}

// AlertStage submits an alert for every error and forwards immediately. The
// send runs on the runner, so the response never waits for the relay.
type AlertStage struct {
	sender  notify.Sender
	runner  Runner
	cfg     AlertConfig
	limiter Limiter
	logger  *logger.Logger
}

func NewAlertStage(sender notify.Sender, runner Runner, cfg AlertConfig, l *logger.Logger) *AlertStage {
	return &AlertStage{sender: sender, runner: runner, cfg: cfg, logger: l}
}

// WithLimiter enables throttling. When the limiter fails the alert is sent
// anyway.
func (s *AlertStage) WithLimiter(l Limiter) *AlertStage {
	s.limiter = l
	return s
}

func (s *AlertStage) Name() string { return "alert" }

func (s *AlertStage) Handle(ctx context.Context, err *gate_errors.AppError) (Result, bool) {
	msg := notify.NewAlert(s.cfg.From, s.cfg.To, err)
	log := s.logger.WithContext(ctx)

	// The request context is canceled once the response is written.
	bg := context.WithoutCancel(ctx)
	fingerprint := err.Name + "|" + err.Message
	s.runner.Go(bg, func(ctx context.Context) error {
		if s.limiter != nil {
			allowed, limitErr := s.limiter.Allow(ctx, fingerprint)
			if limitErr != nil {
				log.Warnf("alert limiter unavailable: %v", limitErr)
			} else if !allowed {
				log.Infof("error alert throttled: %s", fingerprint)
				return nil
			}
		}
		outcome, sendErr := s.sender.Send(ctx, msg)
		if sendErr != nil {
			log.Warnf("error alert not delivered: %v", sendErr)
			return sendErr
		}
		log.Infof("error alert delivered: %s", outcome)
		return nil
	})
	return Result{}, false
}
