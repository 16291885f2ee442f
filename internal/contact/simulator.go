package contact

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"BankCatalog/internal/locale"
)

const (
	DefaultLatency     = 1000 * time.Millisecond
	DefaultFailureRate = 0.3
)

// Simulator stands in for a backend: it waits Latency and then accepts the
// inquiry unless a uniform draw falls at or below FailureRate. Forwarder is
// the real replacement with the same contract.
type Simulator struct {
	Latency     time.Duration
	FailureRate float64
	Clock       clockwork.Clock
	Draw        func() float64
	Log         *zap.Logger
}

func NewSimulator(log *zap.Logger) *Simulator {
	return &Simulator{
		Latency:     DefaultLatency,
		FailureRate: DefaultFailureRate,
		Clock:       clockwork.NewRealClock(),
		Draw:        rand.Float64,
		Log:         log,
	}
}

func (s *Simulator) Submit(ctx context.Context, f Form, l locale.Locale) (res Result) {
	ref := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("contact simulator panicked", zap.String("reference", ref), zap.Any("panic", r))
			res = newResult(KindConnection, l, ref)
		}
	}()

	s.logger().Info("submitting contact form",
		zap.String("reference", ref),
		zap.String("subject", f.Subject),
		zap.String("document_type", f.DocumentType),
	)

	if err := s.wait(ctx); err != nil {
		s.logger().Warn("contact submission interrupted", zap.String("reference", ref), zap.Error(err))
		return newResult(KindConnection, l, ref)
	}

	if s.draw() <= s.FailureRate {
		return newResult(KindRejected, l, ref)
	}
	return newResult(KindOK, l, ref)
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.Latency <= 0 {
		return ctx.Err()
	}
	clock := s.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	t := clock.NewTimer(s.Latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait: %w", ctx.Err())
	case <-t.Chan():
		return nil
	}
}

func (s *Simulator) draw() float64 {
	if s.Draw == nil {
		return rand.Float64()
	}
	return s.Draw()
}

func (s *Simulator) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
