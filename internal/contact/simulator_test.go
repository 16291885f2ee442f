package contact

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BankCatalog/internal/locale"
)

func validForm() Form {
	return Form{
		Name:           "Ana Pérez",
		Email:          "ana@example.com",
		DocumentType:   "DNI",
		DocumentNumber: "12345678",
		Subject:        "Consulta",
		Message:        "Quisiera información sobre préstamos.",
	}
}

func newTestSimulator(draw float64) *Simulator {
	return &Simulator{
		Latency:     0,
		FailureRate: DefaultFailureRate,
		Draw:        func() float64 { return draw },
	}
}

func TestSimulator_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		draw    float64
		l       locale.Locale
		success bool
		kind    Kind
		msg     string
	}{
		{"accepted", 0.5, locale.ES, true, KindOK, "Mensaje enviado exitosamente"},
		{"rejected", 0.2, locale.ES, false, KindRejected, "Error al enviar el mensaje"},
		{"boundary is rejected", 0.3, locale.ES, false, KindRejected, "Error al enviar el mensaje"},
		{"english", 0.9, locale.EN, true, KindOK, "Message sent successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestSimulator(tt.draw).Submit(context.Background(), validForm(), tt.l)

			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.msg, res.Message)
			assert.NotEmpty(t, res.Reference)
		})
	}
}

func TestSimulator_WaitsForLatency(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := newTestSimulator(0.9)
	s.Latency = DefaultLatency
	s.Clock = fc

	done := make(chan Result, 1)
	go func() { done <- s.Submit(context.Background(), validForm(), locale.ES) }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	fc.Advance(DefaultLatency - time.Millisecond)
	select {
	case <-done:
		t.Fatal("submitted before the latency elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	fc.Advance(time.Millisecond)
	select {
	case res := <-done:
		assert.True(t, res.Success)
	case <-time.After(time.Second):
		t.Fatal("submission did not complete")
	}
}

func TestSimulator_CanceledContextIsConnectionError(t *testing.T) {
	s := newTestSimulator(0.9)
	s.Latency = DefaultLatency
	s.Clock = clockwork.NewFakeClock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := s.Submit(ctx, validForm(), locale.EN)
	assert.False(t, res.Success)
	assert.Equal(t, KindConnection, res.Kind)
	assert.Equal(t, "Connection error", res.Message)
}

type brokenClock struct{ clockwork.Clock }

func (brokenClock) NewTimer(time.Duration) clockwork.Timer { panic("timer unavailable") }

func TestSimulator_PanicIsConnectionError(t *testing.T) {
	s := newTestSimulator(0.9)
	s.Latency = DefaultLatency
	s.Clock = brokenClock{clockwork.NewFakeClock()}

	res := s.Submit(context.Background(), validForm(), locale.ES)
	assert.False(t, res.Success)
	assert.Equal(t, KindConnection, res.Kind)
	assert.Equal(t, "Error de conexión", res.Message)
}

func TestSimulator_RoughlySeventyPercentSucceed(t *testing.T) {
	s := NewSimulator(nil)
	s.Latency = 0

	const n = 2000
	ok := 0
	for range n {
		res := s.Submit(context.Background(), validForm(), locale.ES)
		require.NotEmpty(t, res.Message)
		if res.Success {
			ok++
		}
	}
	assert.InDelta(t, 0.7, float64(ok)/n, 0.06)
}
