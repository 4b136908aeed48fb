// Package telemetry holds the OpenTelemetry instruments the hosts record
// session activity with. Instruments come from the global meter provider and
// are no-ops unless an SDK provider has been installed.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

const instrumentationName = "github.com/vovakirdan/zone-arena/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics records session lifecycle and tick timing.
type Metrics struct {
	sessions  metric.Int64Counter
	gameOvers metric.Int64Counter
	kills     metric.Int64Counter
	tickTime  metric.Float64Histogram
	active    metric.Int64ObservableGauge
}

// New creates the instruments on the global meter. active, when not nil,
// reports the number of connected players for the active gauge.
func New(active func() int) (*Metrics, error) {
	return NewWithMeter(meter(), active)
}

// NewWithMeter creates the instruments on m.
func NewWithMeter(m metric.Meter, active func() int) (*Metrics, error) {
	mt := &Metrics{}

	var err error
	mt.sessions, err = m.Int64Counter(
		"arena.sessions.started",
		metric.WithDescription("Sessions started, restarts included"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	mt.gameOvers, err = m.Int64Counter(
		"arena.sessions.ended",
		metric.WithDescription("Sessions that reached game over"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating game over counter: %w", err)
	}

	mt.kills, err = m.Int64Counter(
		"arena.kills",
		metric.WithDescription("Enemies killed in finished sessions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	mt.tickTime, err = m.Float64Histogram(
		"arena.tick.duration",
		metric.WithDescription("Wall time spent in one simulation tick"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick histogram: %w", err)
	}

	if active != nil {
		mt.active, err = m.Int64ObservableGauge(
			"arena.players.active",
			metric.WithDescription("Currently connected players"),
		)
		if err != nil {
			return nil, fmt.Errorf("creating active gauge: %w", err)
		}
		_, err = m.RegisterCallback(
			func(ctx context.Context, o metric.Observer) error {
				o.ObserveInt64(mt.active, int64(active()))
				return nil
			},
			mt.active,
		)
		if err != nil {
			return nil, fmt.Errorf("registering active callback: %w", err)
		}
	}

	return mt, nil
}

// SessionStarted counts a new session for setup.
func (m *Metrics) SessionStarted(ctx context.Context, setup arena.Setup) {
	if m == nil {
		return
	}
	m.sessions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("difficulty", string(setup.Difficulty)),
		attribute.String("class", string(setup.Class)),
	))
}

// GameOver counts a finished session and its kills.
func (m *Metrics) GameOver(ctx context.Context, stats arena.GameOverStats) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("difficulty", string(stats.Difficulty)),
		attribute.String("class", string(stats.Class)),
	)
	m.gameOvers.Add(ctx, 1, attrs)
	m.kills.Add(ctx, int64(stats.Kills), attrs)
}

// TickDone records the wall time of one tick.
func (m *Metrics) TickDone(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.tickTime.Record(ctx, float64(d)/float64(time.Millisecond))
}
