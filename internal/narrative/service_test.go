package narrative

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

type stubGenerator struct {
	briefing Briefing
	report   Report
	err      error
}

func (s stubGenerator) Briefing(context.Context) (Briefing, error) { return s.briefing, s.err }

func (s stubGenerator) Report(context.Context, arena.GameOverStats) (Report, error) {
	return s.report, s.err
}

func TestServiceFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		gen      Generator
		briefing Briefing
		report   Report
	}{
		{
			name:     "success",
			gen:      stubGenerator{briefing: Briefing{"T", "B"}, report: Report{"R", "C"}},
			briefing: Briefing{"T", "B"},
			report:   Report{"R", "C"},
		},
		{
			name:     "empty text",
			gen:      stubGenerator{err: ErrEmpty},
			briefing: EmptyBriefing,
			report:   EmptyReport,
		},
		{
			name:     "wrapped empty",
			gen:      stubGenerator{err: errors.Join(errors.New("wrapped"), ErrEmpty)},
			briefing: EmptyBriefing,
			report:   EmptyReport,
		},
		{
			name:     "transport error",
			gen:      stubGenerator{err: errors.New("connection refused")},
			briefing: ErrorBriefing,
			report:   ErrorReport,
		},
		{
			name:     "offline",
			gen:      Offline{},
			briefing: EmptyBriefing,
			report:   EmptyReport,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewService(tc.gen, nil)
			if got := s.Briefing(context.Background()); got != tc.briefing {
				t.Errorf("Briefing() = %+v, expected %+v", got, tc.briefing)
			}
			if got := s.Report(context.Background(), arena.GameOverStats{}); got != tc.report {
				t.Errorf("Report() = %+v, expected %+v", got, tc.report)
			}
		})
	}
}

func TestServiceFallbackTitles(t *testing.T) {
	if EmptyBriefing.Title != "Showtime!" || ErrorBriefing.Title != "Survival Time!" {
		t.Errorf("briefing fallbacks = %q, %q", EmptyBriefing.Title, ErrorBriefing.Title)
	}
	if EmptyReport.Rank != "Contestant" || ErrorReport.Rank != "Challenger" {
		t.Errorf("report fallbacks = %q, %q", EmptyReport.Rank, ErrorReport.Rank)
	}
}

func TestServiceAsync(t *testing.T) {
	s := NewService(stubGenerator{briefing: Briefing{"A", "B"}, report: Report{"C", "D"}}, nil)

	bch := s.AsyncBriefing(context.Background())
	if b := <-bch; b.Title != "A" {
		t.Errorf("AsyncBriefing() = %+v", b)
	}
	if _, ok := <-bch; ok {
		t.Error("briefing channel should be closed after one value")
	}

	rch := s.AsyncReport(context.Background(), arena.GameOverStats{Kills: 3})
	if r := <-rch; r.Rank != "C" {
		t.Errorf("AsyncReport() = %+v", r)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	if FromEnv(nil).Online() {
		t.Error("service without key should be offline")
	}

	t.Setenv(EnvAPIKey, "abc")
	t.Setenv(EnvModel, "m")
	s := FromEnv(nil)
	if !s.Online() {
		t.Fatal("service with key should be online")
	}
	c, ok := s.gen.(*Client)
	if !ok || c.model != "m" || c.apiKey != "abc" {
		t.Errorf("generator = %#v", s.gen)
	}
}
