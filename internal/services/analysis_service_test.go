package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessprofile/internal/analysis"
	"github.com/vytor/chessprofile/internal/engine"
	apperrors "github.com/vytor/chessprofile/internal/errors"
	"github.com/vytor/chessprofile/internal/models"
	"github.com/vytor/chessprofile/internal/profile"
)

// stubGameService returns a canned batch without touching the network.
type stubGameService struct {
	records []models.GameRecord
}

func (s *stubGameService) FetchGames(ctx context.Context, username, timeFilter string) ([]models.GameRecord, error) {
	return s.records, nil
}

// fakeSession scores every position the same; the pipeline around it stays
// real.
type fakeSession struct {
	resets int
}

func (f *fakeSession) Reset(ctx context.Context) error {
	f.resets++
	return nil
}

func (f *fakeSession) Evaluate(ctx context.Context, moves []string, depth int) (engine.Evaluation, error) {
	return engine.Evaluation{Type: engine.EvalCentipawn, Value: 10}, nil
}

type stubEnginePool struct {
	session  EngineSession
	released int
}

func (p *stubEnginePool) Acquire(ctx context.Context) (EngineSession, error) {
	return p.session, nil
}

func (p *stubEnginePool) Release(EngineSession) {
	p.released++
}

func TestAnalyzePlayerRequiresUsername(t *testing.T) {
	svc := NewAnalyzeService(&stubGameService{}, nil, nil, nil, nil, 10)

	_, err := svc.AnalyzePlayer(context.Background(), "   ", "all")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestAnalyzePlayerNoGamesIsEmptySuccess(t *testing.T) {
	svc := NewAnalyzeService(&stubGameService{}, nil, nil, nil, nil, 10)

	report, err := svc.AnalyzePlayer(context.Background(), "ghost", "all")
	require.NoError(t, err)

	assert.Equal(t, "ghost", report.Username)
	assert.Zero(t, report.TotalGames)
	assert.Zero(t, report.GamesAnalyzed)
	assert.Empty(t, report.Evaluations)
	assert.Empty(t, report.Blunders)
	assert.Empty(t, report.OpeningStats)
	assert.Equal(t, profile.Unknown, report.PlayerProfile.PrimaryProfile)
	assert.Contains(t, report.PlayerProfile.Description, "ghost")
}

// Only games that parse and yield at least one rated subject move count as
// analyzed; the rest of the batch keeps going and the aggregate averages over
// the analyzed games alone.
func TestAnalyzePlayerSkipsBadGamesAndCountsTheRest(t *testing.T) {
	const goodPGN = `[Event "Live Chess"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0`

	records := []models.GameRecord{
		// 4 subject moves, analyzes cleanly.
		{PGN: goodPGN, PlayedAs: "white", Outcome: "win"},
		// Does not parse.
		{PGN: "garbage %%", PlayedAs: "white", Outcome: "loss"},
		// Parses, but the subject played Black and never moved.
		{PGN: "1. e4 1-0", PlayedAs: "black", Outcome: "loss"},
	}

	session := &fakeSession{}
	pool := &stubEnginePool{session: session}
	svc := NewAnalyzeService(&stubGameService{records: records}, pool, analysis.NewAnalyzer(12), nil, nil, 10)

	report, err := svc.AnalyzePlayer(context.Background(), "magnus", "all")
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalGames)
	assert.Equal(t, 1, report.GamesAnalyzed)
	assert.Less(t, report.GamesAnalyzed, report.TotalGames)

	// The aggregate denominator is the one analyzed game, not the batch.
	assert.InDelta(t, 4, report.Metrics.MoveCount, 1e-9)
	assert.Len(t, report.Evaluations, 4)

	// Every game in the batch got a fresh engine state before replaying.
	assert.Equal(t, 3, session.resets)
	assert.Equal(t, 1, pool.released)
	assert.NotEqual(t, profile.Unknown, report.PlayerProfile.PrimaryProfile)
}

func TestTruncateReport(t *testing.T) {
	report := &models.AnalysisReport{}
	for i := 0; i < 150; i++ {
		report.Evaluations = append(report.Evaluations, i)
	}
	for i := 0; i < 30; i++ {
		report.Blunders = append(report.Blunders, "b")
		report.Mistakes = append(report.Mistakes, "m")
		report.Inaccuracies = append(report.Inaccuracies, "i")
	}

	truncateReport(report)

	assert.Len(t, report.Evaluations, maxEvaluations)
	assert.Len(t, report.Blunders, maxMoveLabels)
	assert.Len(t, report.Mistakes, maxMoveLabels)
	assert.Len(t, report.Inaccuracies, maxMoveLabels)
	// The head of the sequence survives.
	assert.Equal(t, 0, report.Evaluations[0])
	assert.Equal(t, 99, report.Evaluations[99])
}

func TestRoundAggregate(t *testing.T) {
	agg := roundAggregate(models.AggregateMetrics{
		BlunderRate:    0.123456,
		TacticalScore:  0.9995,
		MiddlegameEval: -33.33333,
	})

	assert.Equal(t, 0.123, agg.BlunderRate)
	assert.Equal(t, 1.0, agg.TacticalScore)
	assert.Equal(t, -33.333, agg.MiddlegameEval)
}
