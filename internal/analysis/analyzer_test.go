package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessprofile/internal/engine"
	"github.com/vytor/chessprofile/internal/models"
)

// fakeEvaluator returns scripted evaluations in order and records the move
// lists it was asked about.
type fakeEvaluator struct {
	scores []engine.Evaluation
	errs   []error
	calls  [][]string
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, moves []string, depth int) (engine.Evaluation, error) {
	idx := len(f.calls)
	snapshot := make([]string, len(moves))
	copy(snapshot, moves)
	f.calls = append(f.calls, snapshot)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return engine.Evaluation{}, f.errs[idx]
	}
	if idx < len(f.scores) {
		return f.scores[idx], nil
	}
	return engine.Evaluation{Type: engine.EvalCentipawn}, nil
}

func cp(v int) engine.Evaluation {
	return engine.Evaluation{Type: engine.EvalCentipawn, Value: v}
}

func record(playedAs string) models.GameRecord {
	return models.GameRecord{
		PGN:      scholarsMatepgn,
		PlayedAs: playedAs,
	}
}

func TestAnalyzeGameEvaluatesSubjectMovesOnly(t *testing.T) {
	eval := &fakeEvaluator{scores: []engine.Evaluation{cp(30), cp(40), cp(420), cp(10000)}}
	a := NewAnalyzer(12)

	result, err := a.AnalyzeGame(context.Background(), eval, record("white"))
	require.NoError(t, err)

	// White played 4 of the 7 plies.
	require.Len(t, eval.calls, 4)
	require.Len(t, result.Moves, 4)

	// Each evaluation sees the full move history up to and including the
	// subject's move.
	assert.Equal(t, []string{"e2e4"}, eval.calls[0])
	assert.Equal(t, []string{"e2e4", "e7e5", "f1c4"}, eval.calls[1])
	assert.Len(t, eval.calls[3], 7)
}

func TestAnalyzeGameClassification(t *testing.T) {
	// Deltas between consecutive subject scores: +370 (blunder), -150
	// (mistake), +80 (inaccuracy).
	eval := &fakeEvaluator{scores: []engine.Evaluation{cp(0), cp(370), cp(220), cp(300)}}
	a := NewAnalyzer(12)

	result, err := a.AnalyzeGame(context.Background(), eval, record("white"))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 370, 220, 300}, result.Evaluations)
	assert.Equal(t, QualityNone, result.Moves[0].Quality)
	assert.False(t, result.Moves[0].HasDelta)

	require.Len(t, result.Blunders, 1)
	require.Len(t, result.Mistakes, 1)
	require.Len(t, result.Inaccuracies, 1)
	assert.Equal(t, "Move 3: f1c4", result.Blunders[0])
	assert.Equal(t, "Move 5: d1h5", result.Mistakes[0])
	assert.Equal(t, "Move 7: h5f7", result.Inaccuracies[0])
}

func TestAnalyzeGameBlackPerspective(t *testing.T) {
	// Engine scores are White-positive; the subject plays Black.
	eval := &fakeEvaluator{scores: []engine.Evaluation{cp(50), cp(-120), cp(200)}}
	a := NewAnalyzer(12)

	result, err := a.AnalyzeGame(context.Background(), eval, record("black"))
	require.NoError(t, err)

	require.Len(t, result.Moves, 3)
	assert.Equal(t, []int{-50, 120, -200}, result.Evaluations)
}

func TestAnalyzeGameSkipsFailedEvaluations(t *testing.T) {
	eval := &fakeEvaluator{
		scores: []engine.Evaluation{cp(10), {}, cp(60), cp(90)},
		errs:   []error{nil, errors.New("engine hiccup"), nil, nil},
	}
	a := NewAnalyzer(12)

	result, err := a.AnalyzeGame(context.Background(), eval, record("white"))
	require.NoError(t, err)

	// The failed move is dropped; the rest of the game still analyzes.
	require.Len(t, result.Moves, 3)
	assert.Equal(t, []int{10, 60, 90}, result.Evaluations)
	// Deltas bridge the gap over the skipped move.
	assert.Equal(t, 50, result.Moves[1].Delta)
}

func TestAnalyzeGameMateScoresSaturate(t *testing.T) {
	eval := &fakeEvaluator{scores: []engine.Evaluation{
		cp(0),
		cp(20),
		cp(350),
		{Type: engine.EvalMate, Value: 1},
	}}
	a := NewAnalyzer(12)

	result, err := a.AnalyzeGame(context.Background(), eval, record("white"))
	require.NoError(t, err)

	assert.Equal(t, 10000, result.Evaluations[3])
	// 350 -> 10000 is far past the blunder threshold.
	assert.Equal(t, QualityBlunder, result.Moves[3].Quality)
}

func TestAnalyzeGameUnparseableRecord(t *testing.T) {
	a := NewAnalyzer(12)
	_, err := a.AnalyzeGame(context.Background(), &fakeEvaluator{}, models.GameRecord{PGN: "not a pgn %%", PlayedAs: "white"})
	assert.Error(t, err)
}

func TestAnalyzeGameMetricsAttached(t *testing.T) {
	eval := &fakeEvaluator{scores: []engine.Evaluation{cp(0), cp(400), cp(0), cp(0)}}
	a := NewAnalyzer(12)

	result, err := a.AnalyzeGame(context.Background(), eval, record("white"))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Metrics.MoveCount)
	// Two swings past 300: the rise and the fall.
	assert.InDelta(t, 0.5, result.Metrics.BlunderRate, 1e-9)
}
