package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessprofile/internal/models"
)

func TestAggregateMetricsEmpty(t *testing.T) {
	agg := AggregateMetrics(nil)
	assert.Equal(t, models.AggregateMetrics{}, agg)
}

func TestAggregateMetricsMean(t *testing.T) {
	batch := []models.GameMetrics{
		{
			BlunderRate:        0.2,
			PositionalScore:    0.5,
			TacticalScore:      0.6,
			EndgameScore:       0.1,
			DefensiveScore:     0.3,
			EvaluationVariance: 0.4,
			OpeningEval:        40,
			MiddlegameEval:     -20,
			EndgameEval:        10,
			MoveCount:          30,
		},
		{
			BlunderRate:        0.4,
			PositionalScore:    0.3,
			TacticalScore:      0.2,
			EndgameScore:       0.5,
			DefensiveScore:     0.1,
			EvaluationVariance: 0.6,
			OpeningEval:        20,
			MiddlegameEval:     60,
			EndgameEval:        -30,
			MoveCount:          50,
		},
	}

	agg := AggregateMetrics(batch)

	assert.InDelta(t, 0.3, agg.BlunderRate, 1e-9)
	assert.InDelta(t, 0.4, agg.PositionalScore, 1e-9)
	assert.InDelta(t, 0.4, agg.TacticalScore, 1e-9)
	assert.InDelta(t, 0.3, agg.EndgameScore, 1e-9)
	assert.InDelta(t, 0.2, agg.DefensiveScore, 1e-9)
	assert.InDelta(t, 0.5, agg.EvaluationVariance, 1e-9)
	assert.InDelta(t, 30, agg.OpeningEval, 1e-9)
	assert.InDelta(t, 20, agg.MiddlegameEval, 1e-9)
	assert.InDelta(t, -10, agg.EndgameEval, 1e-9)
	assert.InDelta(t, 40, agg.MoveCount, 1e-9)
	assert.Zero(t, agg.AvgMoveTime)
}

func TestAggregateMetricsSingleGame(t *testing.T) {
	batch := []models.GameMetrics{{BlunderRate: 0.125, MoveCount: 16}}

	agg := AggregateMetrics(batch)

	assert.InDelta(t, 0.125, agg.BlunderRate, 1e-9)
	assert.InDelta(t, 16, agg.MoveCount, 1e-9)
}
