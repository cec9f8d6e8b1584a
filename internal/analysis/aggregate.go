package analysis

import "github.com/vytor/chessprofile/internal/models"

// AggregateMetrics averages a batch of per-game metric vectors element-wise.
// The denominator is the number of successfully analyzed games, which is
// exactly len(batch): games that failed to parse or yielded no subject moves
// never produce a GameMetrics. An empty batch aggregates to the zero vector.
func AggregateMetrics(batch []models.GameMetrics) models.AggregateMetrics {
	var agg models.AggregateMetrics
	if len(batch) == 0 {
		return agg
	}

	for _, gm := range batch {
		agg.BlunderRate += gm.BlunderRate
		agg.PositionalScore += gm.PositionalScore
		agg.TacticalScore += gm.TacticalScore
		agg.EndgameScore += gm.EndgameScore
		agg.DefensiveScore += gm.DefensiveScore
		agg.EvaluationVariance += gm.EvaluationVariance
		agg.AvgMoveTime += gm.AvgMoveTime
		agg.OpeningEval += gm.OpeningEval
		agg.MiddlegameEval += gm.MiddlegameEval
		agg.EndgameEval += gm.EndgameEval
		agg.MoveCount += float64(gm.MoveCount)
	}

	n := float64(len(batch))
	agg.BlunderRate /= n
	agg.PositionalScore /= n
	agg.TacticalScore /= n
	agg.EndgameScore /= n
	agg.DefensiveScore /= n
	agg.EvaluationVariance /= n
	agg.AvgMoveTime /= n
	agg.OpeningEval /= n
	agg.MiddlegameEval /= n
	agg.EndgameEval /= n
	agg.MoveCount /= n

	return agg
}
