package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vytor/chessprofile/internal/models"
)

// varianceScale rescales raw centipawn variance into [0,1]. Fixed and
// non-adaptive: large swings saturate at 1.0.
const varianceScale = 10000

// ComputeGameMetrics reduces one game's classified move sequence into the
// fixed GameMetrics vector. A game with zero subject moves reduces to the
// zero vector; denominators are guarded so that never divides by zero.
func ComputeGameMetrics(moves []ClassifiedMove) models.GameMetrics {
	m := models.GameMetrics{MoveCount: len(moves)}
	if len(moves) == 0 {
		return m
	}

	var blunders, tactical, positional, sacrifices, defensive int
	var phaseCounts [3]int
	var phaseSums [3]float64
	scores := make([]float64, 0, len(moves))

	for _, cm := range moves {
		scores = append(scores, float64(cm.Score))

		if cm.Quality == QualityBlunder {
			blunders++
		}
		if cm.Tactical {
			tactical++
		} else {
			positional++
		}
		if cm.Sacrifice {
			sacrifices++
		}
		if cm.Defensive {
			defensive++
		}

		idx := phaseIndex(cm.Phase)
		phaseCounts[idx]++
		phaseSums[idx] += float64(cm.Score)
	}

	n := float64(max(1, len(moves)))
	m.BlunderRate = float64(blunders) / n
	m.PositionalScore = float64(positional) / n
	// Tactical-position and sacrifice signals are additive, not exclusive.
	m.TacticalScore = float64(tactical)/n + float64(sacrifices)/n
	m.EndgameScore = float64(phaseCounts[phaseIndex(PhaseEndgame)]) / n
	m.DefensiveScore = float64(defensive) / n
	m.EvaluationVariance = normalizedVariance(scores)

	// Phase averages default to 0 when the phase never occurred.
	if c := phaseCounts[phaseIndex(PhaseOpening)]; c > 0 {
		m.OpeningEval = phaseSums[phaseIndex(PhaseOpening)] / float64(c)
	}
	if c := phaseCounts[phaseIndex(PhaseMiddlegame)]; c > 0 {
		m.MiddlegameEval = phaseSums[phaseIndex(PhaseMiddlegame)] / float64(c)
	}
	if c := phaseCounts[phaseIndex(PhaseEndgame)]; c > 0 {
		m.EndgameEval = phaseSums[phaseIndex(PhaseEndgame)] / float64(c)
	}

	return m
}

// normalizedVariance computes the population variance of the evaluation
// sequence, rescaled by varianceScale and clamped to [0,1]. Sequences with
// fewer than two elements, or all elements equal, yield exactly 0.
func normalizedVariance(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	mean := stat.Mean(scores, nil)
	variance := stat.MomentAbout(2, scores, mean, nil)
	if variance <= 0 {
		return 0
	}
	normalized := variance / varianceScale
	if normalized > 1 {
		return 1
	}
	return normalized
}

func phaseIndex(p Phase) int {
	switch p {
	case PhaseOpening:
		return 0
	case PhaseEndgame:
		return 2
	default:
		return 1
	}
}
