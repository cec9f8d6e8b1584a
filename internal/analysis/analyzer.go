package analysis

import (
	"context"
	"fmt"

	"github.com/vytor/chessprofile/internal/engine"
	"github.com/vytor/chessprofile/internal/logger"
	"github.com/vytor/chessprofile/internal/models"
)

// Evaluator scores the position reached by playing the given UCI moves from
// the starting position. engine.Session implements it; tests substitute fakes.
type Evaluator interface {
	Evaluate(ctx context.Context, moves []string, depth int) (engine.Evaluation, error)
}

// GameAnalysis is the full classified output for one game.
type GameAnalysis struct {
	Evaluations  []int
	Blunders     []string
	Mistakes     []string
	Inaccuracies []string
	Moves        []ClassifiedMove
	Metrics      models.GameMetrics
}

// Analyzer replays games and classifies the subject player's moves.
type Analyzer struct {
	depth int
}

func NewAnalyzer(depth int) *Analyzer {
	if depth <= 0 {
		depth = 12
	}
	return &Analyzer{depth: depth}
}

// AnalyzeGame replays one game record, evaluating the position after each of
// the subject's moves. Opponent moves advance the board but are never
// evaluated or classified. A move the evaluator fails on is skipped; the
// replay continues. An unparseable record is an error and the game is skipped
// by the caller.
//
// All scores are normalized so that positive favors the subject player.
func (a *Analyzer) AnalyzeGame(ctx context.Context, evaluator Evaluator, rec models.GameRecord) (*GameAnalysis, error) {
	log := logger.FromContext(ctx).WithPrefix("analyzer")

	subjectIsWhite := rec.PlayedAs == "white"
	replayed, err := ReplayGame(rec.PGN, subjectIsWhite)
	if err != nil {
		return nil, fmt.Errorf("replay game: %w", err)
	}

	result := &GameAnalysis{}
	history := make([]string, 0, len(replayed))

	for _, rm := range replayed {
		history = append(history, rm.UCI)
		if !rm.IsSubjectMove {
			continue
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		ev, err := evaluator.Evaluate(ctx, history, a.depth)
		if err != nil {
			// Failure is local to this move, not fatal to the game.
			log.Warn("eval failed for move %d (%s), skipping: %v", rm.Ply, rm.UCI, err)
			continue
		}

		score := ev.Score()
		if !subjectIsWhite {
			score = -score
		}

		cm := ClassifiedMove{
			Ply:       rm.Ply,
			UCI:       rm.UCI,
			Score:     score,
			Phase:     rm.Phase,
			Quality:   QualityNone,
			Tactical:  IsTacticalPosition(score),
			Sacrifice: IsSacrifice(rm),
			Defensive: IsDefensiveMove(ev.Type, score),
		}

		// Deltas span only the subject's own consecutive rated moves. The
		// first rated move has no prior evaluation and stays unclassified.
		if len(result.Moves) > 0 {
			prev := result.Moves[len(result.Moves)-1]
			cm.Delta = score - prev.Score
			cm.HasDelta = true
			cm.Quality = ClassifyDelta(cm.Delta)
		}

		label := fmt.Sprintf("Move %d: %s", rm.Ply, rm.UCI)
		switch cm.Quality {
		case QualityBlunder:
			result.Blunders = append(result.Blunders, label)
		case QualityMistake:
			result.Mistakes = append(result.Mistakes, label)
		case QualityInaccuracy:
			result.Inaccuracies = append(result.Inaccuracies, label)
		}

		result.Evaluations = append(result.Evaluations, score)
		result.Moves = append(result.Moves, cm)
	}

	result.Metrics = ComputeGameMetrics(result.Moves)
	log.Debug("game analyzed: %d subject moves, %d blunders, %d mistakes, %d inaccuracies",
		len(result.Moves), len(result.Blunders), len(result.Mistakes), len(result.Inaccuracies))
	return result, nil
}
