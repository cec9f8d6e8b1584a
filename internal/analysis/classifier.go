package analysis

import "github.com/vytor/chessprofile/internal/engine"

// Quality labels a subject move by how much evaluation it gave away relative
// to the subject's previous rated move.
type Quality string

const (
	// QualityNone marks a move that was never delta-classified (the
	// subject's first rated move in a game).
	QualityNone       Quality = ""
	QualityGood       Quality = "good"
	QualityInaccuracy Quality = "inaccuracy"
	QualityMistake    Quality = "mistake"
	QualityBlunder    Quality = "blunder"
)

// Fixed classification policy. Bounds are strict: a delta of exactly 300 is
// a mistake, exactly 100 an inaccuracy, exactly 50 a good move.
const (
	blunderThreshold    = 300
	mistakeThreshold    = 100
	inaccuracyThreshold = 50

	// A position is "tactical" when the evaluation swings past this either way.
	tacticalThreshold = 100
	// A centipawn score below this (subject's perspective) marks a defensive move.
	defensiveThreshold = -50
)

// ClassifiedMove is one analyzed subject move. Created once, never mutated.
type ClassifiedMove struct {
	Ply       int     `json:"ply"`
	UCI       string  `json:"uci"`
	Score     int     `json:"score"` // subject's perspective, mate-saturated
	Delta     int     `json:"delta"`
	HasDelta  bool    `json:"has_delta"` // false for the subject's first rated move
	Phase     Phase   `json:"phase"`
	Quality   Quality `json:"quality"`
	Tactical  bool    `json:"tactical"`
	Sacrifice bool    `json:"sacrifice"`
	Defensive bool    `json:"defensive"`
}

// ClassifyDelta buckets the absolute evaluation swing between two consecutive
// subject moves.
func ClassifyDelta(delta int) Quality {
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta > blunderThreshold:
		return QualityBlunder
	case delta > mistakeThreshold:
		return QualityMistake
	case delta > inaccuracyThreshold:
		return QualityInaccuracy
	default:
		return QualityGood
	}
}

// IsTacticalPosition reports whether the position is sharp rather than quiet.
// This is a position-level signal, independent of the delta classification.
func IsTacticalPosition(score int) bool {
	return score > tacticalThreshold || score < -tacticalThreshold
}

// IsSacrifice reports whether a capture gave up static material: the captured
// piece is worth less than the capturing piece. A coarse proxy for tactical
// aggression, not an engine-verified sacrifice.
func IsSacrifice(m ReplayedMove) bool {
	return m.IsCapture && m.CapturedValue < m.MoverValue
}

// IsDefensiveMove reports whether the subject stands worse in a plain
// centipawn position. Mate scores never count as defensive.
func IsDefensiveMove(evalType engine.EvalType, score int) bool {
	return evalType == engine.EvalCentipawn && score < defensiveThreshold
}
