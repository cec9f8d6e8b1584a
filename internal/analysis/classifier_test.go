package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessprofile/internal/engine"
)

func TestClassifyDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		want  Quality
	}{
		{"zero delta is good", 0, QualityGood},
		{"exactly 50 is good", 50, QualityGood},
		{"51 is an inaccuracy", 51, QualityInaccuracy},
		{"exactly 100 is an inaccuracy", 100, QualityInaccuracy},
		{"101 is a mistake", 101, QualityMistake},
		{"exactly 300 is a mistake", 300, QualityMistake},
		{"301 is a blunder", 301, QualityBlunder},
		{"large positive swing is a blunder", 900, QualityBlunder},
		{"negative swings classify by magnitude", -301, QualityBlunder},
		{"-100 is an inaccuracy", -100, QualityInaccuracy},
		{"-50 is good", -50, QualityGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDelta(tt.delta))
		})
	}
}

// A drop from 350 to 300 is a delta of 50: good, not an inaccuracy. Only the
// initial jump of 350 gets flagged.
func TestClassifyDeltaSequence(t *testing.T) {
	scores := []int{0, 350, 300}

	var blunders, mistakes, inaccuracies int
	for i := 1; i < len(scores); i++ {
		switch ClassifyDelta(scores[i] - scores[i-1]) {
		case QualityBlunder:
			blunders++
		case QualityMistake:
			mistakes++
		case QualityInaccuracy:
			inaccuracies++
		}
	}

	assert.Equal(t, 1, blunders)
	assert.Equal(t, 0, mistakes)
	assert.Equal(t, 0, inaccuracies)
}

func TestIsTacticalPosition(t *testing.T) {
	assert.False(t, IsTacticalPosition(0))
	assert.False(t, IsTacticalPosition(100))
	assert.False(t, IsTacticalPosition(-100))
	assert.True(t, IsTacticalPosition(101))
	assert.True(t, IsTacticalPosition(-101))
}

func TestIsSacrifice(t *testing.T) {
	tests := []struct {
		name string
		move ReplayedMove
		want bool
	}{
		{"not a capture", ReplayedMove{IsCapture: false, CapturedValue: 1, MoverValue: 9}, false},
		{"queen takes pawn", ReplayedMove{IsCapture: true, CapturedValue: 1, MoverValue: 9}, true},
		{"rook takes knight", ReplayedMove{IsCapture: true, CapturedValue: 3, MoverValue: 5}, true},
		{"pawn takes queen", ReplayedMove{IsCapture: true, CapturedValue: 9, MoverValue: 1}, false},
		{"even trade", ReplayedMove{IsCapture: true, CapturedValue: 3, MoverValue: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSacrifice(tt.move))
		})
	}
}

func TestIsDefensiveMove(t *testing.T) {
	assert.True(t, IsDefensiveMove(engine.EvalCentipawn, -51))
	assert.False(t, IsDefensiveMove(engine.EvalCentipawn, -50))
	assert.False(t, IsDefensiveMove(engine.EvalCentipawn, 0))
	// Mate scores never count as defensive, even deeply negative ones.
	assert.False(t, IsDefensiveMove(engine.EvalMate, -10000))
}
