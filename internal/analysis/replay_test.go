package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scholarsMatepgn = `[Event "Live Chess"]
[Site "Chess.com"]
[White "attacker"]
[Black "defender"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0`

func TestReplayGameWhiteSubject(t *testing.T) {
	moves, err := ReplayGame(scholarsMatepgn, true)
	require.NoError(t, err)
	require.Len(t, moves, 7)

	// White moves are the odd plies.
	for i, rm := range moves {
		assert.Equal(t, i+1, rm.Ply)
		assert.Equal(t, i%2 == 0, rm.IsSubjectMove, "ply %d", rm.Ply)
	}

	assert.Equal(t, "e2e4", moves[0].UCI)
	assert.Equal(t, "e7e5", moves[1].UCI)
	assert.Equal(t, "f1c4", moves[2].UCI)
	assert.Equal(t, "h5f7", moves[6].UCI)

	// All four subject moves fall in the opening window.
	for _, rm := range moves {
		if rm.IsSubjectMove {
			assert.Equal(t, PhaseOpening, rm.Phase)
		}
	}

	// Qxf7# is a queen capturing a pawn: material given up by the heuristic.
	last := moves[6]
	assert.True(t, last.IsCapture)
	assert.Equal(t, 1, last.CapturedValue)
	assert.Equal(t, 9, last.MoverValue)
	assert.True(t, IsSacrifice(last))
}

func TestReplayGameBlackSubject(t *testing.T) {
	moves, err := ReplayGame(scholarsMatepgn, false)
	require.NoError(t, err)
	require.Len(t, moves, 7)

	var subjectUCIs []string
	for _, rm := range moves {
		if rm.IsSubjectMove {
			subjectUCIs = append(subjectUCIs, rm.UCI)
		}
	}
	assert.Equal(t, []string{"e7e5", "b8c6", "g8f6"}, subjectUCIs)

	// Opponent moves carry no phase or capture facts.
	assert.Equal(t, Phase(""), moves[0].Phase)
	assert.False(t, moves[6].IsCapture)
}

func TestReplayGameMalformedPGN(t *testing.T) {
	_, err := ReplayGame("1. e4 e5 2. Zz9", true)
	assert.Error(t, err)
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		name        string
		subjectMove int
		pieces      int
		want        Phase
	}{
		{"move 1 is opening", 1, 30, PhaseOpening},
		{"move 10 is opening even with bare board", 10, 4, PhaseOpening},
		{"move 11 with full board is middlegame", 11, 30, PhaseMiddlegame},
		{"move 11 with 10 pieces is endgame", 11, 10, PhaseEndgame},
		{"move 40 with 11 pieces is middlegame", 40, 11, PhaseMiddlegame},
		{"move 40 with 2 pieces is endgame", 40, 2, PhaseEndgame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phaseOf(tt.subjectMove, tt.pieces))
		})
	}
}
