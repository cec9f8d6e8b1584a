package analysis

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

// Phase identifies which part of the game a move belongs to.
type Phase string

const (
	PhaseOpening    Phase = "opening"
	PhaseMiddlegame Phase = "middlegame"
	PhaseEndgame    Phase = "endgame"
)

const (
	// A subject move is "opening" while it is among the subject's first 10.
	openingMoveLimit = 10
	// The game is "endgame" once 10 or fewer non-king pieces remain.
	endgamePieceLimit = 10
)

// Static piece values used for the sacrifice heuristic.
var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   0,
}

// ReplayedMove is one move of a replayed game with the board facts the
// classifier needs. Phase and capture fields are only populated for moves
// made by the subject player; opponent moves advance the board and nothing
// else.
type ReplayedMove struct {
	Ply           int    // 1-based index in the full game
	UCI           string // move in UCI notation
	IsSubjectMove bool
	Phase         Phase
	IsCapture     bool
	CapturedValue int
	MoverValue    int
}

// ReplayGame parses a PGN record and walks it move by move, failing fast on a
// malformed or illegal record. The returned sequence covers every ply; the
// position cursor lives entirely inside this call and is discarded when it
// returns.
func ReplayGame(pgnText string, subjectIsWhite bool) ([]ReplayedMove, error) {
	pgnOpt, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return nil, fmt.Errorf("parse pgn: %w", err)
	}
	game := chess.NewGame(pgnOpt)

	moves := game.Moves()
	positions := game.Positions()
	if len(positions) != len(moves)+1 {
		return nil, fmt.Errorf("inconsistent replay: %d positions for %d moves", len(positions), len(moves))
	}

	out := make([]ReplayedMove, 0, len(moves))
	subjectMoves := 0
	for i, move := range moves {
		isWhiteMove := i%2 == 0
		rm := ReplayedMove{
			Ply:           i + 1,
			UCI:           moveToUCI(move),
			IsSubjectMove: isWhiteMove == subjectIsWhite,
		}

		if rm.IsSubjectMove {
			subjectMoves++
			// Phase is a from-scratch snapshot of the board after the move,
			// not an incrementally maintained counter.
			rm.Phase = phaseOf(subjectMoves, countPieces(positions[i+1]))

			if move.HasTag(chess.Capture) {
				rm.IsCapture = true
				rm.MoverValue = pieceValues[positions[i].Board().Piece(move.S1()).Type()]
				if move.HasTag(chess.EnPassant) {
					rm.CapturedValue = pieceValues[chess.Pawn]
				} else {
					rm.CapturedValue = pieceValues[positions[i].Board().Piece(move.S2()).Type()]
				}
			}
		}

		out = append(out, rm)
	}
	return out, nil
}

// phaseOf buckets a subject move by move number and remaining material.
func phaseOf(subjectMoveNumber, piecesOnBoard int) Phase {
	switch {
	case subjectMoveNumber <= openingMoveLimit:
		return PhaseOpening
	case piecesOnBoard <= endgamePieceLimit:
		return PhaseEndgame
	default:
		return PhaseMiddlegame
	}
}

// countPieces counts all pawns, knights, bishops, rooks and queens of both
// colors. Kings never leave the board and are excluded.
func countPieces(pos *chess.Position) int {
	count := 0
	for _, piece := range pos.Board().SquareMap() {
		if piece.Type() != chess.King {
			count++
		}
	}
	return count
}

// moveToUCI converts a chess Move to UCI format (e.g., "e2e4", "e7e8q")
func moveToUCI(move *chess.Move) string {
	if move == nil {
		return ""
	}

	uci := squareToString(move.S1()) + squareToString(move.S2())

	if promo := move.Promo(); promo != chess.NoPieceType {
		switch promo {
		case chess.Queen:
			uci += "q"
		case chess.Rook:
			uci += "r"
		case chess.Bishop:
			uci += "b"
		case chess.Knight:
			uci += "n"
		}
	}

	return uci
}

// squareToString converts a Square to algebraic notation (e.g., "e2", "a8")
func squareToString(sq chess.Square) string {
	fileChar := 'a' + sq.File()
	rankChar := '1' + sq.Rank()
	return fmt.Sprintf("%c%c", fileChar, rankChar)
}
