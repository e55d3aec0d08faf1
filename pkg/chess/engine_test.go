package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(t *testing.T, label string) Square {
	t.Helper()
	s, err := ParseSquare(label)
	require.NoError(t, err)
	return s
}

func destinations(t *testing.T, b Board, from string) map[string]bool {
	t.Helper()
	out := make(map[string]bool)
	for _, d := range LegalDestinations(b, sq(t, from)) {
		out[d.String()] = true
	}
	return out
}

func TestParseSquareRoundTrip(t *testing.T) {
	s, err := ParseSquare("e2")
	require.NoError(t, err)
	assert.Equal(t, 4, s.File())
	assert.Equal(t, 1, s.Rank())
	assert.Equal(t, "e2", s.String())

	for _, bad := range []string{"", "e", "i1", "a9", "e22"} {
		_, err := ParseSquare(bad)
		assert.Error(t, err, bad)
	}
}

func TestStartingBoardPawnMoves(t *testing.T) {
	b := StartingBoard()

	dests := destinations(t, b, "e2")
	assert.Equal(t, map[string]bool{"e3": true, "e4": true}, dests)

	// A blocker directly in front kills both the single and double push.
	b.Put(sq(t, "e3"), Piece{Kind: Knight, Color: Black})
	assert.Empty(t, destinations(t, b, "e2"))
}

func TestPawnDiagonalCaptureOnly(t *testing.T) {
	b := StartingBoard()
	b.Put(sq(t, "d3"), Piece{Kind: Pawn, Color: Black})
	b.Put(sq(t, "f3"), Piece{Kind: Pawn, Color: White})

	dests := destinations(t, b, "e2")
	assert.True(t, dests["d3"], "capture of opposing piece")
	assert.False(t, dests["f3"], "own piece is not capturable")
	assert.True(t, dests["e3"])
}

func TestPawnStaysPawnOnBackRank(t *testing.T) {
	var b Board
	b.Put(sq(t, "a7"), Piece{Kind: Pawn, Color: White})
	b.Put(sq(t, "e1"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "e8"), Piece{Kind: King, Color: Black})

	require.True(t, IsLegalMove(b, sq(t, "a7"), sq(t, "a8"), White))
	b.apply(sq(t, "a7"), sq(t, "a8"))
	assert.Equal(t, Piece{Kind: Pawn, Color: White}, b.At(sq(t, "a8")))
}

func TestKnightJumpsOverPieces(t *testing.T) {
	b := StartingBoard()
	dests := destinations(t, b, "g1")
	assert.Equal(t, map[string]bool{"f3": true, "h3": true}, dests)
}

func TestSlidingPieceStopsAtBlocker(t *testing.T) {
	var b Board
	b.Put(sq(t, "a1"), Piece{Kind: Rook, Color: White})
	b.Put(sq(t, "a5"), Piece{Kind: Pawn, Color: Black})
	b.Put(sq(t, "e1"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "e8"), Piece{Kind: King, Color: Black})

	dests := destinations(t, b, "a1")
	assert.True(t, dests["a4"])
	assert.True(t, dests["a5"], "first opposing piece is a capture")
	assert.False(t, dests["a6"], "no sliding past a blocker")
	assert.True(t, dests["b1"])
	assert.False(t, dests["e1"], "own piece blocks the rank")
}

func TestLegalDestinationsEmptySquare(t *testing.T) {
	b := StartingBoard()
	assert.Nil(t, LegalDestinations(b, sq(t, "e4")))
}

func TestIsLegalMoveEnforcesTurn(t *testing.T) {
	b := StartingBoard()
	assert.True(t, IsLegalMove(b, sq(t, "e2"), sq(t, "e4"), White))
	assert.False(t, IsLegalMove(b, sq(t, "e2"), sq(t, "e4"), Black))
	assert.False(t, IsLegalMove(b, sq(t, "e7"), sq(t, "e5"), White))
}

func TestPinnedPieceCannotLeaveFile(t *testing.T) {
	var b Board
	b.Put(sq(t, "e1"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "e2"), Piece{Kind: Rook, Color: White})
	b.Put(sq(t, "e8"), Piece{Kind: Rook, Color: Black})
	b.Put(sq(t, "a8"), Piece{Kind: King, Color: Black})

	dests := destinations(t, b, "e2")
	for d := range dests {
		assert.Equal(t, byte('e'), d[0], "pinned rook must stay on the e-file, got %s", d)
	}
	assert.True(t, dests["e8"], "capturing the pinning rook is legal")
	assert.False(t, IsLegalMove(b, sq(t, "e2"), sq(t, "d2"), White))
}

func TestIsInCheckIgnoresPins(t *testing.T) {
	// The black rook on e8 is pinned against its own king by the white
	// queen, but it still gives check: attack generation is geometry only.
	var b Board
	b.Put(sq(t, "e1"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "e8"), Piece{Kind: Rook, Color: Black})
	b.Put(sq(t, "h8"), Piece{Kind: King, Color: Black})
	b.Put(sq(t, "a8"), Piece{Kind: Queen, Color: White})

	assert.True(t, IsInCheck(b, White))
}

func TestBackRankMate(t *testing.T) {
	var b Board
	b.Put(sq(t, "g1"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "f2"), Piece{Kind: Pawn, Color: White})
	b.Put(sq(t, "g2"), Piece{Kind: Pawn, Color: White})
	b.Put(sq(t, "h2"), Piece{Kind: Pawn, Color: White})
	b.Put(sq(t, "a1"), Piece{Kind: Rook, Color: Black})
	b.Put(sq(t, "e8"), Piece{Kind: King, Color: Black})

	assert.True(t, IsInCheck(b, White))
	assert.False(t, HasAnyLegalMove(b, White))
	assert.Equal(t, StatusCheckmate, Status(b, White))
	assert.Equal(t, StatusNormal, Status(b, Black))
}

func TestHasAnyLegalMoveExistence(t *testing.T) {
	assert.True(t, HasAnyLegalMove(StartingBoard(), White))
	assert.True(t, HasAnyLegalMove(StartingBoard(), Black))

	var b Board
	b.Put(sq(t, "g1"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "f2"), Piece{Kind: Pawn, Color: White})
	b.Put(sq(t, "g2"), Piece{Kind: Pawn, Color: White})
	b.Put(sq(t, "h2"), Piece{Kind: Pawn, Color: White})
	b.Put(sq(t, "a1"), Piece{Kind: Rook, Color: Black})
	b.Put(sq(t, "e8"), Piece{Kind: King, Color: Black})
	assert.False(t, HasAnyLegalMove(b, White))

	// A single legal interposition flips the existence check.
	b.Put(sq(t, "b2"), Piece{Kind: Rook, Color: White})
	assert.True(t, HasAnyLegalMove(b, White))
}

func TestStalemate(t *testing.T) {
	var b Board
	b.Put(sq(t, "a8"), Piece{Kind: King, Color: Black})
	b.Put(sq(t, "b6"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "c7"), Piece{Kind: Queen, Color: White})

	assert.False(t, IsInCheck(b, Black))
	assert.False(t, HasAnyLegalMove(b, Black))
	assert.Equal(t, StatusStalemate, Status(b, Black))
}

func TestCheckWithEscapeIsNotMate(t *testing.T) {
	var b Board
	b.Put(sq(t, "e1"), Piece{Kind: King, Color: White})
	b.Put(sq(t, "e8"), Piece{Kind: Rook, Color: Black})
	b.Put(sq(t, "a8"), Piece{Kind: King, Color: Black})

	assert.Equal(t, StatusCheck, Status(b, White))
	assert.True(t, IsLegalMove(b, sq(t, "e1"), sq(t, "d1"), White))
	assert.False(t, IsLegalMove(b, sq(t, "e1"), sq(t, "e2"), White), "stays on the checked file")
}

func TestFoolsMate(t *testing.T) {
	b := StartingBoard()
	moves := [][2]string{
		{"f2", "f3"},
		{"e7", "e5"},
		{"g2", "g4"},
		{"d8", "h4"},
	}
	for _, m := range moves {
		b.apply(sq(t, m[0]), sq(t, m[1]))
	}

	assert.Equal(t, StatusCheckmate, Status(b, White))
}

func TestStartingPositionStatus(t *testing.T) {
	b := StartingBoard()
	assert.Equal(t, StatusNormal, Status(b, White))
	assert.Equal(t, StatusNormal, Status(b, Black))
	assert.False(t, IsInCheck(b, White))
	assert.True(t, HasAnyLegalMove(b, Black))
}

func TestDestinationsNeverIncludeOwnPieces(t *testing.T) {
	b := StartingBoard()
	for from := Square(0); from < 64; from++ {
		piece := b.At(from)
		if piece.Empty() {
			continue
		}
		for _, to := range LegalDestinations(b, from) {
			target := b.At(to)
			assert.False(t, !target.Empty() && target.Color == piece.Color,
				"%s from %s lands on own piece at %s", piece, from, to)
		}
	}
}
