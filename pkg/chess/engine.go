// Package chess implements the rule engine for a two-player game server:
// move legality, check detection and terminal-state detection on an 8x8
// board. All operations are pure functions over Board values, safe to call
// from any goroutine.
//
// Castling, en-passant and pawn promotion are intentionally absent; a pawn
// reaching the back rank stays a pawn.
package chess

// GameStatus describes a position from the side-to-move's perspective.
type GameStatus string

const (
	StatusNormal    GameStatus = "normal"
	StatusCheck     GameStatus = "check"
	StatusCheckmate GameStatus = "checkmate"
	StatusStalemate GameStatus = "stalemate"
)

type offset struct {
	df, dr int
}

var (
	rookDirs   = []offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royalDirs  = []offset{
		{0, 1}, {0, -1}, {1, 0}, {-1, 0},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	knightOffsets = []offset{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
)

// LegalDestinations returns every square the piece on from could move to,
// ignoring whose turn it is: piece geometry, blockers on sliding paths, no
// same-color captures, and no move that leaves the mover's own king in
// check. An empty square yields nil.
func LegalDestinations(b Board, from Square) []Square {
	piece := b.At(from)
	if piece.Empty() {
		return nil
	}

	var legal []Square
	for _, to := range pseudoDestinations(b, from) {
		if !leavesKingInCheck(b, from, to, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

// IsLegalMove reports whether sideToMove may play from-to on the given
// board.
func IsLegalMove(b Board, from, to Square, sideToMove Color) bool {
	piece := b.At(from)
	if piece.Empty() || piece.Color != sideToMove {
		return false
	}
	for _, dest := range LegalDestinations(b, from) {
		if dest == to {
			return true
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked. Attack detection is pure
// geometry; it never recurses into legality, so pinned attackers still give
// check.
func IsInCheck(b Board, c Color) bool {
	king := b.find(Piece{Kind: King, Color: c})
	if king == NoSquare {
		return false
	}
	return squareAttacked(b, king, c.Opp())
}

// HasAnyLegalMove reports whether c has at least one legal move. It is an
// existence check: the first candidate surviving the own-king filter
// returns immediately, without enumerating the rest.
func HasAnyLegalMove(b Board, c Color) bool {
	for from := Square(0); from < 64; from++ {
		piece := b.At(from)
		if piece.Empty() || piece.Color != c {
			continue
		}
		for _, to := range pseudoDestinations(b, from) {
			if !leavesKingInCheck(b, from, to, c) {
				return true
			}
		}
	}
	return false
}

// Status classifies the position for the side to move.
func Status(b Board, sideToMove Color) GameStatus {
	inCheck := IsInCheck(b, sideToMove)
	hasMove := HasAnyLegalMove(b, sideToMove)

	switch {
	case inCheck && !hasMove:
		return StatusCheckmate
	case !inCheck && !hasMove:
		return StatusStalemate
	case inCheck:
		return StatusCheck
	default:
		return StatusNormal
	}
}

// pseudoDestinations enumerates destinations by piece geometry and blockers
// only, without the own-king-in-check filter.
func pseudoDestinations(b Board, from Square) []Square {
	piece := b.At(from)

	switch piece.Kind {
	case Pawn:
		return pawnDestinations(b, from, piece.Color)
	case Knight:
		return jumpDestinations(b, from, piece.Color, knightOffsets)
	case King:
		return jumpDestinations(b, from, piece.Color, royalDirs)
	case Rook:
		return slideDestinations(b, from, piece.Color, rookDirs)
	case Bishop:
		return slideDestinations(b, from, piece.Color, bishopDirs)
	case Queen:
		return slideDestinations(b, from, piece.Color, royalDirs)
	default:
		return nil
	}
}

func pawnDestinations(b Board, from Square, c Color) []Square {
	dir, homeRank := 1, 1
	if c == Black {
		dir, homeRank = -1, 6
	}

	var dests []Square
	file, rank := from.File(), from.Rank()

	// Forward pushes need empty squares.
	if step := onBoard(file, rank+dir); step != NoSquare && b.At(step).Empty() {
		dests = append(dests, step)
		if rank == homeRank {
			if dbl := onBoard(file, rank+2*dir); dbl != NoSquare && b.At(dbl).Empty() {
				dests = append(dests, dbl)
			}
		}
	}

	// Diagonal captures need an opposing piece on the destination.
	for _, df := range []int{-1, 1} {
		capture := onBoard(file+df, rank+dir)
		if capture == NoSquare {
			continue
		}
		if target := b.At(capture); !target.Empty() && target.Color != c {
			dests = append(dests, capture)
		}
	}

	return dests
}

func jumpDestinations(b Board, from Square, c Color, offsets []offset) []Square {
	var dests []Square
	for _, o := range offsets {
		to := onBoard(from.File()+o.df, from.Rank()+o.dr)
		if to == NoSquare {
			continue
		}
		if target := b.At(to); target.Empty() || target.Color != c {
			dests = append(dests, to)
		}
	}
	return dests
}

func slideDestinations(b Board, from Square, c Color, dirs []offset) []Square {
	var dests []Square
	for _, d := range dirs {
		file, rank := from.File()+d.df, from.Rank()+d.dr
		for {
			to := onBoard(file, rank)
			if to == NoSquare {
				break
			}
			target := b.At(to)
			if target.Empty() {
				dests = append(dests, to)
				file, rank = file+d.df, rank+d.dr
				continue
			}
			if target.Color != c {
				dests = append(dests, to)
			}
			break
		}
	}
	return dests
}

// squareAttacked reports whether any piece of color by covers target with
// its attack pattern.
func squareAttacked(b Board, target Square, by Color) bool {
	for from := Square(0); from < 64; from++ {
		piece := b.At(from)
		if piece.Empty() || piece.Color != by || from == target {
			continue
		}
		if attacks(b, from, target) {
			return true
		}
	}
	return false
}

// attacks reports whether the piece on from covers target. For pawns this
// is the diagonal capture pattern only; for everything else attack and
// movement geometry coincide.
func attacks(b Board, from, target Square) bool {
	piece := b.At(from)
	df := target.File() - from.File()
	dr := target.Rank() - from.Rank()

	switch piece.Kind {
	case Pawn:
		dir := 1
		if piece.Color == Black {
			dir = -1
		}
		return dr == dir && (df == 1 || df == -1)
	case Knight:
		return (abs(df) == 2 && abs(dr) == 1) || (abs(df) == 1 && abs(dr) == 2)
	case King:
		return abs(df) <= 1 && abs(dr) <= 1 && (df != 0 || dr != 0)
	case Rook:
		return (df == 0 || dr == 0) && pathClear(b, from, target)
	case Bishop:
		return abs(df) == abs(dr) && pathClear(b, from, target)
	case Queen:
		return (df == 0 || dr == 0 || abs(df) == abs(dr)) && pathClear(b, from, target)
	default:
		return false
	}
}

// leavesKingInCheck simulates from-to on a copy of the board and reports
// whether mover's king is attacked afterwards. The real board is never
// touched.
func leavesKingInCheck(b Board, from, to Square, mover Color) bool {
	scratch := b
	scratch.apply(from, to)
	return IsInCheck(scratch, mover)
}

// pathClear reports whether the squares strictly between from and to are
// empty. Callers guarantee the two squares share a rank, file or diagonal.
func pathClear(b Board, from, to Square) bool {
	df := step(from.File(), to.File())
	dr := step(from.Rank(), to.Rank())

	file, rank := from.File()+df, from.Rank()+dr
	for file != to.File() || rank != to.Rank() {
		if !b.At(Sq(file, rank)).Empty() {
			return false
		}
		file, rank = file+df, rank+dr
	}
	return true
}

func onBoard(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Sq(file, rank)
}

func step(from, to int) int {
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
