package chess

// Board maps each of the 64 squares to an optional piece. It is a plain
// value type: assigning a Board copies it, which is how move simulation
// gets its scratch copies.
type Board struct {
	squares [64]Piece
}

// StartingBoard returns the standard chess starting position.
func StartingBoard() Board {
	var b Board

	back := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range back {
		b.squares[Sq(file, 0)] = Piece{Kind: kind, Color: White}
		b.squares[Sq(file, 1)] = Piece{Kind: Pawn, Color: White}
		b.squares[Sq(file, 6)] = Piece{Kind: Pawn, Color: Black}
		b.squares[Sq(file, 7)] = Piece{Kind: kind, Color: Black}
	}

	return b
}

// At returns the piece on the given square; the zero Piece means empty.
func (b Board) At(sq Square) Piece {
	return b.squares[sq]
}

// Put places a piece on a square, replacing whatever was there. Used to set
// up positions; game play mutates boards only through apply.
func (b *Board) Put(sq Square, p Piece) {
	b.squares[sq] = p
}

// apply moves the piece on from to to, clearing the source square. Captured
// pieces are overwritten. Turn state is untouched, so the same primitive
// serves both real moves and check simulation.
func (b *Board) apply(from, to Square) {
	b.squares[to] = b.squares[from]
	b.squares[from] = Piece{}
}

// find returns the first square holding the given piece, or NoSquare.
func (b Board) find(p Piece) Square {
	for sq := Square(0); sq < 64; sq++ {
		if b.squares[sq] == p {
			return sq
		}
	}
	return NoSquare
}
