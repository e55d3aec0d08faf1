package chess

import "fmt"

// Square is a position on the chess board, 0..63 with a1 = 0 and h8 = 63.
type Square int

// NoSquare marks an invalid or absent square.
const NoSquare Square = -1

// Sq builds a square from file and rank coordinates, both in 0..7.
func Sq(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare converts an algebraic label such as "e2" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return Sq(int(s[0]-'a'), int(s[1]-'1')), nil
}

// File returns the column number (0..7, a..h) of the square.
func (s Square) File() int {
	return int(s) & 7
}

// Rank returns the row number (0..7, 1..8) of the square.
func (s Square) Rank() int {
	return int(s) >> 3
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s >= 0 && s < 64
}

// String formats the square in algebraic notation.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}
