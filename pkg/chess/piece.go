package chess

// Kind identifies a piece type.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the lowercase English name of the piece kind.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return ""
	}
}

// Piece is an immutable (kind, color) value. The zero value means an empty
// square.
type Piece struct {
	Kind  Kind
	Color Color
}

// Empty reports whether p is the empty-square marker.
func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// String formats a piece as "kind_color", the tag format clients use to
// pick piece assets.
func (p Piece) String() string {
	if p.Empty() {
		return ""
	}
	return p.Kind.String() + "_" + string(p.Color)
}
