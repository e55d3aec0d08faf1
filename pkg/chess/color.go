package chess

// Color represents a chess side. The string values are part of the wire
// contract, so they stay spelled out.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opp returns the opposite color for the given color.
func (c Color) Opp() Color {
	if c == White {
		return Black
	}

	return White
}

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool {
	return c == White || c == Black
}
