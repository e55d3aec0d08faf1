package room

import "crypto/rand"

// codeAlphabet avoids visually confusable characters (I/O/0/1) so codes
// survive being read aloud or typed from a screenshot.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// newCode draws a 6-character room code from a cryptographically secure
// source, so codes cannot be guessed or enumerated.
func newCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("room: entropy source unavailable: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
