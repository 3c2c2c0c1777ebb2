package game

import "strings"

// Buffer is the in-progress row. A zero byte marks an empty cell.
type Buffer []byte

// NewBuffer returns an empty row of n cells.
func NewBuffer(n int) Buffer { return make(Buffer, n) }

// Filled counts the non-empty cells.
func (b Buffer) Filled() int {
	n := 0
	for _, c := range b {
		if c != 0 {
			n++
		}
	}
	return n
}

// Full reports whether every cell holds a letter.
func (b Buffer) Full() bool { return b.Filled() == len(b) }

// Put writes letter at pos, overwriting whatever was there.
func (b Buffer) Put(pos int, letter byte) { b[pos] = letter }

// Append fills the first empty cell. It reports false on a full row.
func (b Buffer) Append(letter byte) bool {
	for i, c := range b {
		if c == 0 {
			b[i] = letter
			return true
		}
	}
	return false
}

// Backspace clears the right-most filled cell.
func (b Buffer) Backspace() bool {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			b[i] = 0
			return true
		}
	}
	return false
}

// Clear empties every cell.
func (b Buffer) Clear() {
	for i := range b {
		b[i] = 0
	}
}

// Cells renders the row for display, empty cells as "".
func (b Buffer) Cells() []string {
	out := make([]string, len(b))
	for i, c := range b {
		if c != 0 {
			out[i] = string(c)
		}
	}
	return out
}

// String returns the letters typed so far with empty cells dropped.
func (b Buffer) String() string {
	var sb strings.Builder
	for _, c := range b {
		if c != 0 {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
