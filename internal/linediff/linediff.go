// Package linediff computes line-level opcodes between two byte sequences,
// grounded directly on the original implementation's use of Python's
// difflib.SequenceMatcher: github.com/pmezard/go-difflib is a line-for-line
// port of the same algorithm and produces the same opcode shape
// ({equal, insert, delete, replace}) that spec.md's LineDiffer calls for.
package linediff

import "github.com/pmezard/go-difflib/difflib"

// Tag identifies the kind of a single opcode.
type Tag int

const (
	// Equal marks a[I1:I2] == b[J1:J2]; no event is produced for it.
	Equal Tag = iota
	// Insert marks lines present in b but not in a.
	Insert
	// Delete marks lines present in a but not in b.
	Delete
	// Replace marks a[I1:I2] being replaced by b[J1:J2]; the two spans are
	// not required to have the same length.
	Replace
)

// Opcode is a single instruction covering a[I1:I2] and/or b[J1:J2].
type Opcode struct {
	Tag    Tag
	I1, I2 int
	J1, J2 int
}

// Lines splits raw blob bytes into lines the way spec.md §3 defines a Line:
// split on newline separators, the separator itself discarded.
func Lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := string(content)
	// a trailing newline must not produce a spurious empty trailing line,
	// matching Python's str.splitlines() semantics that the original
	// implementation relies on.
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if s == "" {
		return []string{""}
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// Opcodes returns the sequence of opcodes transforming a into b, covering
// both sequences exhaustively and in order.
func Opcodes(a, b []string) []Opcode {
	matcher := difflib.NewMatcher(a, b)
	raw := matcher.GetOpCodes()
	out := make([]Opcode, len(raw))
	for i, op := range raw {
		out[i] = Opcode{
			Tag:    tagOf(op.Tag),
			I1:     op.I1,
			I2:     op.I2,
			J1:     op.J1,
			J2:     op.J2,
		}
	}
	return out
}

func tagOf(b byte) Tag {
	switch b {
	case 'e':
		return Equal
	case 'i':
		return Insert
	case 'd':
		return Delete
	case 'r':
		return Replace
	default:
		panic("linediff: unknown opcode tag")
	}
}
