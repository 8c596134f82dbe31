// Package snapshot holds the authoritative working state of the replay
// engine: for every tracked path, the ordered sequence of (author, line)
// tuples that reconstructs that path's current content. See spec.md §3/§4.3.
package snapshot

import (
	"bytes"

	"github.com/cyraxred/gitreplay/internal/core"
	"github.com/cyraxred/gitreplay/internal/hash"
)

// Line is a single line of content together with the author who currently
// owns it.
type Line struct {
	Author string
	Text   []byte
}

// Snapshot is the mapping from Path to an ordered sequence of Lines. The
// zero value is not ready to use; call New.
type Snapshot struct {
	paths map[string][]Line
	// intern deduplicates identical line byte slices across paths, trading
	// a hash lookup for avoiding one allocation per repeated line (spec.md
	// §5: "may deduplicate identical lines out of band").
	intern map[hash.LineKey][]byte
}

// New returns an empty Snapshot.
func New() *Snapshot {
	return &Snapshot{paths: map[string][]Line{}, intern: map[hash.LineKey][]byte{}}
}

// Has reports whether path currently has an entry in the snapshot.
func (s *Snapshot) Has(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// InsertNew creates a brand new snapshot entry for path. It fails with a
// PreconditionViolation if path is already present.
func (s *Snapshot) InsertNew(path string, lines []Line) error {
	if s.Has(path) {
		return core.NewPreconditionViolation("insert_new", path, "path already present")
	}
	s.paths[path] = s.internAll(lines)
	return nil
}

// GetLines returns the current ordered (author, line) sequence for path.
// The returned slice must not be mutated by the caller.
func (s *Snapshot) GetLines(path string) []Line {
	return s.paths[path]
}

// Remove deletes path from the snapshot and returns its former line
// sequence. It fails with a PreconditionViolation if path is not present.
func (s *Snapshot) Remove(path string) ([]Line, error) {
	lines, ok := s.paths[path]
	if !ok {
		return nil, core.NewPreconditionViolation("remove", path, "path not present")
	}
	delete(s.paths, path)
	return lines, nil
}

// Rename moves the entry at old to new, preserving the exact sequence of
// (author, line) tuples. It fails with a PreconditionViolation if new
// already exists or old is absent.
func (s *Snapshot) Rename(old, new string) error {
	if s.Has(new) {
		return core.NewPreconditionViolation("rename", new, "target path already present")
	}
	lines, ok := s.paths[old]
	if !ok {
		return core.NewPreconditionViolation("rename", old, "source path not present")
	}
	delete(s.paths, old)
	s.paths[new] = lines
	return nil
}

// ReplaceSequence overwrites path's line sequence wholesale, used at the end
// of replay_mod once the new sequence has been built opcode by opcode.
func (s *Snapshot) ReplaceSequence(path string, lines []Line) {
	s.paths[path] = s.internAll(lines)
}

// CheckInvariant verifies that the line projection of path's snapshot entry
// equals want, the actual line content of path's blob at the current
// commit. Per spec.md §3, this must hold after every deletion and every
// modification.
func (s *Snapshot) CheckInvariant(path, commit string, want [][]byte) error {
	got := s.paths[path]
	if len(got) != len(want) {
		return core.NewInvariantViolation(path, commit, "line count mismatch")
	}
	for i := range got {
		if !bytes.Equal(got[i].Text, want[i]) {
			return core.NewInvariantViolation(path, commit, "line content mismatch")
		}
	}
	return nil
}

// CheckRemoved verifies that a deleted path's tracked content agreed with
// want just before removal, matching the `del` entry point's precondition
// assertion in spec.md §4.5.
func (s *Snapshot) CheckRemoved(path, commit string, want [][]byte) error {
	return s.CheckInvariant(path, commit, want)
}

func (s *Snapshot) internAll(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Author: l.Author, Text: s.internLine(l.Text)}
	}
	return out
}

func (s *Snapshot) internLine(text []byte) []byte {
	key := hash.OfLine(text)
	if existing, ok := s.intern[key]; ok && bytes.Equal(existing, text) {
		return existing
	}
	owned := append([]byte(nil), text...)
	s.intern[key] = owned
	return owned
}
