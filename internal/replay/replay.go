// Package replay implements the history replay state machine: the four
// mutating entry points new/del/ren/mod plus commit, each emitting
// file-level and line-level events to the stats aggregator while keeping
// the Snapshot in lockstep with the repository's real content, per
// spec.md §4.5.
package replay

import (
	"github.com/cyraxred/gitreplay/internal/core"
	"github.com/cyraxred/gitreplay/internal/linediff"
	"github.com/cyraxred/gitreplay/internal/message"
	"github.com/cyraxred/gitreplay/internal/snapshot"
	"github.com/cyraxred/gitreplay/internal/stats"
)

// Engine drives Snapshot mutations and StatsAggregator events for a single
// repository replay. It is not safe for concurrent use; spec.md §5 requires
// strictly sequential application.
type Engine struct {
	Snapshot *snapshot.Snapshot
	Stats    *stats.Aggregator
	Messages *message.Indexer
}

// New returns an Engine with a fresh Snapshot, wired to the given
// aggregator and message indexer.
func New(agg *stats.Aggregator, msg *message.Indexer) *Engine {
	return &Engine{Snapshot: snapshot.New(), Stats: agg, Messages: msg}
}

// New applies a file creation: every line of content is authored by
// author, in order.
func (e *Engine) New(author, path string, content []byte) error {
	lines := linediff.Lines(content)
	withAuthor := make([]snapshot.Line, len(lines))
	for i, l := range lines {
		withAuthor[i] = snapshot.Line{Author: author, Text: []byte(l)}
		e.Stats.Apply(stats.Event{Action: stats.Insert, Editor: author, Path: path})
	}
	if err := e.Snapshot.InsertNew(path, withAuthor); err != nil {
		return err
	}
	e.Stats.Apply(stats.Event{Action: stats.Create, Editor: author, Path: path})
	return nil
}

// Del applies a file deletion: content must match the Snapshot's current
// projection for path exactly, since every remaining line attributes a
// conflict to its last owner.
func (e *Engine) Del(author, path string, content []byte, commit string) error {
	want := linediff.Lines(content)
	current := e.Snapshot.GetLines(path)
	if err := checkProjection(current, want, path, commit); err != nil {
		return err
	}

	for _, line := range current {
		e.Stats.Apply(stats.Event{
			Action: stats.Delete, Editor: author, Path: path,
			Original: line.Author, HasOriginal: true,
		})
	}

	if _, err := e.Snapshot.Remove(path); err != nil {
		return err
	}
	e.Stats.Apply(stats.Event{Action: stats.Remove, Editor: author, Path: path})
	return nil
}

// Ren renames oldpath to newpath, migrating every stats entry keyed by
// oldpath to newpath.
func (e *Engine) Ren(author, oldpath, newpath string) error {
	if err := e.Snapshot.Rename(oldpath, newpath); err != nil {
		return err
	}
	e.Stats.Apply(stats.Event{
		Action: stats.Rename, Editor: author, Path: newpath,
		LastPath: oldpath, HasLastPath: true,
	})
	return nil
}

// Mod applies a content modification: aBytes is the blob's content before
// this commit (matching the Snapshot's current projection for path) and
// bBytes is its content after.
func (e *Engine) Mod(author, path string, aBytes, bBytes []byte, commit string) error {
	aLines := linediff.Lines(aBytes)
	bLines := linediff.Lines(bBytes)
	current := e.Snapshot.GetLines(path)

	var newSeq []snapshot.Line
	for _, op := range linediff.Opcodes(aLines, bLines) {
		switch op.Tag {
		case linediff.Equal:
			newSeq = append(newSeq, current[op.I1:op.I2]...)

		case linediff.Insert:
			for j := op.J1; j < op.J2; j++ {
				newSeq = append(newSeq, snapshot.Line{Author: author, Text: []byte(bLines[j])})
				e.Stats.Apply(stats.Event{Action: stats.Insert, Editor: author, Path: path})
			}

		case linediff.Replace:
			for i := op.I1; i < op.I2; i++ {
				e.Stats.Apply(stats.Event{
					Action: stats.Change, Editor: author, Path: path,
					Original: current[i].Author, HasOriginal: true,
				})
			}
			for j := op.J1; j < op.J2; j++ {
				newSeq = append(newSeq, snapshot.Line{Author: author, Text: []byte(bLines[j])})
			}

		case linediff.Delete:
			for i := op.I1; i < op.I2; i++ {
				e.Stats.Apply(stats.Event{
					Action: stats.Delete, Editor: author, Path: path,
					Original: current[i].Author, HasOriginal: true,
				})
			}
		}
	}

	e.Snapshot.ReplaceSequence(path, newSeq)
	want := linediff.Lines(bBytes)
	if err := e.Snapshot.CheckInvariant(path, commit, toByteLines(want)); err != nil {
		return err
	}

	e.Stats.Apply(stats.Event{Action: stats.Modify, Editor: author, Path: path})
	return nil
}

// Commit cleans and indexes a commit message and emits its events. An
// empty cleaned message additionally emits no_msg, global and per-author.
func (e *Engine) Commit(author, rawMessage string) {
	cleaned := message.Clean(rawMessage)
	if message.IsEmpty(cleaned) {
		e.Stats.Apply(stats.Event{Action: stats.NoMsg, Editor: author})
	}
	e.Messages.Index(author, cleaned)
	e.Stats.Apply(stats.Event{Action: stats.Commit, Editor: author})
}

// checkProjection asserts that current's authored lines equal want's raw
// content, the del entry point's precondition in spec.md §4.5 step 1.
func checkProjection(current []snapshot.Line, want []string, path, commit string) error {
	if len(current) != len(want) {
		return core.NewInvariantViolation(path, commit, "deleted content does not match tracked lines")
	}
	for i := range current {
		if string(current[i].Text) != want[i] {
			return core.NewInvariantViolation(path, commit, "deleted content does not match tracked lines")
		}
	}
	return nil
}

func toByteLines(lines []string) [][]byte {
	out := make([][]byte, len(lines))
	for i, l := range lines {
		out[i] = []byte(l)
	}
	return out
}
