package replay

import (
	"fmt"
	"io"

	"github.com/cyraxred/gitreplay/internal/core"
	"github.com/cyraxred/gitreplay/internal/diffresolver"
	"github.com/cyraxred/gitreplay/internal/gitsource"
	"github.com/cyraxred/gitreplay/internal/langclass"
)

// Driver iterates a commit stream in chronological order and feeds the
// Engine, seeding the Snapshot from the first commit's full tree and then
// resolving and applying every subsequent (prev, curr) diff.
type Driver struct {
	Engine *Engine
	// Progress receives one "commit <id>" line per processed commit. A nil
	// Progress disables the writes entirely.
	Progress io.Writer
	// Logger receives non-fatal diagnostics, e.g. trivial commits that touch
	// no content. Never used for the "commit <id>" progress line, whose
	// literal format must not carry a level prefix.
	Logger core.Logger
}

// NewDriver returns a Driver wired to engine, writing progress to progress.
func NewDriver(engine *Engine, progress io.Writer) *Driver {
	return &Driver{Engine: engine, Progress: progress, Logger: core.NewLogger()}
}

// Run replays every commit in commits, which must already be ordered
// oldest-to-newest (gitsource.Source.Commits returns them in that order).
func (d *Driver) Run(source *gitsource.Source, commits []gitsource.Commit) error {
	var prev gitsource.Commit
	for i, curr := range commits {
		var entries []gitsource.DiffEntry
		var err error
		if i == 0 {
			entries, err = source.SeedTree(curr)
		} else {
			entries, err = source.Diff(prev, curr)
		}
		if err != nil {
			return err
		}

		if err := d.applyCommit(curr, entries); err != nil {
			return err
		}
		d.reportProgress(curr)
		prev = curr
	}
	return nil
}

func (d *Driver) applyCommit(curr gitsource.Commit, entries []gitsource.DiffEntry) error {
	if len(entries) == 0 && d.Logger != nil {
		d.Logger.Warnf("commit %s touches no content, recording message only", curr.Hash)
	}

	resolved := diffresolver.Resolve(entries)

	for _, e := range resolved.New {
		if err := d.Engine.New(curr.Author, e.NewPath, e.NewContent); err != nil {
			return err
		}
		d.classify(e.NewPath, e.NewContent)
	}
	for _, e := range resolved.Del {
		if err := d.Engine.Del(curr.Author, e.OldPath, e.OldContent, curr.Hash); err != nil {
			return err
		}
	}
	for _, r := range resolved.Ren {
		if err := d.Engine.Ren(curr.Author, r.OldPath, r.NewPath); err != nil {
			return err
		}
		d.classify(r.NewPath, r.Content)
	}
	for _, e := range resolved.Mod {
		if err := d.Engine.Mod(curr.Author, e.NewPath, e.OldContent, e.NewContent, curr.Hash); err != nil {
			return err
		}
		d.classify(e.NewPath, e.NewContent)
	}

	d.Engine.Commit(curr.Author, curr.Message)
	return nil
}

// classify records path's language against PathStats, an informational
// facet not part of any spec.md §8 invariant.
func (d *Driver) classify(path string, content []byte) {
	ps, ok := d.Engine.Stats.PathStats[path]
	if !ok || ps.Language != "" {
		return
	}
	ps.Language = langclass.Of(path, content)
}

func (d *Driver) reportProgress(curr gitsource.Commit) {
	if d.Progress == nil {
		return
	}
	fmt.Fprintf(d.Progress, "commit %s\n", curr.Hash)
}
