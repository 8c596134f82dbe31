// Package diffresolver turns a commit's raw add/delete/modify diff entries
// into the {new, del, ren, mod} event groups spec.md §4.2/§4.5 requires,
// promoting an add/delete pair to a rename only when it is unambiguous.
package diffresolver

import (
	"github.com/cyraxred/gitreplay/internal/gitsource"
	"github.com/cyraxred/gitreplay/internal/hash"
)

// Resolved is the result of partitioning one commit's diff entries.
type Resolved struct {
	New []gitsource.DiffEntry
	Del []gitsource.DiffEntry
	Ren []Rename
	Mod []gitsource.DiffEntry
}

// Rename pairs a deleted path with the added path that received its exact
// content.
type Rename struct {
	OldPath string
	NewPath string
	Content []byte
}

// Resolve partitions entries into New/Del/Ren/Mod. Only hash matches whose
// add-bucket and delete-bucket each contain exactly one entry are promoted
// to a rename: an add/delete pair sharing content with any other added or
// deleted entry is ambiguous and is left as separate new/del events, matching
// spec.md §4.2's "no similarity heuristics" rule.
func Resolve(entries []gitsource.DiffEntry) Resolved {
	var r Resolved

	addedByHash := map[hash.ContentDigest][]gitsource.DiffEntry{}
	deletedByHash := map[hash.ContentDigest][]gitsource.DiffEntry{}

	for _, e := range entries {
		switch e.Kind {
		case gitsource.Added:
			digest := hash.OfBytes(e.NewContent)
			addedByHash[digest] = append(addedByHash[digest], e)
		case gitsource.Deleted:
			digest := hash.OfBytes(e.OldContent)
			deletedByHash[digest] = append(deletedByHash[digest], e)
		case gitsource.Modified:
			r.Mod = append(r.Mod, e)
		}
	}

	promotedAdd := map[string]bool{}
	promotedDel := map[string]bool{}

	// Walk entries in their original order so Ren (and the later New/Del
	// passes) come out deterministic regardless of Go's randomized map
	// iteration order.
	for _, e := range entries {
		if e.Kind != gitsource.Added {
			continue
		}
		digest := hash.OfBytes(e.NewContent)
		adds := addedByHash[digest]
		dels, ok := deletedByHash[digest]
		if !ok || len(adds) != 1 || len(dels) != 1 {
			continue
		}
		del := dels[0]
		r.Ren = append(r.Ren, Rename{OldPath: del.OldPath, NewPath: e.NewPath, Content: e.NewContent})
		promotedAdd[e.NewPath] = true
		promotedDel[del.OldPath] = true
	}

	for _, e := range entries {
		switch e.Kind {
		case gitsource.Added:
			if !promotedAdd[e.NewPath] {
				r.New = append(r.New, e)
			}
		case gitsource.Deleted:
			if !promotedDel[e.OldPath] {
				r.Del = append(r.Del, e)
			}
		}
	}

	return r
}
