// Package gitsource is the version-control collaborator: it wraps a
// go-git repository and exposes the ordered commit stream and per-commit
// tree diffs that internal/replay needs, hiding go-git's object model
// behind the plain Commit/DiffEntry shapes spec.md §4/§6 describe.
package gitsource

import (
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/cyraxred/gitreplay/internal/core"
)

// Kind identifies what happened to a path between two trees.
type Kind int

const (
	// Added marks a path that did not exist in the previous tree.
	Added Kind = iota
	// Deleted marks a path that no longer exists in the current tree.
	Deleted
	// Modified marks a path present, with different content, in both trees.
	Modified
)

// DiffEntry is one path-level change between two commit trees. OldPath and
// NewPath are equal for Modified entries; exactly one is empty for Added
// (OldPath) and Deleted (NewPath). go-git's Tree.Diff never reports a
// "renamed" kind on its own — DiffResolver synthesizes renames out of
// Added/Deleted pairs, which spec.md §4.2 explicitly allows.
type DiffEntry struct {
	Kind    Kind
	OldPath string
	NewPath string
	// OldContent is the blob bytes at OldPath before the change; nil for Added.
	OldContent []byte
	// NewContent is the blob bytes at NewPath after the change; nil for Deleted.
	NewContent []byte
}

// Path returns the entry's defining path: NewPath unless this is a
// Deleted entry, in which case OldPath.
func (e DiffEntry) Path() string {
	if e.Kind == Deleted {
		return e.OldPath
	}
	return e.NewPath
}

// Commit is a single point in the replayed history: its author identity,
// its message, and the tree it produced.
type Commit struct {
	Hash    string
	Author  string
	Message string

	tree *object.Tree
}

// Source wraps an on-disk git repository opened read-only.
type Source struct {
	repo *git.Repository
}

// Open opens the repository at path, expanding a leading ~ the way a shell
// would.
func Open(path string) (*Source, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding repository path")
	}
	repo, err := git.PlainOpen(expanded)
	if err != nil {
		return nil, errors.Wrap(err, "opening repository")
	}
	return &Source{repo: repo}, nil
}

// Commits returns every reachable commit from HEAD, oldest first: the
// order internal/replay's Driver must walk in, since git log itself
// always yields newest first.
func (s *Source) Commits() ([]Commit, error) {
	head, err := s.repo.Head()
	if err != nil {
		return nil, errors.Wrap(err, "resolving HEAD")
	}
	iter, err := s.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, errors.Wrap(err, "walking commit log")
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		tree, err := c.Tree()
		if err != nil {
			return errors.Wrapf(err, "loading tree of %s", c.Hash)
		}
		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Author:  identityOf(c),
			Message: c.Message,
			tree:    tree,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

// identityOf renders a commit's author as "Name <email>", the identity
// granularity spec.md treats as a single opaque Author token.
func identityOf(c *object.Commit) string {
	return c.Author.Name + " <" + c.Author.Email + ">"
}

// SeedTree lists every blob in commit's tree, used to replay_new the
// initial commit of a history in its entirety (spec.md §4.5, Driver seed
// step).
func (s *Source) SeedTree(commit Commit) ([]DiffEntry, error) {
	var entries []DiffEntry
	walker := object.NewTreeWalker(commit.tree, true, nil)
	defer walker.Close()
	for {
		name, te, err := walker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.NewSourceError(commit.Hash, err)
		}
		if !te.Mode.IsFile() {
			continue
		}
		content, err := blobBytes(commit.tree, name)
		if err != nil {
			return nil, core.NewSourceError(commit.Hash, err)
		}
		entries = append(entries, DiffEntry{Kind: Added, NewPath: name, NewContent: content})
	}
	return entries, nil
}

// Diff computes the path-level changes between prev and curr's trees. prev
// may be the zero Commit, in which case every file in curr's tree is
// reported as Added (used only defensively; the Driver normally seeds the
// very first commit via SeedTree instead).
func (s *Source) Diff(prev, curr Commit) ([]DiffEntry, error) {
	if prev.tree == nil {
		return s.SeedTree(curr)
	}
	changes, err := object.DiffTree(prev.tree, curr.tree)
	if err != nil {
		return nil, core.NewSourceError(curr.Hash, err)
	}

	entries := make([]DiffEntry, 0, len(changes))
	for _, change := range changes {
		entry, err := s.resolveChange(curr.Hash, change)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Source) resolveChange(commitHash string, change *object.Change) (DiffEntry, error) {
	from, to, err := change.Files()
	if err != nil {
		return DiffEntry{}, core.NewSourceError(commitHash, err)
	}

	switch {
	case from == nil && to != nil:
		content, err := fileBytes(to)
		if err != nil {
			return DiffEntry{}, core.NewSourceError(commitHash, err)
		}
		return DiffEntry{Kind: Added, NewPath: change.To.Name, NewContent: content}, nil

	case from != nil && to == nil:
		content, err := fileBytes(from)
		if err != nil {
			return DiffEntry{}, core.NewSourceError(commitHash, err)
		}
		return DiffEntry{Kind: Deleted, OldPath: change.From.Name, OldContent: content}, nil

	default:
		oldContent, err := fileBytes(from)
		if err != nil {
			return DiffEntry{}, core.NewSourceError(commitHash, err)
		}
		newContent, err := fileBytes(to)
		if err != nil {
			return DiffEntry{}, core.NewSourceError(commitHash, err)
		}
		return DiffEntry{
			Kind:       Modified,
			OldPath:    change.From.Name,
			NewPath:    change.To.Name,
			OldContent: oldContent,
			NewContent: newContent,
		}, nil
	}
}

func fileBytes(f *object.File) ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	contents, err := f.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(contents), nil
}

func blobBytes(tree *object.Tree, name string) ([]byte, error) {
	if tree == nil {
		return nil, nil
	}
	f, err := tree.File(name)
	if err != nil {
		return nil, err
	}
	contents, err := f.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(contents), nil
}
