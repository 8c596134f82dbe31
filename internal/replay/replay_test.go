package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyraxred/gitreplay/internal/message"
	"github.com/cyraxred/gitreplay/internal/stats"
)

func newEngine() *Engine {
	return New(stats.New(), message.New())
}

// Scenario 1: single commit, single file, three lines, one author.
func TestScenarioSingleFileCreation(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.New("A", "a.txt", []byte("x\ny\nz\n")))
	e.Commit("A", "initial")

	assert.Equal(t, 1, e.Stats.Global.Create)
	assert.Equal(t, 3, e.Stats.Global.Insert)
	assert.Equal(t, 1, e.Stats.Global.Commit)

	lines := e.Snapshot.GetLines("a.txt")
	require.Len(t, lines, 3)
	assert.Equal(t, "x", string(lines[0].Text))
	assert.Equal(t, "A", lines[0].Author)
	assert.Equal(t, "z", string(lines[2].Text))
}

// Scenario 2: commit 2 by B changes line 2 to "y2" - a peer conflict.
func TestScenarioChangeIsPeerConflict(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.New("A", "a.txt", []byte("x\ny\nz\n")))
	e.Commit("A", "initial")

	require.NoError(t, e.Mod("B", "a.txt", []byte("x\ny\nz\n"), []byte("x\ny2\nz\n"), "c2"))
	e.Commit("B", "update")

	assert.Equal(t, 1, e.Stats.Global.Change)
	assert.Equal(t, 1, e.Stats.ConflictTable["B"]["A"].Change)

	made := e.Stats.ConflictsMade()
	assert.Equal(t, 1, made["B"].PeerChange)
	recv := e.Stats.ConflictsReceived()
	assert.Equal(t, 1, recv["A"].PeerChange)
}

// Scenario 3: commit 2 by A deletes all lines and the file - a self conflict.
func TestScenarioSelfDeleteConflict(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.New("A", "a.txt", []byte("x\ny\nz\n")))
	e.Commit("A", "initial")

	require.NoError(t, e.Del("A", "a.txt", []byte("x\ny\nz\n"), "c2"))
	e.Commit("A", "remove file")

	assert.Equal(t, 3, e.Stats.Global.Delete)
	assert.Equal(t, 1, e.Stats.Global.Remove)
	assert.Equal(t, 3, e.Stats.ConflictTable["A"]["A"].Delete)

	made := e.Stats.ConflictsMade()
	assert.Equal(t, 3, made["A"].SelfDelete)
	recv := e.Stats.ConflictsReceived()
	assert.Equal(t, 3, recv["A"].SelfDelete)

	assert.False(t, e.Snapshot.Has("a.txt"))
}

// Scenario 6: git-svn-id trailer is stripped and an empty-after-cleanup
// message triggers no_msg.
func TestScenarioMessageCleanupAndNoMsg(t *testing.T) {
	e := newEngine()
	e.Commit("A", "fix bug\n\ngit-svn-id: http://...@42")
	assert.Equal(t, 1, e.Messages.Global.Term["fix"])
	assert.Equal(t, 1, e.Messages.Global.Term["bug"])
	assert.Equal(t, 0, e.Stats.Global.NoMsg)

	e.Commit("A", "git-svn-id: http://...@43")
	assert.Equal(t, 1, e.Stats.Global.NoMsg)
	assert.Equal(t, 1, e.Stats.AuthorStats["A"].Global.NoMsg)
}

func TestRenMigratesPathStats(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.New("A", "p1", []byte("x\n")))
	require.NoError(t, e.Ren("A", "p1", "p2"))

	assert.Equal(t, 1, e.Stats.Global.Rename)
	assert.False(t, e.Snapshot.Has("p1"))
	assert.True(t, e.Snapshot.Has("p2"))

	_, stillUnderOldPath := e.Stats.PathStats["p1"]
	assert.False(t, stillUnderOldPath)
	assert.Equal(t, 1, e.Stats.PathStats["p2"].Global.Create)
}

func TestModReplaceCountsOldSideOnly(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.New("A", "a.txt", []byte("x\ny\nz\n")))
	// replace the 1-line middle span with a 2-line span.
	require.NoError(t, e.Mod("B", "a.txt", []byte("x\ny\nz\n"), []byte("x\ny1\ny2\nz\n"), "c2"))

	// per spec.md §4.5, a replace only emits `change` events (one per old
	// line in the span); the replacement lines are appended silently.
	assert.Equal(t, 1, e.Stats.Global.Change)
	assert.Equal(t, 0, e.Stats.Global.Insert)

	lines := e.Snapshot.GetLines("a.txt")
	require.Len(t, lines, 4)
	assert.Equal(t, "y1", string(lines[1].Text))
	assert.Equal(t, "y2", string(lines[2].Text))
}

func TestDelFailsWhenContentDoesNotMatchTrackedLines(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.New("A", "a.txt", []byte("x\ny\n")))

	err := e.Del("A", "a.txt", []byte("different\n"), "c2")
	assert.Error(t, err)
}
