package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertNewFailsOnExistingPath(t *testing.T) {
	s := New()
	require.NoError(t, s.InsertNew("a.txt", []Line{{Author: "A", Text: []byte("x")}}))
	err := s.InsertNew("a.txt", []Line{{Author: "B", Text: []byte("y")}})
	assert.Error(t, err)
}

func TestRemoveFailsOnAbsentPath(t *testing.T) {
	s := New()
	_, err := s.Remove("missing.txt")
	assert.Error(t, err)
}

func TestRenamePreservesTupleIdentity(t *testing.T) {
	s := New()
	lines := []Line{{Author: "A", Text: []byte("x")}, {Author: "A", Text: []byte("y")}}
	require.NoError(t, s.InsertNew("old.txt", lines))

	require.NoError(t, s.Rename("old.txt", "new.txt"))

	assert.False(t, s.Has("old.txt"))
	got := s.GetLines("new.txt")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Author)
	assert.Equal(t, []byte("x"), got[0].Text)
}

func TestRenameFailsWhenTargetExists(t *testing.T) {
	s := New()
	require.NoError(t, s.InsertNew("a.txt", nil))
	require.NoError(t, s.InsertNew("b.txt", nil))

	err := s.Rename("a.txt", "b.txt")
	assert.Error(t, err)
}

func TestRenameFailsWhenSourceAbsent(t *testing.T) {
	s := New()
	err := s.Rename("missing.txt", "b.txt")
	assert.Error(t, err)
}

func TestCheckInvariantDetectsMismatch(t *testing.T) {
	s := New()
	require.NoError(t, s.InsertNew("a.txt", []Line{{Author: "A", Text: []byte("x")}}))

	assert.NoError(t, s.CheckInvariant("a.txt", "c1", [][]byte{[]byte("x")}))
	assert.Error(t, s.CheckInvariant("a.txt", "c1", [][]byte{[]byte("different")}))
	assert.Error(t, s.CheckInvariant("a.txt", "c1", [][]byte{[]byte("x"), []byte("extra")}))
}

func TestInterningDeduplicatesIdenticalLines(t *testing.T) {
	s := New()
	require.NoError(t, s.InsertNew("a.txt", []Line{{Author: "A", Text: []byte("same")}}))
	require.NoError(t, s.InsertNew("b.txt", []Line{{Author: "B", Text: []byte("same")}}))

	a := s.GetLines("a.txt")[0].Text
	b := s.GetLines("b.txt")[0].Text
	assert.Equal(t, a, b)
	assert.Same(t, &a[0], &b[0])
}
