package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyraxred/gitreplay/internal/core"
)

func TestRootArgsRejectsWrongArgCount(t *testing.T) {
	err := rootCmd.Args(rootCmd, nil)
	assert.Error(t, err)
	_, ok := err.(*core.UsageError)
	assert.True(t, ok)

	err = rootCmd.Args(rootCmd, []string{"a", "b"})
	assert.Error(t, err)

	err = rootCmd.Args(rootCmd, []string{"/some/repo"})
	assert.NoError(t, err)
}
