package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWarnf(t *testing.T) {
	l := NewLogger()
	var buf bytes.Buffer
	l.W.SetOutput(&buf)

	l.Warnf("%s-%s", "hello", "world")
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "hello-world")
}
