package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSSEEscape(t *testing.T) {
	assert.Equal(t, "hello", sseEscape("hello"))
	assert.Equal(t, "line one\ndata: line two", sseEscape("line one\nline two"))
	assert.Equal(t, "\ndata: ", sseEscape("\n"))
	assert.Equal(t, "", sseEscape(""))
}
