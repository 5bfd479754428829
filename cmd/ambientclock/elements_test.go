package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementsCommandListsTypes(t *testing.T) {
	t.Parallel()

	cmd := newElementsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	listing := out.String()
	assert.Contains(t, listing, "clock")
	assert.Contains(t, listing, "date")
	assert.Contains(t, listing, "favorite-toggle")
	assert.Contains(t, listing, "draggable")
}
