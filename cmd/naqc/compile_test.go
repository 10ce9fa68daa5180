package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatchGrid(t *testing.T) {
	rows, cols, err := parsePatchGrid("2x3")
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
}

func TestParsePatchGridRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "2", "2x", "x3", "2-3", "axb"} {
		_, _, err := parsePatchGrid(s)
		assert.Errorf(t, err, "expected %q to be rejected", s)
	}
}
