package astar_test

import (
	"testing"

	"github.com/kegliz/naqc/na/astar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceTwoJobsDistinctSites(t *testing.T) {
	jobs := []astar.Job{
		{
			ID: 0, SrcRow: 0, SrcCol: 0,
			Options: []astar.Option{
				{Row: 0, Col: 0, Dist2: 0},
				{Row: 0, Col: 1, Dist2: 1},
			},
		},
		{
			ID: 1, SrcRow: 0, SrcCol: 1,
			Options: []astar.Option{
				{Row: 0, Col: 0, Dist2: 1},
				{Row: 0, Col: 1, Dist2: 0},
			},
		},
	}
	choices, err := astar.Place(jobs)
	require.NoError(t, err)
	require.Len(t, choices, 2)

	site0 := jobs[0].Options[choices[0]]
	site1 := jobs[1].Options[choices[1]]
	assert.NotEqual(t, site0.Row*1000+site0.Col, site1.Row*1000+site1.Col)
}

func TestPlaceNoPathWhenNoOptions(t *testing.T) {
	jobs := []astar.Job{{ID: 0, Options: nil}}
	_, err := astar.Place(jobs)
	assert.ErrorIs(t, err, astar.ErrNoPath)
}

func TestPlaceSingleJobPicksCheapest(t *testing.T) {
	jobs := []astar.Job{
		{
			ID: 0,
			Options: []astar.Option{
				{Row: 2, Col: 2, Dist2: 9},
				{Row: 0, Col: 0, Dist2: 1},
			},
		},
	}
	choices, err := astar.Place(jobs)
	require.NoError(t, err)
	require.Len(t, choices, 1)
	assert.Equal(t, 1, choices[0])
}
