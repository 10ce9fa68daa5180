package archio_test

import (
	"testing"

	"github.com/kegliz/naqc/na/archio"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "name": "toy",
  "storage_zones": [
    {"zone_id": 0, "offset": [0,0], "dimension": [4,4], "slms": [
      {"id": 1, "site_separation": [1,1], "r": 2, "c": 2, "location": [0,0]}
    ]}
  ],
  "entanglement_zones": [
    {"zone_id": 1, "offset": [10,0], "dimension": [2,2], "slms": [
      {"id": 2, "site_separation": [1,1], "r": 1, "c": 2, "location": [10,0]},
      {"id": 3, "site_separation": [1,1], "r": 1, "c": 2, "location": [10,2]}
    ]}
  ],
  "aods": [{"id": 1, "site_separation": [1,1], "r": 3, "c": 3}],
  "rydberg_range": [[[9,-1],[13,3]]]
}`

const sampleCSV = "x,y\n0,0\n1,0\n0,1\n1,1\n"

func TestLoadJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/arch.json", []byte(sampleJSON), 0o644))

	a, err := archio.LoadJSON(fs, "/arch.json")
	require.NoError(t, err)
	assert.Equal(t, "toy", a.Name)
	assert.Len(t, a.StorageSLMs, 1)
	assert.Len(t, a.EntanglementSLMs, 2)
	assert.Len(t, a.AODs, 1)
	assert.True(t, a.InEntanglingRange(10, 0))
}

func TestLoadGridCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/grid.csv", []byte(sampleCSV), 0o644))

	sites, err := archio.LoadGridCSV(fs, "/grid.csv")
	require.NoError(t, err)
	assert.Len(t, sites, 4)
	assert.Equal(t, archio.GridSite{X: 1, Y: 1}, sites[3])
}

func TestLoadGridCSVBadHeader(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.csv", []byte("a,b\n1,2\n"), 0o644))

	_, err := archio.LoadGridCSV(fs, "/bad.csv")
	assert.Error(t, err)
}
