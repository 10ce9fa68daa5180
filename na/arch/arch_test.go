package arch_test

import (
	"testing"

	"github.com/kegliz/naqc/na/arch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *arch.Architecture {
	t.Helper()
	storage := []arch.SLM{
		{ID: 1, Rows: 2, Cols: 2, BaseX: 0, BaseY: 0, DX: 1, DY: 1},
	}
	entanglement := []arch.SLM{
		{ID: 2, Rows: 1, Cols: 2, BaseX: 10, BaseY: 0, DX: 1, DY: 1},
		{ID: 3, Rows: 1, Cols: 2, BaseX: 10, BaseY: 2, DX: 1, DY: 1},
	}
	a, err := arch.New("test", storage, entanglement, nil,
		[]arch.Rectangle{{MinX: 9, MinY: -1, MaxX: 13, MaxY: 3}}, 1, 2, 5)
	require.NoError(t, err)
	return a
}

func TestCoordsAndDistance(t *testing.T) {
	a := sample(t)
	x, y, err := a.Coords(arch.Site{SLMID: 1, Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)

	d, err := a.Distance(arch.Site{SLMID: 1, Row: 0, Col: 0}, arch.Site{SLMID: 1, Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestOtherEntanglementSite(t *testing.T) {
	a := sample(t)
	other, err := a.OtherEntanglementSite(arch.Site{SLMID: 2, Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, arch.Site{SLMID: 3, Row: 0, Col: 0}, other)
}

func TestNearestStorageSite(t *testing.T) {
	a := sample(t)
	occupied := map[arch.Site]bool{{SLMID: 1, Row: 0, Col: 0}: true}
	s, err := a.NearestStorageSite(arch.Site{SLMID: 1, Row: 0, Col: 0}, occupied)
	require.NoError(t, err)
	assert.NotEqual(t, arch.Site{SLMID: 1, Row: 0, Col: 0}, s)
}

func TestInvalidOddEntanglementSLMs(t *testing.T) {
	_, err := arch.New("bad", nil, []arch.SLM{{ID: 1, Rows: 1, Cols: 1}}, nil, nil, 1, 1, 1)
	assert.Error(t, err)
}

func TestInEntanglingRange(t *testing.T) {
	a := sample(t)
	assert.True(t, a.InEntanglingRange(10, 0))
	assert.False(t, a.InEntanglingRange(0, 0))
}
