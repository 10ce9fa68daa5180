package model_test

import (
	"testing"

	"github.com/kegliz/naqc/na/smt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordAndStageVarNaming(t *testing.T) {
	assert.Equal(t, model.VarID("x[2,5]"), model.Coord("x", 2, 5))
	assert.Equal(t, model.VarID("load_col[3,1]"), model.StageVar("load_col", 3, 1))
	assert.Equal(t, model.VarID("gate[7]"), model.GateVar(7))
}

func TestAddVarIdempotentSameDomain(t *testing.T) {
	m := model.New()
	m.AddVar("x", model.Domain{Lo: 0, Hi: 3})
	m.AddVar("x", model.Domain{Lo: 0, Hi: 3})
	assert.Len(t, m.Vars(), 1)
}

func TestAddVarPanicsOnDomainMismatch(t *testing.T) {
	m := model.New()
	m.AddVar("x", model.Domain{Lo: 0, Hi: 3})
	assert.Panics(t, func() { m.AddVar("x", model.Domain{Lo: 0, Hi: 4}) })
}

func TestConstraintsBasic(t *testing.T) {
	a := model.Assignment{"p": 1, "q": 2, "r": 2}
	assert.True(t, model.EqVar{A: "q", B: "r"}.Satisfied(a))
	assert.False(t, model.EqVar{A: "p", B: "q"}.Satisfied(a))
	assert.True(t, model.LessVar{A: "p", B: "q"}.Satisfied(a))
	assert.True(t, model.NotEqVar{A: "p", B: "q"}.Satisfied(a))
	assert.True(t, model.InRange{V: "p", Lo: 0, Hi: 1}.Satisfied(a))
	assert.False(t, model.InRange{V: "q", Lo: 0, Hi: 1}.Satisfied(a))
	assert.True(t, model.OneOf{V: "q", Values: []int{2, 4}}.Satisfied(a))
	assert.False(t, model.OneOf{V: "p", Values: []int{2, 4}}.Satisfied(a))
	assert.True(t, model.AbsDiffLessEq{A: "q", B: "r", K: 0}.Satisfied(a))
	implies := model.Implies{If: "p", Then: model.EqVar{A: "q", B: "r"}}
	require.True(t, implies.Satisfied(a))
}

func TestFuncConstraintReadsDeclaredVars(t *testing.T) {
	c := model.Func{
		VarsList: []model.VarID{"p", "q"},
		Pred:     func(a model.Assignment) bool { return a["p"]+a["q"] == 3 },
	}
	assert.ElementsMatch(t, []model.VarID{"p", "q"}, c.Vars())
	assert.True(t, c.Satisfied(model.Assignment{"p": 1, "q": 2}))
	assert.False(t, c.Satisfied(model.Assignment{"p": 1, "q": 1}))
}
