package model

// EqVar asserts a == b.
type EqVar struct{ A, B VarID }

func (c EqVar) Satisfied(a Assignment) bool { return a[c.A] == a[c.B] }
func (c EqVar) Vars() []VarID               { return []VarID{c.A, c.B} }

// EqConst asserts v == k.
type EqConst struct {
	V VarID
	K int
}

func (c EqConst) Satisfied(a Assignment) bool { return a[c.V] == c.K }
func (c EqConst) Vars() []VarID               { return []VarID{c.V} }

// NotEqVar asserts a != b.
type NotEqVar struct{ A, B VarID }

func (c NotEqVar) Satisfied(a Assignment) bool { return a[c.A] != a[c.B] }
func (c NotEqVar) Vars() []VarID               { return []VarID{c.A, c.B} }

// LessVar asserts a < b.
type LessVar struct{ A, B VarID }

func (c LessVar) Satisfied(a Assignment) bool { return a[c.A] < a[c.B] }
func (c LessVar) Vars() []VarID               { return []VarID{c.A, c.B} }

// LessEqVar asserts a <= b.
type LessEqVar struct{ A, B VarID }

func (c LessEqVar) Satisfied(a Assignment) bool { return a[c.A] <= a[c.B] }
func (c LessEqVar) Vars() []VarID               { return []VarID{c.A, c.B} }

// Implies asserts If => Then (as a boolean truth table over {0,1}-domain
// variables: If must be 0 or Then must be satisfied).
type Implies struct {
	If   VarID
	Then Constraint
}

func (c Implies) Satisfied(a Assignment) bool {
	if a[c.If] == 0 {
		return true
	}
	return c.Then.Satisfied(a)
}
func (c Implies) Vars() []VarID { return append([]VarID{c.If}, c.Then.Vars()...) }

// And asserts every sub-constraint holds.
type And struct{ Clauses []Constraint }

func (c And) Satisfied(a Assignment) bool {
	for _, cl := range c.Clauses {
		if !cl.Satisfied(a) {
			return false
		}
	}
	return true
}
func (c And) Vars() []VarID {
	var out []VarID
	for _, cl := range c.Clauses {
		out = append(out, cl.Vars()...)
	}
	return out
}

// Or asserts at least one sub-constraint holds.
type Or struct{ Clauses []Constraint }

func (c Or) Satisfied(a Assignment) bool {
	for _, cl := range c.Clauses {
		if cl.Satisfied(a) {
			return true
		}
	}
	return len(c.Clauses) == 0
}
func (c Or) Vars() []VarID {
	var out []VarID
	for _, cl := range c.Clauses {
		out = append(out, cl.Vars()...)
	}
	return out
}

// Not negates a sub-constraint.
type Not struct{ Clause Constraint }

func (c Not) Satisfied(a Assignment) bool { return !c.Clause.Satisfied(a) }
func (c Not) Vars() []VarID                { return c.Clause.Vars() }

// InRange asserts lo <= v <= hi.
type InRange struct {
	V      VarID
	Lo, Hi int
}

func (c InRange) Satisfied(a Assignment) bool { return a[c.V] >= c.Lo && a[c.V] <= c.Hi }
func (c InRange) Vars() []VarID               { return []VarID{c.V} }

// OneOf asserts v is one of the given values (used to restrict a variable
// to a non-contiguous subset of its declared domain, e.g. a gate variable
// restricted to only the Rydberg-stage indices).
type OneOf struct {
	V      VarID
	Values []int
}

func (c OneOf) Satisfied(a Assignment) bool {
	for _, v := range c.Values {
		if a[c.V] == v {
			return true
		}
	}
	return false
}
func (c OneOf) Vars() []VarID { return []VarID{c.V} }

// Func wraps an arbitrary predicate over a full assignment as a
// Constraint, for encoding rules that are more naturally expressed as code
// than as a composition of atomic constraints (e.g. "every entangling-range
// pair not gated this stage must be at distinct sites"). VarsList must name
// every variable the predicate reads, so the solver knows when it is safe
// to evaluate.
type Func struct {
	VarsList []VarID
	Pred     func(Assignment) bool
}

func (c Func) Satisfied(a Assignment) bool { return c.Pred(a) }
func (c Func) Vars() []VarID               { return c.VarsList }

// AbsDiffLessEq asserts |a - b| <= k.
type AbsDiffLessEq struct {
	A, B VarID
	K    int
}

func (c AbsDiffLessEq) Satisfied(a Assignment) bool {
	d := a[c.A] - a[c.B]
	if d < 0 {
		d = -d
	}
	return d <= c.K
}
func (c AbsDiffLessEq) Vars() []VarID { return []VarID{c.A, c.B} }
