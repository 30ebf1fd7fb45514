package deploy

import (
	"slices"
)

// Future is a handle to the address a step will have once it is deployed.
type Future struct {
	Module   string
	Contract string
}

// Id returns the identifier used in deployment journals, e.g. "NebulaXModule#NebXToken".
func (f Future) Id() string {
	return f.Module + "#" + f.Contract
}

func (f Future) String() string {
	return f.Id()
}

// Edge is a dependency: From must be deployed before To.
type Edge struct {
	From Future
	To   Future
}

type Step struct {
	future       Future
	args         []any
	dependencies []Future
}

func (s Step) Future() Future {
	return s.future
}

// Args returns the constructor arguments as declared: literals and Futures.
func (s Step) Args() []any {
	return slices.Clone(s.args)
}

func (s Step) Dependencies() []Future {
	return slices.Clone(s.dependencies)
}

// Unit is a named deployment graph. It is not modified after NewModule returns.
type Unit struct {
	name    string
	steps   []Step
	index   map[string]int
	results map[string]Future
}

func (u *Unit) Name() string {
	return u.name
}

// Steps returns the steps in declaration order.
func (u *Unit) Steps() []Step {
	res := make([]Step, len(u.steps))
	for i, s := range u.steps {
		res[i] = Step{
			future:       s.future,
			args:         s.Args(),
			dependencies: s.Dependencies(),
		}
	}
	return res
}

func (u *Unit) Step(id string) (Step, bool) {
	i, ok := u.index[id]
	if !ok {
		return Step{}, false
	}
	return u.Steps()[i], true
}

func (u *Unit) DependenciesOf(id string) []Future {
	i, ok := u.index[id]
	if !ok {
		return nil
	}
	return u.steps[i].Dependencies()
}

func (u *Unit) Edges() []Edge {
	var edges []Edge
	for _, s := range u.steps {
		for _, dep := range s.dependencies {
			edges = append(edges, Edge{From: dep, To: s.future})
		}
	}
	return edges
}

// Results returns the handles the module exposes, keyed by symbolic name.
func (u *Unit) Results() map[string]Future {
	res := make(map[string]Future, len(u.results))
	for k, v := range u.results {
		res[k] = v
	}
	return res
}

func (u *Unit) Len() int {
	return len(u.steps)
}
