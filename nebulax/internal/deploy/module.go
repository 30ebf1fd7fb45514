package deploy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/NebulaX/nebulax/nebulax/common/check"
)

var ErrInvalidModuleName = errors.New("invalid module name")

// ValidateModuleName rejects names NewModule would panic on. Futures are
// identified as "<module>#<contract>", so the name must be non-empty and free of '#'.
func ValidateModuleName(name string) error {
	if name == "" || strings.Contains(name, "#") {
		return fmt.Errorf("%w: %q", ErrInvalidModuleName, name)
	}
	return nil
}

// ModuleBuilder collects steps while a module definition runs.
type ModuleBuilder struct {
	unit   *Unit
	sealed bool
}

// NewModule runs define and returns the resulting unit. define returns the futures
// the module exposes to callers, keyed by symbolic name.
//
// Mistakes in a definition (duplicate contracts, references to undeclared or foreign
// futures) are programming errors and panic.
func NewModule(name string, define func(m *ModuleBuilder) map[string]Future) *Unit {
	check.PanicIfErr(ValidateModuleName(name))

	b := &ModuleBuilder{
		unit: &Unit{
			name:    name,
			index:   make(map[string]int),
			results: make(map[string]Future),
		},
	}
	results := define(b)
	b.sealed = true

	for key, f := range results {
		b.mustOwn(f)
		b.unit.results[key] = f
	}
	return b.unit
}

// Contract declares the deployment of contract with the given constructor arguments.
// A Future argument is replaced with the deployed address of that step and makes this
// step depend on it.
func (m *ModuleBuilder) Contract(contract string, args ...any) Future {
	check.PanicIff(m.sealed, "module %s is already built", m.unit.name)
	check.PanicIfNotf(contract != "", "contract name must not be empty in module %s", m.unit.name)

	f := Future{Module: m.unit.name, Contract: contract}
	_, exists := m.unit.index[f.Id()]
	check.PanicIff(exists, "contract %s is declared twice", f.Id())

	var deps []Future
	for _, arg := range args {
		_, isPtr := arg.(*Future)
		check.PanicIff(isPtr, "futures must be passed by value in %s", f.Id())

		if dep, ok := arg.(Future); ok {
			m.mustOwn(dep)
			if !slices.Contains(deps, dep) {
				deps = append(deps, dep)
			}
		}
	}

	m.unit.index[f.Id()] = len(m.unit.steps)
	m.unit.steps = append(m.unit.steps, Step{
		future:       f,
		args:         slices.Clone(args),
		dependencies: deps,
	})
	return f
}

func (m *ModuleBuilder) mustOwn(f Future) {
	check.PanicIfNotf(f.Module == m.unit.name, "future %s belongs to another module than %s", f.Id(), m.unit.name)
	_, ok := m.unit.index[f.Id()]
	check.PanicIfNotf(ok, "future %s is not declared in module %s", f.Id(), m.unit.name)
}
