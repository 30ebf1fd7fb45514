package deploy

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var ErrDependencyNotDeployed = errors.New("dependency is not deployed yet")

// Deployment is the address book of a run, keyed by future id. It is safe for concurrent use.
type Deployment struct {
	lock      sync.RWMutex
	addresses map[string]common.Address
}

func NewDeployment() *Deployment {
	return &Deployment{addresses: make(map[string]common.Address)}
}

// NewDeploymentFrom seeds the address book, e.g. from a journal of a previous run.
func NewDeploymentFrom(addresses map[string]common.Address) *Deployment {
	d := NewDeployment()
	maps.Copy(d.addresses, addresses)
	return d
}

func (d *Deployment) Address(f Future) (common.Address, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	addr, ok := d.addresses[f.Id()]
	return addr, ok
}

func (d *Deployment) Set(f Future, addr common.Address) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.addresses[f.Id()] = addr
}

func (d *Deployment) All() map[string]common.Address {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return maps.Clone(d.addresses)
}

// ResolveArgs replaces Future arguments of step with deployed addresses.
// It fails with ErrDependencyNotDeployed if any dependency has no address yet.
func ResolveArgs(step Step, d *Deployment) ([]any, error) {
	args := step.Args()
	for i, arg := range args {
		f, ok := arg.(Future)
		if !ok {
			continue
		}
		addr, ok := d.Address(f)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires %s", ErrDependencyNotDeployed, step.Future(), f)
		}
		args[i] = addr
	}
	return args, nil
}
