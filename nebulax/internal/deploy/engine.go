package deploy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Request asks an Engine to deploy one contract. ConstructorArgs never contain
// Futures: references are already resolved to addresses.
type Request struct {
	Future          Future
	ConstructorArgs []any
}

// Engine submits deployments to a chain. Implementations live outside this package;
// the executor only guarantees the order in which Deploy is called.
type Engine interface {
	Deploy(ctx context.Context, req Request) (common.Address, error)
}

var ErrUnresolvedArgument = errors.New("constructor argument is not resolved")

// SimulatedEngine predicts the addresses that plain CREATE deployments from
// the account would get, starting at nonce. Nothing is sent anywhere.
type SimulatedEngine struct {
	lock  sync.Mutex
	from  common.Address
	nonce uint64
}

var _ Engine = (*SimulatedEngine)(nil)

func NewSimulatedEngine(from common.Address, nonce uint64) *SimulatedEngine {
	return &SimulatedEngine{from: from, nonce: nonce}
}

// Deploy assigns nonces in call order.
func (e *SimulatedEngine) Deploy(ctx context.Context, req Request) (common.Address, error) {
	if err := ctx.Err(); err != nil {
		return common.Address{}, err
	}
	for i, arg := range req.ConstructorArgs {
		if _, ok := arg.(Future); ok {
			return common.Address{}, fmt.Errorf("%w: argument %d of %s", ErrUnresolvedArgument, i, req.Future)
		}
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	addr := crypto.CreateAddress(e.from, e.nonce)
	e.nonce++
	return addr, nil
}

func (e *SimulatedEngine) Nonce() uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.nonce
}
