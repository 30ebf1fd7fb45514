package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/NebulaX/nebulax/nebulax/common/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// Result of a run. Addresses and Durations are keyed by future id; Skipped lists
// the steps taken from the seeded deployment instead of the engine.
type Result struct {
	Module    string
	Addresses map[string]common.Address
	Skipped   []Future
	Durations map[string]time.Duration
}

type Executor struct {
	engine      Engine
	concurrency int
	deployment  *Deployment
	clock       clockwork.Clock
	logger      logging.Logger
}

type Option func(*Executor)

func WithConcurrency(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithDeployment makes the executor reuse addresses of a previous run.
// Steps already present are not deployed again.
func WithDeployment(d *Deployment) Option {
	return func(e *Executor) {
		e.deployment = d
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(e *Executor) {
		e.clock = clock
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

func NewExecutor(engine Engine, opts ...Option) *Executor {
	e := &Executor{
		engine:      engine,
		concurrency: DefaultConcurrency,
		clock:       clockwork.NewRealClock(),
		logger:      logging.NewLogger("executor"),
	}
	for _, o := range opts {
		o(e)
	}
	if e.deployment == nil {
		e.deployment = NewDeployment()
	}
	return e
}

func (e *Executor) Deployment() *Deployment {
	return e.deployment
}

type completion struct {
	index    int
	addr     common.Address
	duration time.Duration
}

// Run deploys every step of unit once all of its dependencies have addresses.
// Independent steps run concurrently. Steps with an address in the seeded deployment
// are skipped unless one of their dependencies had to be deployed in this run. The first failure cancels the run;
// dependents of a failed step are never started.
func (e *Executor) Run(ctx context.Context, unit *Unit) (*Result, error) {
	steps := unit.Steps()
	logger := e.logger.With().Str(logging.FieldModule, unit.Name()).Logger()

	result := &Result{
		Module:    unit.Name(),
		Addresses: make(map[string]common.Address, len(steps)),
		Durations: make(map[string]time.Duration, len(steps)),
	}

	index := make(map[string]int, len(steps))
	for i, s := range steps {
		index[s.Future().Id()] = i
	}
	waiting := make([]int, len(steps))
	dependents := make([][]int, len(steps))
	for i, s := range steps {
		waiting[i] = len(s.Dependencies())
		for _, dep := range s.Dependencies() {
			j := index[dep.Id()]
			dependents[j] = append(dependents[j], i)
		}
	}

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.concurrency)

	// Buffered for every step so workers never block on reporting.
	done := make(chan completion, len(steps))

	var ready []int
	for i := range steps {
		if waiting[i] == 0 {
			ready = append(ready, i)
		}
	}

	// Steps deployed by the engine in this run. A seeded address of a step that
	// depends on one of them was built against a replaced dependency and is redeployed.
	fresh := make([]bool, len(steps))
	dependsOnFresh := func(i int) bool {
		for _, dep := range steps[i].Dependencies() {
			if fresh[index[dep.Id()]] {
				return true
			}
		}
		return false
	}

	finished := 0
	complete := func(c completion) {
		f := steps[c.index].Future()
		result.Addresses[f.Id()] = c.addr
		result.Durations[f.Id()] = c.duration
		finished++
		for _, j := range dependents[c.index] {
			waiting[j]--
			if waiting[j] == 0 {
				ready = append(ready, j)
			}
		}
	}

	for finished < len(steps) {
		for len(ready) > 0 {
			i := ready[0]
			ready = ready[1:]
			step := steps[i]

			if addr, ok := e.deployment.Address(step.Future()); ok && !dependsOnFresh(i) {
				logger.Info().
					Str(logging.FieldFuture, step.Future().Id()).
					Stringer(logging.FieldContractAddress, addr).
					Msg("Step is already deployed, skipping")
				result.Skipped = append(result.Skipped, step.Future())
				complete(completion{index: i, addr: addr})
				continue
			}

			if gCtx.Err() != nil {
				break
			}
			eg.Go(func() error {
				return e.runStep(gCtx, i, step, done, logger)
			})
		}

		if finished == len(steps) {
			break
		}

		select {
		case c := <-done:
			fresh[c.index] = true
			complete(c)
		case <-gCtx.Done():
			if err := eg.Wait(); err != nil {
				return nil, err
			}
			return nil, gCtx.Err()
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Info().
		Int("deployed", len(steps)-len(result.Skipped)).
		Int("skipped", len(result.Skipped)).
		Msg("Module deployed")
	return result, nil
}

func (e *Executor) runStep(ctx context.Context, i int, step Step, done chan<- completion, logger logging.Logger) error {
	f := step.Future()
	args, err := ResolveArgs(step, e.deployment)
	if err != nil {
		return err
	}

	logger.Debug().
		Str(logging.FieldFuture, f.Id()).
		Stringers(logging.FieldDependencies, futureStringers(step.Dependencies())).
		Msg("Deploying contract")

	start := e.clock.Now()
	addr, err := e.engine.Deploy(ctx, Request{Future: f, ConstructorArgs: args})
	if err != nil {
		logger.Error().Err(err).Str(logging.FieldFuture, f.Id()).Msg("Deployment failed")
		return fmt.Errorf("failed to deploy %s: %w", f, err)
	}
	duration := e.clock.Since(start)
	e.deployment.Set(f, addr)

	logger.Info().
		Str(logging.FieldFuture, f.Id()).
		Stringer(logging.FieldContractAddress, addr).
		Dur(logging.FieldDuration, duration).
		Msg("Contract deployed")

	done <- completion{index: i, addr: addr, duration: duration}
	return nil
}

func futureStringers(fs []Future) []fmt.Stringer {
	res := make([]fmt.Stringer, len(fs))
	for i, f := range fs {
		res[i] = f
	}
	return res
}
