// Package shard runs one worker goroutine per shard and lets callers execute
// closures on a chosen shard. Shard-owned state (partition managers, consensus
// handles) is only ever touched from its own worker, so cross-shard calls are
// explicit message dispatches rather than shared-memory access.
package shard

import (
	"context"
	"fmt"
	"sync"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

type task struct {
	fn   func()
	done chan struct{}
}

// Group owns the per-shard workers. Shards are numbered 0..Count()-1.
type Group struct {
	shards []chan task
	wg     sync.WaitGroup

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewGroup starts count shard workers.
func NewGroup(count int) *Group {
	g := &Group{
		shards:  make([]chan task, count),
		stopped: make(chan struct{}),
	}
	for i := range g.shards {
		ch := make(chan task, 128)
		g.shards[i] = ch
		g.wg.Add(1)
		go g.run(ch)
	}
	return g
}

func (g *Group) run(ch chan task) {
	defer g.wg.Done()
	for {
		select {
		case t := <-ch:
			t.fn()
			close(t.done)
		case <-g.stopped:
			return
		}
	}
}

// Count returns the number of shards.
func (g *Group) Count() int { return len(g.shards) }

// InvokeOn runs fn on the given shard's worker and waits for it to finish,
// or gives up when ctx expires before the task has started.
func (g *Group) InvokeOn(ctx context.Context, shard model.ShardID, fn func()) error {
	if int(shard) >= len(g.shards) {
		return fmt.Errorf("shard %d out of range (%d shards)", shard, len(g.shards))
	}
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case g.shards[shard] <- t:
	case <-g.stopped:
		return fmt.Errorf("shard group stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-t.done:
		return nil
	case <-g.stopped:
		return fmt.Errorf("shard group stopped")
	}
}

// MapReduce runs fn on every shard and collects the results in shard order.
func MapReduce[T any](ctx context.Context, g *Group, fn func(shard model.ShardID) []T) ([]T, error) {
	var out []T
	for i := range g.shards {
		shard := model.ShardID(i)
		var part []T
		err := g.InvokeOn(ctx, shard, func() {
			part = fn(shard)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}
	return out, nil
}

// Stop shuts down the workers. Tasks already accepted still run.
func (g *Group) Stop() {
	g.stopOnce.Do(func() { close(g.stopped) })
	g.wg.Wait()
}
