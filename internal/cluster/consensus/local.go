// Package consensus provides the shard-local handle admin operations use to
// talk to a partition's replication group. LocalGroup is the single-node
// implementation: it tracks the group's membership and current leader and
// performs transfers directly. The replicated implementation lives with the
// raft engine and satisfies the same interface.
package consensus

import (
	"context"
	"fmt"
	"sync"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

// LocalGroup is an in-process replication group handle.
type LocalGroup struct {
	group model.GroupID

	mu       sync.Mutex
	leader   model.NodeID
	replicas []model.NodeID
}

// NewLocalGroup creates a handle for group with the given members; the first
// member starts as leader.
func NewLocalGroup(group model.GroupID, members ...model.NodeID) *LocalGroup {
	if len(members) == 0 {
		panic("consensus: a group needs at least one member")
	}
	return &LocalGroup{
		group:    group,
		leader:   members[0],
		replicas: append([]model.NodeID(nil), members...),
	}
}

func (g *LocalGroup) Group() model.GroupID { return g.group }

// Leader returns the group's current leader.
func (g *LocalGroup) Leader() model.NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.leader
}

// TransferLeadership hands leadership to target, or to any other member when
// target is nil. Transferring to the current leader is a no-op. A target
// outside the group's membership is an error; its message is what callers
// surface.
func (g *LocalGroup) TransferLeadership(ctx context.Context, target *model.NodeID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if target == nil {
		for _, member := range g.replicas {
			if member != g.leader {
				g.leader = member
				return nil
			}
		}
		// Single-member group keeps its leader.
		return nil
	}

	if *target == g.leader {
		return nil
	}
	for _, member := range g.replicas {
		if member == *target {
			g.leader = *target
			return nil
		}
	}
	return fmt.Errorf("node %d is not a member of group %d", *target, g.group)
}
