// Package shardtable holds the process-local routing table mapping consensus
// groups and partitions to the shard hosting them on this node. The table is
// populated by the metadata apply layer as partitions are created, moved and
// deleted; request-handling code only reads it.
package shardtable

import (
	"sync"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

type entry struct {
	group model.GroupID
	shard model.ShardID
}
// Table maps group ids and NTPs to shards. It may lag the metadata cache
// while a partition is being created or moved, so absence here is not by
// itself an error.
type Table struct {
	mu     sync.RWMutex
	groups map[model.GroupID]model.ShardID
	ntps   map[model.NTP]entry
}

func New() *Table {
	return &Table{
		groups: make(map[model.GroupID]model.ShardID),
		ntps:   make(map[model.NTP]entry),
	}
}

// Insert records that shard now hosts the given group/ntp, replacing any
// previous owner. Called by the apply layer only.
func (t *Table) Insert(ntp model.NTP, group model.GroupID, shard model.ShardID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.groups[group] = shard
	t.ntps[ntp] = entry{group: group, shard: shard}
}

// Erase removes the group/ntp from the table. Called by the apply layer when
// a partition is deleted or moved off this node.
func (t *Table) Erase(ntp model.NTP, group model.GroupID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.groups, group)
	delete(t.ntps, ntp)
}

// Contains reports whether this node hosts the given group.
func (t *Table) Contains(group model.GroupID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.groups[group]
	return ok
}

// ShardFor returns the shard hosting group, if any.
func (t *Table) ShardFor(group model.GroupID) (model.ShardID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	shard, ok := t.groups[group]
	return shard, ok
}

// ShardForNTP returns the shard hosting ntp, if any.
func (t *Table) ShardForNTP(ntp model.NTP) (model.ShardID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.ntps[ntp]
	return e.shard, ok
}

// GroupFor returns the consensus group backing ntp, if hosted locally.
func (t *Table) GroupFor(ntp model.NTP) (model.GroupID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.ntps[ntp]
	return e.group, ok
}
