// Package partition tracks the partitions hosted on one shard and the
// consensus instance backing each of them. A Manager is owned by its shard's
// worker; all access goes through shard.Group.InvokeOn.
package partition

import (
	"context"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

// Consensus is the shard-local handle of one replication group. Transfer
// returns nil when leadership moved (or the group already leads where asked);
// any other outcome comes back as an error whose message is surfaced to the
// caller. A nil target lets the consensus layer pick the new leader.
type Consensus interface {
	Group() model.GroupID
	TransferLeadership(ctx context.Context, target *model.NodeID) error
}

// Partition is one locally hosted partition: its identity plus the consensus
// instance replicating its log.
type Partition struct {
	NTP       model.NTP
	consensus Consensus
}

func NewPartition(ntp model.NTP, c Consensus) *Partition {
	return &Partition{NTP: ntp, consensus: c}
}

// TransferLeadership asks the partition's consensus instance to hand
// leadership to target.
func (p *Partition) TransferLeadership(ctx context.Context, target *model.NodeID) error {
	return p.consensus.TransferLeadership(ctx, target)
}

// Manager is the per-shard registry of hosted partitions. Entries are added
// and removed by the apply layer as it materializes metadata log decisions on
// this shard.
type Manager struct {
	byGroup map[model.GroupID]*Partition
	byNTP   map[model.NTP]*Partition
}

func NewManager() *Manager {
	return &Manager{
		byGroup: make(map[model.GroupID]*Partition),
		byNTP:   make(map[model.NTP]*Partition),
	}
}

// Register adds a partition hosted on this shard. Must run on the owning
// shard's worker.
func (m *Manager) Register(group model.GroupID, p *Partition) {
	m.byGroup[group] = p
	m.byNTP[p.NTP] = p
}

// Remove drops a partition, e.g. after deletion or movement off this shard.
func (m *Manager) Remove(group model.GroupID, ntp model.NTP) {
	delete(m.byGroup, group)
	delete(m.byNTP, ntp)
}

// ConsensusFor returns the consensus handle for group, or nil when the group
// is not (or no longer) hosted on this shard.
func (m *Manager) ConsensusFor(group model.GroupID) Consensus {
	p, ok := m.byGroup[group]
	if !ok {
		return nil
	}
	return p.consensus
}

// Get returns the partition for ntp, or nil.
func (m *Manager) Get(ntp model.NTP) *Partition {
	return m.byNTP[ntp]
}

// Partitions lists the partitions hosted on this shard.
func (m *Manager) Partitions() []*Partition {
	out := make([]*Partition, 0, len(m.byNTP))
	for _, p := range m.byNTP {
		out = append(out, p)
	}
	return out
}
