// Package metadata is the process-local cache of cluster-wide facts: known
// brokers, existing topic partitions and their configured replica
// assignments. The cache is refreshed by the metadata apply layer as the
// replicated controller log advances; request handlers only read it. Reads
// may be slightly stale, which callers accept in exchange for never paying a
// network round-trip on the lookup path.
package metadata

import (
	"sort"
	"sync"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

type Cache struct {
	mu          sync.RWMutex
	brokers     map[model.NodeID]model.Broker
	assignments map[model.NTP][]model.BrokerShard
}

func NewCache() *Cache {
	return &Cache{
		brokers:     make(map[model.NodeID]model.Broker),
		assignments: make(map[model.NTP][]model.BrokerShard),
	}
}

// SetBroker upserts a broker entry. Apply-layer only.
func (c *Cache) SetBroker(b model.Broker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brokers[b.ID] = b
}

// RemoveBroker drops a broker entry. Apply-layer only.
func (c *Cache) RemoveBroker(id model.NodeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.brokers, id)
}

// SetAssignment records ntp's configured replica set. Apply-layer only.
func (c *Cache) SetAssignment(ntp model.NTP, replicas []model.BrokerShard) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assignments[ntp] = append([]model.BrokerShard(nil), replicas...)
}

// RemoveAssignment drops ntp from the cache. Apply-layer only.
func (c *Cache) RemoveAssignment(ntp model.NTP) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.assignments, ntp)
}

// Contains reports whether ntp exists in cluster metadata as of the last
// refresh.
func (c *Cache) Contains(ntp model.NTP) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.assignments[ntp]
	return ok
}

// Assignment returns a copy of ntp's configured replica set, or nil when the
// partition is unknown.
func (c *Cache) Assignment(ntp model.NTP) []model.BrokerShard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	replicas, ok := c.assignments[ntp]
	if !ok {
		return nil
	}
	return append([]model.BrokerShard(nil), replicas...)
}

// AllBrokers lists the known brokers ordered by node id.
func (c *Cache) AllBrokers() []model.Broker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Broker, 0, len(c.brokers))
	for _, b := range c.brokers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
