package model

import "fmt"

// KafkaNamespace is the only namespace whose partitions are exposed to
// external clients; internal namespaces are not addressable through the
// admin API.
const KafkaNamespace = Namespace("kafka")

type Namespace string

type Topic string

// GroupID identifies the consensus group replicating one partition's log.
type GroupID int64

// NodeID identifies a broker in the cluster.
type NodeID int32

// PartitionID is the index of a partition within its topic.
type PartitionID int32

// ShardID names one CPU-affine execution context on the local node.
type ShardID uint32

// NTP is the (namespace, topic, partition) triple that globally identifies
// a partition.
type NTP struct {
	Namespace Namespace
	Topic     Topic
	Partition PartitionID
}

func (n NTP) String() string {
	return fmt.Sprintf("{%s/%s/%d}", n.Namespace, n.Topic, n.Partition)
}

// BrokerShard is a single entry of a partition's replica assignment: the
// broker holding a replica and the shard it is pinned to on that broker.
type BrokerShard struct {
	NodeID NodeID  `json:"node_id"`
	Shard  ShardID `json:"core"`
}

func (bs BrokerShard) String() string {
	return fmt.Sprintf("{node: %d, shard: %d}", bs.NodeID, bs.Shard)
}

// Broker is one known cluster member as seen by the local metadata cache.
type Broker struct {
	ID    NodeID
	Cores uint32
}
