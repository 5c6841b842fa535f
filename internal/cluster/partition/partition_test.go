package partition

import (
	"context"
	"testing"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

type stubConsensus struct {
	group     model.GroupID
	transfers int
}

func (s *stubConsensus) Group() model.GroupID { return s.group }

func (s *stubConsensus) TransferLeadership(ctx context.Context, target *model.NodeID) error {
	s.transfers++
	return nil
}

func ntp(topic string, p int32) model.NTP {
	return model.NTP{Namespace: model.KafkaNamespace, Topic: model.Topic(topic), Partition: model.PartitionID(p)}
}

func TestManagerRegisterAndLookup(t *testing.T) {
	m := NewManager()
	c := &stubConsensus{group: 5}
	m.Register(5, NewPartition(ntp("t", 0), c))

	if m.ConsensusFor(5) == nil {
		t.Fatal("expected consensus handle for group 5")
	}
	if m.ConsensusFor(6) != nil {
		t.Error("unknown group should have nil consensus")
	}
	if m.Get(ntp("t", 0)) == nil {
		t.Fatal("expected partition for ntp")
	}
	if m.Get(ntp("missing", 0)) != nil {
		t.Error("unknown ntp should be nil")
	}
}

func TestManagerRemove(t *testing.T) {
	m := NewManager()
	m.Register(5, NewPartition(ntp("t", 0), &stubConsensus{group: 5}))
	m.Remove(5, ntp("t", 0))

	if m.ConsensusFor(5) != nil || m.Get(ntp("t", 0)) != nil {
		t.Error("partition should be gone after Remove")
	}
}

func TestPartitionsListing(t *testing.T) {
	m := NewManager()
	m.Register(1, NewPartition(ntp("a", 0), &stubConsensus{group: 1}))
	m.Register(2, NewPartition(ntp("b", 3), &stubConsensus{group: 2}))

	if got := len(m.Partitions()); got != 2 {
		t.Errorf("expected 2 partitions, got %d", got)
	}
}

func TestTransferDelegates(t *testing.T) {
	c := &stubConsensus{group: 5}
	p := NewPartition(ntp("t", 0), c)
	if err := p.TransferLeadership(context.Background(), nil); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if c.transfers != 1 {
		t.Errorf("expected 1 transfer, got %d", c.transfers)
	}
}
