package metadata

import (
	"testing"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

func TestBrokers(t *testing.T) {
	cache := NewCache()
	cache.SetBroker(model.Broker{ID: 2, Cores: 8})
	cache.SetBroker(model.Broker{ID: 0, Cores: 4})

	brokers := cache.AllBrokers()
	if len(brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(brokers))
	}
	if brokers[0].ID != 0 || brokers[1].ID != 2 {
		t.Errorf("brokers not ordered by id: %+v", brokers)
	}

	cache.RemoveBroker(0)
	if len(cache.AllBrokers()) != 1 {
		t.Error("expected broker 0 to be removed")
	}
}

func TestAssignments(t *testing.T) {
	cache := NewCache()
	ntp := model.NTP{Namespace: model.KafkaNamespace, Topic: "t", Partition: 1}

	if cache.Contains(ntp) {
		t.Error("empty cache should not contain ntp")
	}
	if cache.Assignment(ntp) != nil {
		t.Error("unknown ntp should have nil assignment")
	}

	replicas := []model.BrokerShard{{NodeID: 1, Shard: 0}, {NodeID: 2, Shard: 1}}
	cache.SetAssignment(ntp, replicas)

	if !cache.Contains(ntp) {
		t.Error("cache should contain ntp after SetAssignment")
	}
	got := cache.Assignment(ntp)
	if len(got) != 2 || got[0].NodeID != 1 || got[1].Shard != 1 {
		t.Errorf("unexpected assignment: %+v", got)
	}

	// The returned slice is a copy; callers cannot mutate the cache.
	got[0].NodeID = 9
	if cache.Assignment(ntp)[0].NodeID != 1 {
		t.Error("Assignment must return a copy")
	}

	cache.RemoveAssignment(ntp)
	if cache.Contains(ntp) {
		t.Error("ntp should be gone after RemoveAssignment")
	}
}
