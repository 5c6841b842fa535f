package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parishadmk/logstream/internal/cluster/metadata"
	"github.com/parishadmk/logstream/internal/cluster/model"
	"github.com/parishadmk/logstream/internal/security/scram"
)

func newBackend(t *testing.T) (*LocalBackend, *metadata.Cache) {
	t.Helper()
	cache := metadata.NewCache()
	return NewLocalBackend(zap.NewNop().Sugar(), cache), cache
}

func TestMoveRecordsIntentAndReconciliation(t *testing.T) {
	backend, cache := newBackend(t)
	ntp := model.NTP{Namespace: model.KafkaNamespace, Topic: "t", Partition: 0}
	cache.SetAssignment(ntp, []model.BrokerShard{{NodeID: 0, Shard: 0}})

	replicas := []model.BrokerShard{{NodeID: 1, Shard: 0}, {NodeID: 2, Shard: 1}}
	require.NoError(t, backend.MovePartitionReplicas(context.Background(), ntp, replicas))

	assert.Equal(t, replicas, cache.Assignment(ntp))

	state, err := backend.ReconciliationState(context.Background(), ntp)
	require.NoError(t, err)
	assert.Equal(t, ReconciliationInProgress, state.Status)

	backend.MarkReconciled(ntp)
	state, err = backend.ReconciliationState(context.Background(), ntp)
	require.NoError(t, err)
	assert.Equal(t, ReconciliationDone, state.Status)
}

func TestMoveUnknownPartition(t *testing.T) {
	backend, _ := newBackend(t)
	ntp := model.NTP{Namespace: model.KafkaNamespace, Topic: "missing", Partition: 0}

	err := backend.MovePartitionReplicas(context.Background(), ntp, nil)
	assert.Error(t, err)
}

func TestMoveHonorsDeadline(t *testing.T) {
	backend, cache := newBackend(t)
	ntp := model.NTP{Namespace: model.KafkaNamespace, Topic: "t", Partition: 0}
	cache.SetAssignment(ntp, []model.BrokerShard{{NodeID: 0, Shard: 0}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := backend.MovePartitionReplicas(ctx, ntp, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserLifecycle(t *testing.T) {
	backend, _ := newBackend(t)
	ctx := context.Background()

	cred, err := scram.SHA256.MakeCredentials("p", scram.SHA256MinIterations)
	require.NoError(t, err)

	require.NoError(t, backend.CreateUser(ctx, "alice", cred))
	assert.Error(t, backend.CreateUser(ctx, "alice", cred), "duplicate create must fail")

	assert.Error(t, backend.UpdateUser(ctx, "bob", cred), "updating a missing user must fail")
	require.NoError(t, backend.UpdateUser(ctx, "alice", cred))

	got, ok := backend.Get("alice")
	require.True(t, ok)
	assert.Equal(t, scram.SHA256Name, got.Algorithm)

	require.NoError(t, backend.CreateUser(ctx, "bob", cred))
	assert.Equal(t, []string{"alice", "bob"}, backend.Users())

	require.NoError(t, backend.DeleteUser(ctx, "alice"))
	assert.Error(t, backend.DeleteUser(ctx, "alice"), "deleting a missing user must fail")
	assert.Equal(t, []string{"bob"}, backend.Users())
}
