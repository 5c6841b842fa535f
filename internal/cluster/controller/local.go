package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/parishadmk/logstream/internal/cluster/metadata"
	"github.com/parishadmk/logstream/internal/cluster/model"
	"github.com/parishadmk/logstream/internal/security/scram"
)

// LocalBackend is a single-node, in-process implementation of the controller
// frontends. Proposals are applied synchronously to local state instead of
// being replicated, which is enough for standalone deployments and tests;
// the multi-node path plugs in the replicated controller log instead.
type LocalBackend struct {
	log   *zap.SugaredLogger
	cache *metadata.Cache

	mu             sync.RWMutex
	credentials    map[string]scram.Credential
	reconciliation map[model.NTP]ReconciliationState
}

func NewLocalBackend(log *zap.SugaredLogger, cache *metadata.Cache) *LocalBackend {
	return &LocalBackend{
		log:            log,
		cache:          cache,
		credentials:    make(map[string]scram.Credential),
		reconciliation: make(map[model.NTP]ReconciliationState),
	}
}

var _ TopicsFrontend = (*LocalBackend)(nil)
var _ SecurityFrontend = (*LocalBackend)(nil)
var _ CredentialStore = (*LocalBackend)(nil)
var _ Reconciliation = (*LocalBackend)(nil)

// MovePartitionReplicas accepts the move intent, records the desired
// assignment and marks the partition as reconciling. Data movement itself is
// the reconciler's job.
func (b *LocalBackend) MovePartitionReplicas(ctx context.Context, ntp model.NTP, replicas []model.BrokerShard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.cache.Contains(ntp) {
		return fmt.Errorf("no such partition %s", ntp)
	}
	b.cache.SetAssignment(ntp, replicas)

	b.mu.Lock()
	b.reconciliation[ntp] = ReconciliationState{
		NTP:    ntp,
		Status: ReconciliationInProgress,
		Detail: fmt.Sprintf("moving to %v", replicas),
	}
	b.mu.Unlock()

	b.log.Infow("accepted replica move", "ntp", ntp.String(), "replicas", replicas)
	return nil
}

// MarkReconciled is called by the reconciler once a partition's placement
// has converged.
func (b *LocalBackend) MarkReconciled(ntp model.NTP) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reconciliation[ntp] = ReconciliationState{NTP: ntp, Status: ReconciliationDone}
}

func (b *LocalBackend) ReconciliationState(ctx context.Context, ntp model.NTP) (ReconciliationState, error) {
	if err := ctx.Err(); err != nil {
		return ReconciliationState{}, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if state, ok := b.reconciliation[ntp]; ok {
		return state, nil
	}
	// Nothing pending for this partition: placement matches the configured
	// assignment.
	return ReconciliationState{NTP: ntp, Status: ReconciliationDone}, nil
}

func (b *LocalBackend) CreateUser(ctx context.Context, username string, cred scram.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.credentials[username]; exists {
		return fmt.Errorf("user %q already exists", username)
	}
	b.credentials[username] = cred
	b.log.Infow("created user", "user", username, "algorithm", cred.Algorithm)
	return nil
}

func (b *LocalBackend) UpdateUser(ctx context.Context, username string, cred scram.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.credentials[username]; !exists {
		return fmt.Errorf("user %q does not exist", username)
	}
	b.credentials[username] = cred
	b.log.Infow("updated user", "user", username, "algorithm", cred.Algorithm)
	return nil
}

func (b *LocalBackend) DeleteUser(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.credentials[username]; !exists {
		return fmt.Errorf("user %q does not exist", username)
	}
	delete(b.credentials, username)
	b.log.Infow("deleted user", "user", username)
	return nil
}

func (b *LocalBackend) Users() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	users := make([]string, 0, len(b.credentials))
	for user := range b.credentials {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

func (b *LocalBackend) Get(username string) (scram.Credential, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cred, ok := b.credentials[username]
	return cred, ok
}
