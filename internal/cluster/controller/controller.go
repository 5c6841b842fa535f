// Package controller exposes the frontends of the consensus-backed cluster
// controller to the admin layer. Mutations (replica moves, credential
// changes) are proposals appended to the replicated controller log; a nil
// error means the proposal was durably accepted, not that its effects have
// been realized. Convergence of replica placement is observed separately
// through the reconciliation API.
package controller

import (
	"context"

	"github.com/parishadmk/logstream/internal/cluster/model"
	"github.com/parishadmk/logstream/internal/security/scram"
)

// TopicsFrontend submits partition placement proposals.
type TopicsFrontend interface {
	// MovePartitionReplicas proposes replacing ntp's replica set. The
	// caller bounds the call with a context deadline; expiry surfaces as
	// an ordinary error from the proposal machinery.
	MovePartitionReplicas(ctx context.Context, ntp model.NTP, replicas []model.BrokerShard) error
}

// SecurityFrontend submits credential lifecycle proposals.
type SecurityFrontend interface {
	CreateUser(ctx context.Context, username string, cred scram.Credential) error
	UpdateUser(ctx context.Context, username string, cred scram.Credential) error
	DeleteUser(ctx context.Context, username string) error
}

// CredentialStore is a read-only view of the security subsystem's current
// credential snapshot. Entries appear and disappear as credential proposals
// are applied.
type CredentialStore interface {
	Users() []string
	Get(username string) (scram.Credential, bool)
}

// Reconciliation reads a partition's convergence state from the
// reconciliation engine. Callers must confirm the partition exists before
// querying; the engine's answer for an unknown partition is undefined.
type Reconciliation interface {
	ReconciliationState(ctx context.Context, ntp model.NTP) (ReconciliationState, error)
}

// Controller bundles the frontends the admin layer depends on.
type Controller struct {
	topics         TopicsFrontend
	security       SecurityFrontend
	credentials    CredentialStore
	reconciliation Reconciliation
}

func New(topics TopicsFrontend, security SecurityFrontend, credentials CredentialStore, reconciliation Reconciliation) *Controller {
	return &Controller{
		topics:         topics,
		security:       security,
		credentials:    credentials,
		reconciliation: reconciliation,
	}
}

func (c *Controller) Topics() TopicsFrontend         { return c.topics }
func (c *Controller) Security() SecurityFrontend     { return c.security }
func (c *Controller) Credentials() CredentialStore   { return c.credentials }
func (c *Controller) Reconciliation() Reconciliation { return c.reconciliation }
