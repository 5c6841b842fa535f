package controller

import "github.com/parishadmk/logstream/internal/cluster/model"

// ReconciliationStatus is the convergence state of a partition's replica
// placement as computed by the background reconciliation engine.
type ReconciliationStatus string

const (
	ReconciliationDone       ReconciliationStatus = "done"
	ReconciliationInProgress ReconciliationStatus = "in_progress"
	ReconciliationError      ReconciliationStatus = "error"
)

// ReconciliationState is an immutable snapshot of one partition's
// convergence state, valid only as of the read that produced it.
type ReconciliationState struct {
	NTP    model.NTP
	Status ReconciliationStatus
	Detail string
}
