package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parishadmk/logstream/internal/admin/apierror"
	"github.com/parishadmk/logstream/internal/cluster/model"
)

// handleRaftTransferLeadership moves leadership of a raft group, optionally
// to a specific node. The group is resolved to its owning shard and the
// transfer runs on that shard's worker against the shard-local consensus
// handle.
func (s *Server) handleRaftTransferLeadership(ctx *gin.Context) {
	group, err := parseGroupID(ctx.Param("group_id"))
	if err != nil {
		abortWith(ctx, err)
		return
	}
	target, err := parseTargetNode(ctx)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	shardID, ok := s.shardTable.ShardFor(group)
	if !ok {
		abortWith(ctx, apierror.New(apierror.NotFound, "Raft group %d not found", group))
		return
	}

	s.log.Infow("leadership transfer requested",
		"group", group, "target", targetLabel(target), "shard", shardID)

	reqCtx := ctx.Request.Context()
	var transferErr error
	err = s.shards.InvokeOn(reqCtx, shardID, func() {
		consensus := s.managerFor(shardID).ConsensusFor(group)
		if consensus == nil {
			// The group was deleted between routing and dispatch.
			transferErr = apierror.New(apierror.NotFound, "Raft group %d not found", group)
			return
		}
		transferErr = consensus.TransferLeadership(reqCtx, target)
	})
	if err != nil {
		abortWith(ctx, err)
		return
	}
	if transferErr != nil {
		abortWith(ctx, transferFailure(transferErr))
		return
	}
	ctx.Status(http.StatusOK)
}

// transferFailure passes routing errors through and wraps consensus result
// codes, surfacing their message verbatim.
func transferFailure(err error) error {
	if _, ok := err.(apierror.Error); ok {
		return err
	}
	return apierror.New(apierror.Internal, "Leadership transfer failed: %s", err.Error())
}

func targetLabel(target *model.NodeID) string {
	if target == nil {
		return "none"
	}
	return strconv.Itoa(int(*target))
}
