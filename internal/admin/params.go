package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parishadmk/logstream/internal/admin/apierror"
	"github.com/parishadmk/logstream/internal/cluster/model"
)

// Parameter validation runs before any shard resolution or dispatch; nothing
// partially validated ever reaches a collaborator.

func parseGroupID(raw string) (model.GroupID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierror.New(apierror.BadRequest, "Raft group id must be an integer: %s", raw)
	}
	if v < 0 {
		return 0, apierror.New(apierror.BadRequest, "Invalid raft group id %d", v)
	}
	return model.GroupID(v), nil
}

func parsePartitionID(raw string) (model.PartitionID, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, apierror.New(apierror.BadRequest, "Partition id must be an integer: %s", raw)
	}
	if v < 0 {
		return 0, apierror.New(apierror.BadRequest, "Invalid partition id %d", v)
	}
	return model.PartitionID(v), nil
}

// parseTargetNode reads the optional "target" query parameter. Absence means
// the consensus layer picks the new leader.
func parseTargetNode(ctx *gin.Context) (*model.NodeID, error) {
	raw, ok := ctx.GetQuery("target")
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, apierror.New(apierror.BadRequest, "Target node id must be an integer: %s", raw)
	}
	if v < 0 {
		return nil, apierror.New(apierror.BadRequest, "Invalid target node id %d", v)
	}
	target := model.NodeID(v)
	return &target, nil
}
