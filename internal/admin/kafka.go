package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parishadmk/logstream/internal/admin/apierror"
	"github.com/parishadmk/logstream/internal/cluster/model"
)

// handleKafkaTransferLeadership moves leadership of a kafka topic-partition.
// Same protocol as the raft variant, but addressed by topic and partition
// rather than raw group id.
func (s *Server) handleKafkaTransferLeadership(ctx *gin.Context) {
	topic := model.Topic(ctx.Param("topic"))
	partitionID, err := parsePartitionID(ctx.Param("partition"))
	if err != nil {
		abortWith(ctx, err)
		return
	}
	target, err := parseTargetNode(ctx)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	ntp := model.NTP{Namespace: model.KafkaNamespace, Topic: topic, Partition: partitionID}

	shardID, ok := s.shardTable.ShardForNTP(ntp)
	if !ok {
		abortWith(ctx, apierror.New(apierror.NotFound,
			"Topic partition %s/%d not found", topic, partitionID))
		return
	}

	s.log.Infow("leadership transfer requested",
		"ntp", ntp.String(), "target", targetLabel(target), "shard", shardID)

	reqCtx := ctx.Request.Context()
	var transferErr error
	err = s.shards.InvokeOn(reqCtx, shardID, func() {
		p := s.managerFor(shardID).Get(ntp)
		if p == nil {
			// Deleted or moved off this shard since routing.
			transferErr = apierror.New(apierror.NotFound,
				"Topic partition %s/%d not found", topic, partitionID)
			return
		}
		transferErr = p.TransferLeadership(reqCtx, target)
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
