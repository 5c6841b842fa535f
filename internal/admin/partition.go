package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"github.com/parishadmk/logstream/internal/admin/apierror"
	"github.com/parishadmk/logstream/internal/cluster/model"
	"github.com/parishadmk/logstream/internal/cluster/shard"
)

// partitionSummary is one locally hosted partition in the listing.
type partitionSummary struct {
	Namespace   model.Namespace   `json:"ns"`
	Topic       model.Topic       `json:"topic"`
	PartitionID model.PartitionID `json:"partition_id"`
	Core        model.ShardID     `json:"core"`
}

type partitionDetail struct {
	Namespace   model.Namespace     `json:"ns"`
	Topic       model.Topic         `json:"topic"`
	PartitionID model.PartitionID   `json:"partition_id"`
	Status      string              `json:"status"`
	Replicas    []model.BrokerShard `json:"replicas"`
}

// The replica set body is checked against a declarative schema: an array of
// {node_id, core} objects, both required, nothing else permitted. Schema
// errors are reported generically, not per field.
const setReplicasSchemaText = `
{
    "type": "array",
    "items": {
        "type": "object",
        "properties": {
            "node_id": {
                "type": "number",
                "minimum": 0
            },
            "core": {
                "type": "number",
                "minimum": 0
            }
        },
        "required": [
            "node_id",
            "core"
        ],
        "additionalProperties": false
    }
}
`

// A malformed schema document is a build defect, not a request condition, so
// compilation failure at startup is fatal.
var setReplicasSchema = mustCompileSchema(setReplicasSchemaText)

func mustCompileSchema(text string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(text))
	if err != nil {
		panic(fmt.Sprintf("invalid schema document: %v", err))
	}
	return schema
}

// handleGetPartitions aggregates a summary of every partition hosted on this
// node across all shards.
func (s *Server) handleGetPartitions(ctx *gin.Context) {
	summaries, err := shard.MapReduce(ctx.Request.Context(), s.shards,
		func(sh model.ShardID) []partitionSummary {
			hosted := s.managerFor(sh).Partitions()
			out := make([]partitionSummary, 0, len(hosted))
			for _, p := range hosted {
				out = append(out, partitionSummary{
					Namespace:   p.NTP.Namespace,
					Topic:       p.NTP.Topic,
					PartitionID: p.NTP.Partition,
					Core:        sh,
				})
			}
			return out
		})
	if err != nil {
		abortWith(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// handleGetPartition returns a partition's configured replica set and its
// reconciliation status as of this read.
func (s *Server) handleGetPartition(ctx *gin.Context) {
	ntp, err := s.paramNTP(ctx, false)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	if !s.cache.Contains(ntp) {
		abortWith(ctx, apierror.New(apierror.NotFound, "Could not find ntp: %s", ntp))
		return
	}

	detail := partitionDetail{
		Namespace:   ntp.Namespace,
		Topic:       ntp.Topic,
		PartitionID: ntp.Partition,
		Replicas:    s.cache.Assignment(ntp),
	}

	state, err := s.controller.Reconciliation().ReconciliationState(ctx.Request.Context(), ntp)
	if err != nil {
		abortWith(ctx, apierror.New(apierror.Internal, "Reading reconciliation state: %s", err.Error()))
		return
	}
	detail.Status = string(state.Status)

	ctx.JSON(http.StatusOK, detail)
}

// handleSetPartitionReplicas validates a desired replica set and submits the
// move proposal. Success means the intent was durably accepted; convergence
// is observed through the partition detail route.
func (s *Server) handleSetPartitionReplicas(ctx *gin.Context) {
	ntp, err := s.paramNTP(ctx, true)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		abortWith(ctx, apierror.New(apierror.BadRequest, "Could not read replica set json"))
		return
	}

	result, err := setReplicasSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		abortWith(ctx, apierror.New(apierror.BadRequest, "Could not parse replica set json"))
		return
	}
	if !result.Valid() {
		abortWith(ctx, apierror.New(apierror.BadRequest, "Replica set json is invalid"))
		return
	}

	var replicas []model.BrokerShard
	if err := json.Unmarshal(body, &replicas); err != nil {
		abortWith(ctx, apierror.New(apierror.BadRequest, "Replica set json is invalid"))
		return
	}

	s.log.Infow("replica set change requested", "ntp", ntp.String(), "replicas", replicas)

	moveCtx, cancel := context.WithTimeout(ctx.Request.Context(), s.cfg.MoveTimeout)
	defer cancel()
	if err := s.controller.Topics().MovePartitionReplicas(moveCtx, ntp, replicas); err != nil {
		s.log.Errorw("replica set change rejected", "ntp", ntp.String(), "error", err)
		abortWith(ctx, apierror.New(apierror.BadRequest, "Error moving partition: %s", err.Error()))
		return
	}
	ctx.Status(http.StatusOK)
}

// paramNTP parses the namespace/topic/partition path parameters.
// kafkaOnly restricts the namespace to the one external clients may address.
func (s *Server) paramNTP(ctx *gin.Context, kafkaOnly bool) (model.NTP, error) {
	ns := model.Namespace(ctx.Param("namespace"))
	topic := model.Topic(ctx.Param("topic"))
	partitionID, err := parsePartitionID(ctx.Param("partition"))
	if err != nil {
		return model.NTP{}, err
	}
	if kafkaOnly && ns != model.KafkaNamespace {
		return model.NTP{}, apierror.New(apierror.BadRequest, "Unsupported namespace: %s", ns)
	}
	return model.NTP{Namespace: ns, Topic: topic, Partition: partitionID}, nil
}
