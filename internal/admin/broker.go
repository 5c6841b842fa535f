package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

type brokerEntry struct {
	NodeID   model.NodeID `json:"node_id"`
	NumCores uint32       `json:"num_cores"`
}

// handleGetBrokers lists every known cluster node from the local metadata
// cache.
func (s *Server) handleGetBrokers(ctx *gin.Context) {
	brokers := s.cache.AllBrokers()
	out := make([]brokerEntry, 0, len(brokers))
	for _, b := range brokers {
		out = append(out, brokerEntry{NodeID: b.ID, NumCores: b.Cores})
	}
	ctx.JSON(http.StatusOK, out)
}
