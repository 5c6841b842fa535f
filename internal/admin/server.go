// Package admin implements the administrative API of the node: leadership
// transfers, partition replica reassignment, credential lifecycle and
// cluster introspection. It is a stateless request layer: every mutation is
// validated locally, routed to the owning shard or controller frontend, and
// dispatched with a bounded deadline; durable state lives behind the
// consensus-backed collaborators.
package admin

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/parishadmk/logstream/internal/admin/apierror"
	"github.com/parishadmk/logstream/internal/cluster/controller"
	"github.com/parishadmk/logstream/internal/cluster/metadata"
	"github.com/parishadmk/logstream/internal/cluster/model"
	"github.com/parishadmk/logstream/internal/cluster/partition"
	"github.com/parishadmk/logstream/internal/cluster/shard"
	"github.com/parishadmk/logstream/internal/cluster/shardtable"
)

// Config carries the admin server's tunables. The timeouts bound proposal
// dispatches to the controller; expiry surfaces as an ordinary downstream
// error, never as a retry.
type Config struct {
	Addr            string
	MoveTimeout     time.Duration
	SecurityTimeout time.Duration
}

const (
	defaultMoveTimeout     = 10 * time.Second
	defaultSecurityTimeout = 5 * time.Second
)

func (c *Config) applyDefaults() {
	if c.MoveTimeout <= 0 {
		c.MoveTimeout = defaultMoveTimeout
	}
	if c.SecurityTimeout <= 0 {
		c.SecurityTimeout = defaultSecurityTimeout
	}
}

type Server struct {
	cfg    Config
	log    *zap.SugaredLogger
	engine *gin.Engine

	shards     *shard.Group
	managers   []*partition.Manager
	shardTable *shardtable.Table
	cache      *metadata.Cache
	controller *controller.Controller

	ready atomic.Bool
}

// NewServer wires the admin routes. managers must hold one partition manager
// per shard in g; manager i is only touched from shard i's worker.
func NewServer(
	cfg Config,
	log *zap.SugaredLogger,
	g *shard.Group,
	managers []*partition.Manager,
	table *shardtable.Table,
	cache *metadata.Cache,
	ctrl *controller.Controller,
	registry *prometheus.Registry,
) *Server {
	cfg.applyDefaults()
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:        cfg,
		log:        log,
		engine:     engine,
		shards:     g,
		managers:   managers,
		shardTable: table,
		cache:      cache,
		controller: ctrl,
	}
	s.setupRoutes(registry)
	return s
}

func (s *Server) setupRoutes(registry *prometheus.Registry) {
	v1 := s.engine.Group("/v1")

	v1.GET("/status/ready", s.handleReady)

	v1.POST("/raft/:group_id/transfer_leadership", s.handleRaftTransferLeadership)
	v1.POST("/kafka/:topic/:partition/transfer_leadership", s.handleKafkaTransferLeadership)

	v1.GET("/brokers", s.handleGetBrokers)

	v1.GET("/partitions", s.handleGetPartitions)
	v1.GET("/partitions/:namespace/:topic/:partition", s.handleGetPartition)
	v1.POST("/partitions/:namespace/:topic/:partition/replicas", s.handleSetPartitionReplicas)

	v1.GET("/security/users", s.handleListUsers)
	v1.POST("/security/users", s.handleCreateUser)
	v1.PUT("/security/users/:user", s.handleUpdateUser)
	v1.DELETE("/security/users/:user", s.handleDeleteUser)

	if registry != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
}

// SetReady marks bootstrap as finished; until then the ready route reports
// booting.
func (s *Server) SetReady() { s.ready.Store(true) }

// Engine exposes the router for tests and for embedding under an existing
// http.Server.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run serves the admin API on the configured address, blocking until the
// listener fails.
func (s *Server) Run() error {
	s.log.Infow("admin api listening", "addr", s.cfg.Addr)
	return s.engine.Run(s.cfg.Addr)
}

func (s *Server) handleReady(ctx *gin.Context) {
	status := "booting"
	if s.ready.Load() {
		status = "ready"
	}
	ctx.JSON(http.StatusOK, gin.H{"status": status})
}

// abortWith renders err as the JSON error body of its kind's status code.
func abortWith(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(apierror.HTTPStatus(err), gin.H{"error": apierror.Message(err)})
}

// managerFor must only be called from shard's worker.
func (s *Server) managerFor(sh model.ShardID) *partition.Manager {
	return s.managers[sh]
}
