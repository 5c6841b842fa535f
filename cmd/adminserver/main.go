package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parishadmk/logstream/internal/admin"
	"github.com/parishadmk/logstream/internal/archival"
	"github.com/parishadmk/logstream/internal/cluster/controller"
	"github.com/parishadmk/logstream/internal/cluster/metadata"
	"github.com/parishadmk/logstream/internal/cluster/model"
	"github.com/parishadmk/logstream/internal/cluster/partition"
	"github.com/parishadmk/logstream/internal/cluster/shard"
	"github.com/parishadmk/logstream/internal/cluster/shardtable"
)

func main() {
	var (
		addr            string
		nodeID          int32
		shardCount      int
		moveTimeout     time.Duration
		securityTimeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:   "adminserver",
		Short: "Serve the cluster administrative API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer logger.Sync()
			return run(logger.Sugar(), addr, nodeID, shardCount, moveTimeout, securityTimeout)
		},
	}

	rootCmd.Flags().StringVar(&addr, "addr", ":9644", "Listen address of the admin API")
	rootCmd.Flags().Int32Var(&nodeID, "node-id", 0, "This broker's node id")
	rootCmd.Flags().IntVar(&shardCount, "shards", 4, "Number of shards on this node")
	rootCmd.Flags().DurationVar(&moveTimeout, "move-timeout", 10*time.Second, "Deadline for replica move proposals")
	rootCmd.Flags().DurationVar(&securityTimeout, "security-timeout", 5*time.Second, "Deadline for credential proposals")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger, addr string, nodeID int32, shardCount int, moveTimeout, securityTimeout time.Duration) error {
	cache := metadata.NewCache()
	cache.SetBroker(model.Broker{ID: model.NodeID(nodeID), Cores: uint32(shardCount)})

	table := shardtable.New()
	shards := shard.NewGroup(shardCount)
	defer shards.Stop()

	managers := make([]*partition.Manager, shardCount)
	for i := range managers {
		managers[i] = partition.NewManager()
	}

	backend := controller.NewLocalBackend(log, cache)
	ctrl := controller.New(backend, backend, backend, backend)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	// The upload pipeline runs outside this process scope; registering its
	// probes here keeps the metrics route serving the full contract.
	archival.NewServiceProbe(registry)
	archival.NewNTPProbe(registry)

	srv := admin.NewServer(
		admin.Config{Addr: addr, MoveTimeout: moveTimeout, SecurityTimeout: securityTimeout},
		log, shards, managers, table, cache, ctrl, registry,
	)
	srv.SetReady()

	log.Infow("starting admin server", "node_id", nodeID, "shards", shardCount)
	return srv.Run()
}
