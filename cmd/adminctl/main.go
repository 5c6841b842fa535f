package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parishadmk/logstream/pkg/client"
)

var baseURL string

func main() {
	rootCmd := &cobra.Command{
		Use:   "adminctl",
		Short: "CLI for the cluster administrative API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if baseURL == "" {
				baseURL = os.Getenv("ADMIN_BASE_URL")
				if baseURL == "" {
					baseURL = "http://localhost:9644"
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "Base URL of the admin API (or ADMIN_BASE_URL env variable)")

	rootCmd.AddCommand(
		readyCmd(),
		brokersCmd(),
		partitionsCmd(),
		partitionCmd(),
		transferCmd(),
		moveCmd(),
		usersCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.NewClient(baseURL)
}

func readyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Report the server's bootstrap status",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := newClient().Ready()
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
		},
	}
}

func brokersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brokers",
		Short: "List known cluster nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			brokers, err := newClient().ListBrokers()
			if err != nil {
				return err
			}
			for _, b := range brokers {
				fmt.Printf("node %d\tcores %d\n", b.NodeID, b.NumCores)
			}
			return nil
		},
	}
}

func partitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "partitions",
		Short: "List partitions hosted on the node",
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := newClient().ListPartitions()
			if err != nil {
				return err
			}
			for _, p := range parts {
				fmt.Printf("%s/%s/%d\tshard %d\n", p.Namespace, p.Topic, p.PartitionID, p.Core)
			}
			return nil
		},
	}
}

func partitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "partition <namespace> <topic> <partition>",
		Short: "Show a partition's replica set and reconciliation status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			partition, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("partition must be an integer: %s", args[2])
			}
			p, err := newClient().GetPartition(args[0], args[1], partition)
			if err != nil {
				return err
			}
			fmt.Printf("%s/%s/%d\tstatus %s\n", p.Namespace, p.Topic, p.PartitionID, p.Status)
			for _, r := range p.Replicas {
				fmt.Printf("  node %d\tcore %d\n", r.NodeID, r.Core)
			}
			return nil
		},
	}
}

func transferCmd() *cobra.Command {
	var target int
	cmd := &cobra.Command{
		Use:   "transfer-leadership <group-id>",
		Short: "Transfer leadership of a raft group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("group id must be an integer: %s", args[0])
			}
			return newClient().TransferGroupLeadership(group, target)
		},
	}
	cmd.Flags().IntVar(&target, "target", -1, "Node that should take leadership (default: let consensus choose)")
	return cmd
}

func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move-replicas <namespace> <topic> <partition> <node:core>...",
		Short: "Reassign a partition's replica set",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			partition, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("partition must be an integer: %s", args[2])
			}
			replicas := make([]client.Replica, 0, len(args)-3)
			for _, arg := range args[3:] {
				node, core, ok := strings.Cut(arg, ":")
				if !ok {
					return fmt.Errorf("replica must be node:core, got %s", arg)
				}
				n, err := strconv.Atoi(node)
				if err != nil {
					return fmt.Errorf("node must be an integer: %s", node)
				}
				c, err := strconv.Atoi(core)
				if err != nil {
					return fmt.Errorf("core must be an integer: %s", core)
				}
				replicas = append(replicas, client.Replica{NodeID: n, Core: c})
			}
			return newClient().SetPartitionReplicas(args[0], args[1], partition, replicas)
		},
	}
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage SCRAM credentials",
	}

	var algorithm, password string

	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient().CreateUser(args[0], algorithm, password)
		},
	}
	update := &cobra.Command{
		Use:   "update <username>",
		Short: "Update a user's credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient().UpdateUser(args[0], algorithm, password)
		},
	}
	for _, c := range []*cobra.Command{create, update} {
		c.Flags().StringVar(&algorithm, "algorithm", "SCRAM-SHA-256", "SCRAM mechanism")
		c.Flags().StringVar(&password, "password", "", "Password to derive the credential from")
	}

	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient().DeleteUser(args[0])
		},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := newClient().ListUsers()
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Println(u)
			}
			return nil
		},
	}

	cmd.AddCommand(create, update, del, list)
	return cmd
}
