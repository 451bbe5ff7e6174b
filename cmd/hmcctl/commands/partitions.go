package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// NewPartitionsCommand creates the logical partitions command group.
func NewPartitionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "partitions",
		Aliases: []string{"partition", "lpar", "lpars"},
		Short:   "Manage logical partitions",
		Long:    "List, inspect, rename, delete, and power logical partitions",
	}

	cmd.AddCommand(newPartitionsListCommand())
	cmd.AddCommand(newPartitionsGetCommand())
	cmd.AddCommand(newPartitionsRenameCommand())
	cmd.AddCommand(newPartitionsDeleteCommand())
	cmd.AddCommand(newPartitionsPowerCommand("poweron", "Activate a partition"))
	cmd.AddCommand(newPartitionsPowerCommand("poweroff", "Power off a partition immediately"))
	cmd.AddCommand(newPartitionsPowerCommand("shutdown", "Shut a partition down through the operating system"))

	return cmd
}

func newPartitionsListCommand() *cobra.Command {
	var systemUUID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logical partitions",
		Long:  "List all partitions, or only those of one managed system",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			var (
				partitions []*hmc.LogicalPartition
				listErr    error
			)

			if systemUUID != "" {
				partitions, listErr = client.LogicalPartitions().ListForSystem(ctx, systemUUID)
			} else {
				partitions, listErr = client.LogicalPartitions().List(ctx)
			}

			if listErr != nil {
				return fmt.Errorf("failed to list partitions: %w", listErr)
			}

			return outputPartitions(partitions)
		},
	}

	cmd.Flags().StringVar(&systemUUID, "system", "", "restrict to one managed system UUID")

	return cmd
}

type partitionRow struct {
	UUID     string `json:"uuid"      yaml:"uuid"`
	Name     string `json:"name"      yaml:"name"`
	State    string `json:"state"     yaml:"state"`
	Memory   string `json:"memory"    yaml:"memory"`
	RMCState string `json:"rmc_state" yaml:"rmc_state"`
}

func partitionRows(partitions []*hmc.LogicalPartition) []partitionRow {
	rows := make([]partitionRow, 0, len(partitions))
	for _, partition := range partitions {
		rows = append(rows, partitionRow{
			UUID:     partition.UUID(),
			Name:     partition.Name(),
			State:    partition.State(),
			Memory:   partition.Memory(),
			RMCState: partition.RMCState(),
		})
	}

	return rows
}

func outputPartitions(partitions []*hmc.LogicalPartition) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(partitionRows(partitions))
	case OutputFormatYAML:
		return StandardYAMLRenderer(partitionRows(partitions))
	default:
		return renderPartitionTable(partitions)
	}
}

func renderPartitionTable(partitions []*hmc.LogicalPartition) error {
	if len(partitions) == 0 {
		_, _ = os.Stdout.WriteString("No partitions found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "UUID", "State", "Memory (MB)", "RMC")

	for _, row := range partitionRows(partitions) {
		_ = table.Append(row.Name, row.UUID, row.State, row.Memory, row.RMCState)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newPartitionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UUID",
		Short: "Show one partition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			partition, err := client.LogicalPartitions().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get partition: %w", err)
			}

			return outputPartitions([]*hmc.LogicalPartition{partition})
		},
	}
}

func newPartitionsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename UUID NAME",
		Short: "Rename a partition",
		Long:  "Rename a partition through a conditional update; concurrent edits are retried",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			partition, err := client.LogicalPartitions().Rename(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to rename partition: %w", err)
			}

			fmt.Printf("Partition %s renamed to %s\n", args[0], partition.Name())

			return nil
		},
	}
}

func newPartitionsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete UUID",
		Short: "Delete a partition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete partition %s? (y/N): ", args[0])

				var answer string

				_, _ = fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			err = client.LogicalPartitions().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete partition: %w", err)
			}

			fmt.Printf("Partition %s deleted\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func newPartitionsPowerCommand(use, short string) *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
		params  map[string]string
	)

	cmd := &cobra.Command{
		Use:   use + " UUID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			var job hmc.Job

			switch use {
			case "poweron":
				job = client.LogicalPartitions().PowerOn(args[0], params)
			case "shutdown":
				job = client.LogicalPartitions().Shutdown(args[0], params)
			default:
				job = client.LogicalPartitions().PowerOff(args[0], params)
			}

			return runJob(job, wait, timeout)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the job to settle")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "wait deadline (default 30m)")
	cmd.Flags().StringToStringVar(&params, "param", nil, "job parameters as name=value pairs")

	return cmd
}
