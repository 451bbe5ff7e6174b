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

// NewSystemsCommand creates the managed systems command group.
func NewSystemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "systems",
		Aliases: []string{"system", "sys"},
		Short:   "Manage physical systems",
		Long:    "List, inspect, and power managed systems",
	}

	cmd.AddCommand(newSystemsListCommand())
	cmd.AddCommand(newSystemsGetCommand())
	cmd.AddCommand(newSystemsPowerCommand("poweron", "Power on a managed system"))
	cmd.AddCommand(newSystemsPowerCommand("poweroff", "Power off a managed system"))

	return cmd
}

func newSystemsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List managed systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			systems, err := client.ManagedSystems().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list managed systems: %w", err)
			}

			return outputSystems(systems)
		},
	}
}

func outputSystems(systems []*hmc.ManagedSystem) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(systemRows(systems))
	case OutputFormatYAML:
		return StandardYAMLRenderer(systemRows(systems))
	default:
		return renderSystemTable(systems)
	}
}

type systemRow struct {
	UUID         string `json:"uuid"          yaml:"uuid"`
	Name         string `json:"name"          yaml:"name"`
	State        string `json:"state"         yaml:"state"`
	SerialNumber string `json:"serial_number" yaml:"serial_number"`
	Partitions   int    `json:"partitions"    yaml:"partitions"`
}

func systemRows(systems []*hmc.ManagedSystem) []systemRow {
	rows := make([]systemRow, 0, len(systems))
	for _, system := range systems {
		rows = append(rows, systemRow{
			UUID:         system.UUID(),
			Name:         system.Name(),
			State:        system.State(),
			SerialNumber: system.SerialNumber(),
			Partitions:   len(system.PartitionIDs()),
		})
	}

	return rows
}

func renderSystemTable(systems []*hmc.ManagedSystem) error {
	if len(systems) == 0 {
		_, _ = os.Stdout.WriteString("No managed systems found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "UUID", "State", "Serial", "Partitions")

	for _, row := range systemRows(systems) {
		_ = table.Append(row.Name, row.UUID, row.State, row.SerialNumber, fmt.Sprintf("%d", row.Partitions))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newSystemsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UUID",
		Short: "Show one managed system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			system, err := client.ManagedSystems().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get managed system: %w", err)
			}

			return outputSystems([]*hmc.ManagedSystem{system})
		},
	}
}

func newSystemsPowerCommand(use, short string) *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
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
			if use == "poweron" {
				job = client.ManagedSystems().PowerOn(args[0], nil)
			} else {
				job = client.ManagedSystems().PowerOff(args[0], nil)
			}

			return runJob(job, wait, timeout)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the job to settle")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "wait deadline (default 30m)")

	return cmd
}
