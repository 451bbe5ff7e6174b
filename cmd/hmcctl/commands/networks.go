package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewNetworksCommand creates the virtual networking command group.
func NewNetworksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "Inspect virtual networking",
		Long:  "List the virtual switches and VLAN-backed networks of a managed system",
	}

	cmd.AddCommand(newSwitchesListCommand())
	cmd.AddCommand(newNetworksListCommand())

	return cmd
}

func newSwitchesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "switches SYSTEM_UUID",
		Short: "List the virtual switches of a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			switches, err := client.VirtualSwitches().List(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list virtual switches: %w", err)
			}

			type switchRow struct {
				UUID     string `json:"uuid"     yaml:"uuid"`
				Name     string `json:"name"     yaml:"name"`
				Mode     string `json:"mode"     yaml:"mode"`
				Networks int    `json:"networks" yaml:"networks"`
			}

			rows := make([]switchRow, 0, len(switches))
			for _, vswitch := range switches {
				rows = append(rows, switchRow{
					UUID:     vswitch.UUID(),
					Name:     vswitch.Name(),
					Mode:     vswitch.Mode(),
					Networks: len(vswitch.VirtualNetworkIDs()),
				})
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(rows)
			case OutputFormatYAML:
				return StandardYAMLRenderer(rows)
			default:
				if len(rows) == 0 {
					_, _ = os.Stdout.WriteString("No virtual switches found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "UUID", "Mode", "Networks")

				for _, row := range rows {
					_ = table.Append(row.Name, row.UUID, row.Mode, fmt.Sprintf("%d", row.Networks))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newNetworksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list SYSTEM_UUID",
		Short: "List the virtual networks of a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			networks, err := client.VirtualNetworks().List(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list virtual networks: %w", err)
			}

			type networkRow struct {
				UUID   string `json:"uuid"    yaml:"uuid"`
				Name   string `json:"name"    yaml:"name"`
				VLANID string `json:"vlan_id" yaml:"vlan_id"`
			}

			rows := make([]networkRow, 0, len(networks))
			for _, network := range networks {
				rows = append(rows, networkRow{
					UUID:   network.UUID(),
					Name:   network.Name(),
					VLANID: network.VLANID(),
				})
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(rows)
			case OutputFormatYAML:
				return StandardYAMLRenderer(rows)
			default:
				if len(rows) == 0 {
					_, _ = os.Stdout.WriteString("No virtual networks found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "UUID", "VLAN")

				for _, row := range rows {
					_ = table.Append(row.Name, row.UUID, row.VLANID)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
