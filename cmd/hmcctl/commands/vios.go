package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// NewVIOSCommand creates the Virtual I/O Server command group.
func NewVIOSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vios",
		Short: "Manage Virtual I/O Servers",
		Long:  "List and inspect Virtual I/O Servers and their storage mappings",
	}

	cmd.AddCommand(newVIOSListCommand())
	cmd.AddCommand(newVIOSMappingsCommand())

	return cmd
}

func newVIOSListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List Virtual I/O Servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			servers, err := client.VirtualIOServers().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list Virtual I/O Servers: %w", err)
			}

			type viosRow struct {
				UUID     string `json:"uuid"     yaml:"uuid"`
				Name     string `json:"name"     yaml:"name"`
				State    string `json:"state"    yaml:"state"`
				Mappings int    `json:"mappings" yaml:"mappings"`
			}

			rows := make([]viosRow, 0, len(servers))
			for _, server := range servers {
				rows = append(rows, viosRow{
					UUID:     server.UUID(),
					Name:     server.Name(),
					State:    server.State(),
					Mappings: len(server.SCSIMappings()),
				})
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(rows)
			case OutputFormatYAML:
				return StandardYAMLRenderer(rows)
			default:
				if len(rows) == 0 {
					_, _ = os.Stdout.WriteString("No Virtual I/O Servers found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "UUID", "State", "SCSI Mappings")

				for _, row := range rows {
					_ = table.Append(row.Name, row.UUID, row.State, fmt.Sprintf("%d", row.Mappings))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newVIOSMappingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mappings UUID",
		Short: "Show the SCSI mappings of one server",
		Long:  "Show each mapping's client slot and backing storage devices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			server, err := client.VirtualIOServers().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get Virtual I/O Server: %w", err)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Client Slot", "Device Kind", "Device Name")

			for _, mapping := range server.SCSIMappings() {
				slot, _ := mapping.Get("ClientAdapterSlot")

				for _, device := range mapping.Storage() {
					name := deviceName(device)
					_ = table.Append(slot, string(device.Kind()), name)
				}
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

// deviceName reads the per-kind name field of a backing device.
func deviceName(device *hmc.Entity) string {
	name, _ := device.Get("Name")

	return name
}
