package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show management console information",
		Long:  "Show the name, version, and build level of the targeted console",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			console, err := client.ManagementConsole(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch console info: %w", err)
			}

			info := struct {
				Name       string `json:"name"        yaml:"name"`
				Version    string `json:"version"     yaml:"version"`
				BuildLevel string `json:"build_level" yaml:"build_level"`
			}{
				Name:       console.Name(),
				Version:    console.Version(),
				BuildLevel: console.BuildLevel(),
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(info)
			case OutputFormatYAML:
				return StandardYAMLRenderer(info)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Name", info.Name)
				_ = table.Append("Version", info.Version)
				_ = table.Append("Build Level", info.BuildLevel)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
