package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect asynchronous jobs",
		Long:  "Look up the state and results of console jobs by UUID",
	}

	cmd.AddCommand(newJobsGetCommand())

	return cmd
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UUID",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer func() { _ = client.Close(ctx) }()

			status, err := client.Jobs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return StandardJSONRenderer(status)
			case OutputFormatYAML:
				return StandardYAMLRenderer(status)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Job ID", status.JobID)
				_ = table.Append("State", string(status.State))

				if status.Message != "" {
					_ = table.Append("Message", status.Message)
				}

				for name, value := range status.Results {
					_ = table.Append("Result "+name, value)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
