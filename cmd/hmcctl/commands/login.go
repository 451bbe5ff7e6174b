package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
	"github.com/fivetwenty-io/hmc-client/pkg/hmcclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		endpoint string
		user     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a management console",
		Long:  "Verify credentials against a console and persist them for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = viper.GetString("endpoint")
			}

			if endpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Console endpoint: ")
				endpoint, _ = reader.ReadString('\n')
				endpoint = strings.TrimSpace(endpoint)
			}

			if endpoint == "" {
				return hmc.ErrEndpointRequired
			}

			if user == "" {
				user = viper.GetString("user")
			}

			if user == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("User ID: ")
				user, _ = reader.ReadString('\n')
				user = strings.TrimSpace(user)
			}

			if password == "" {
				password = viper.GetString("password")
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			skipSSL := viper.GetBool("skip_ssl_validation")

			client, err := hmcclient.New(&hmc.Config{
				Endpoint:      endpoint,
				UserID:        user,
				Password:      password,
				SkipTLSVerify: skipSSL,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// A console fetch forces the logon exchange, so bad credentials
			// fail here rather than on the first real command.
			ctx := context.Background()

			console, err := client.ManagementConsole(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to console: %w", err)
			}

			defer func() { _ = client.Close(ctx) }()

			config := loadConfig()
			config.Endpoint = endpoint
			config.User = user
			config.Password = password
			config.SkipSSLValidation = skipSSL

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Logged in to %s (%s %s)\n", endpoint, console.Name(), console.Version())

			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "console endpoint URL")
	cmd.Flags().StringVar(&user, "user", "", "console user ID")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out from the management console",
		Long:  "Clear persisted credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.User = ""
			config.Password = ""

			err := saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
