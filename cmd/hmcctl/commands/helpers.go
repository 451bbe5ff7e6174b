package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
	"github.com/fivetwenty-io/hmc-client/pkg/hmcclient"
)

// Output format constants.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// defaultJobWait bounds job-driving commands invoked with --wait.
const defaultJobWait = 30 * time.Minute

var errNotLoggedIn = errors.New("not logged in: run 'hmcctl login' or set --endpoint, --user, and HMC_PASSWORD")

// CreateClient builds an API client from the effective configuration.
func CreateClient() (hmc.Client, error) {
	config := loadConfig()

	if config.Endpoint == "" || config.User == "" || config.Password == "" {
		return nil, errNotLoggedIn
	}

	client, err := hmcclient.New(&hmc.Config{
		Endpoint:      config.Endpoint,
		UserID:        config.User,
		Password:      config.Password,
		SkipTLSVerify: config.SkipSSLValidation,
		Debug:         viper.GetBool("verbose"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// StandardJSONRenderer writes data to stdout as indented JSON.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data to stdout as YAML.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// runJob submits the job and either waits it to completion or prints the
// submission notice, depending on wait.
func runJob(job hmc.Job, wait bool, timeout time.Duration) error {
	ctx := context.Background()

	if !wait {
		err := job.Submit(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, "Job submitted. Track it with 'hmcctl jobs get' or re-run with --wait.")

		return nil
	}

	if timeout <= 0 {
		timeout = defaultJobWait
	}

	err := job.Run(ctx, timeout, 0)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Job completed.")

	for name, value := range job.Results() {
		fmt.Fprintf(os.Stdout, "  %s: %s\n", name, value)
	}

	return nil
}
