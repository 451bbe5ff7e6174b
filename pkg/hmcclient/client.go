// Package hmcclient provides the main entry point for creating HMC API
// clients.
package hmcclient

import (
	"fmt"

	"github.com/fivetwenty-io/hmc-client/internal/client"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// New creates a new HMC API client. The session is acquired lazily on the
// first call, so New performs no I/O.
func New(config *hmc.Config) (hmc.Client, error) {
	if config == nil {
		return nil, hmc.ErrEndpointRequired
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithPassword creates a client for the given endpoint and credentials.
func NewWithPassword(endpoint, userID, password string) (hmc.Client, error) {
	return New(&hmc.Config{
		Endpoint: endpoint,
		UserID:   userID,
		Password: password,
	})
}
