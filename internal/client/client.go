// Package client implements the hmc.Client interface over the Atom document
// protocol: generic entity fetch/list primitives, the job controller, and
// the optimistic-concurrency mutator.
package client

import (
	"context"
	"strings"

	"github.com/fivetwenty-io/hmc-client/internal/auth"
	"github.com/fivetwenty-io/hmc-client/internal/constants"
	"github.com/fivetwenty-io/hmc-client/internal/http"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// Client implements the hmc.Client interface.
type Client struct {
	httpClient *http.Client
	session    auth.SessionManager
	baseURL    string
	logger     hmc.Logger

	// Resource clients
	managedSystems    hmc.ManagedSystemsClient
	logicalPartitions hmc.LogicalPartitionsClient
	virtualIOServers  hmc.VirtualIOServersClient
	virtualSwitches   hmc.VirtualSwitchesClient
	virtualNetworks   hmc.VirtualNetworksClient
	jobs              hmc.JobsClient
}

// New creates a new HMC API client.
func New(config *hmc.Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, hmc.ErrEndpointRequired
	}

	endpoint := normalizeEndpoint(config.Endpoint)

	httpOpts := buildHTTPOptions(config)

	// Build the transport first so the session manager shares its TLS and
	// timeout settings while staying off the 401-retry path.
	httpClient := http.NewClient(endpoint, nil, httpOpts...)
	session := auth.NewSession(endpoint, config.UserID, config.Password, httpClient.StdClient())
	httpClient = http.NewClient(endpoint, session, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		session:    session,
		baseURL:    endpoint,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithSession creates a client with a custom session manager. Used by
// tests and by callers that manage sessions themselves.
func NewWithSession(config *hmc.Config, session auth.SessionManager) (*Client, error) {
	if config.Endpoint == "" {
		return nil, hmc.ErrEndpointRequired
	}

	endpoint := normalizeEndpoint(config.Endpoint)

	client := &Client{
		httpClient: http.NewClient(endpoint, session, buildHTTPOptions(config)...),
		session:    session,
		baseURL:    endpoint,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func buildHTTPOptions(config *hmc.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, http.WithSkipTLSVerify(true))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

func (c *Client) initializeResourceClients() {
	c.managedSystems = NewManagedSystemsClient(c)
	c.logicalPartitions = NewLogicalPartitionsClient(c)
	c.virtualIOServers = NewVirtualIOServersClient(c)
	c.virtualSwitches = NewVirtualSwitchesClient(c)
	c.virtualNetworks = NewVirtualNetworksClient(c)
	c.jobs = NewJobsClient(c)
}

// ManagedSystems implements hmc.Client.ManagedSystems.
func (c *Client) ManagedSystems() hmc.ManagedSystemsClient {
	return c.managedSystems
}

// LogicalPartitions implements hmc.Client.LogicalPartitions.
func (c *Client) LogicalPartitions() hmc.LogicalPartitionsClient {
	return c.logicalPartitions
}

// VirtualIOServers implements hmc.Client.VirtualIOServers.
func (c *Client) VirtualIOServers() hmc.VirtualIOServersClient {
	return c.virtualIOServers
}

// VirtualSwitches implements hmc.Client.VirtualSwitches.
func (c *Client) VirtualSwitches() hmc.VirtualSwitchesClient {
	return c.virtualSwitches
}

// VirtualNetworks implements hmc.Client.VirtualNetworks.
func (c *Client) VirtualNetworks() hmc.VirtualNetworksClient {
	return c.virtualNetworks
}

// Jobs implements hmc.Client.Jobs.
func (c *Client) Jobs() hmc.JobsClient {
	return c.jobs
}

// ManagementConsole implements hmc.Client.ManagementConsole.
func (c *Client) ManagementConsole(ctx context.Context) (*hmc.ManagementConsole, error) {
	entities, err := c.listEntities(ctx, constants.ConsolePath, hmc.KindManagementConsole)
	if err != nil {
		return nil, err
	}

	if len(entities) == 0 {
		return nil, &hmc.ProtocolError{Op: "fetching management console", Detail: "empty console feed"}
	}

	return &hmc.ManagementConsole{Entity: entities[0]}, nil
}

// Close implements hmc.Client.Close.
func (c *Client) Close(ctx context.Context) error {
	if c.session != nil {
		c.session.Logoff(ctx)
	}

	return nil
}
