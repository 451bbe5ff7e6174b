package hmc

import (
	"context"
	"time"
)

// SystemClients provides access to physical resource clients.
type SystemClients interface {
	ManagedSystems() ManagedSystemsClient
}

// PartitionClients provides access to partition resource clients.
type PartitionClients interface {
	LogicalPartitions() LogicalPartitionsClient
	VirtualIOServers() VirtualIOServersClient
}

// NetworkClients provides access to virtual network resource clients.
type NetworkClients interface {
	VirtualSwitches() VirtualSwitchesClient
	VirtualNetworks() VirtualNetworksClient
}

// Client is the top-level HMC API client.
type Client interface {
	SystemClients
	PartitionClients
	NetworkClients

	Jobs() JobsClient

	// ManagementConsole returns the console's own entity.
	ManagementConsole(ctx context.Context) (*ManagementConsole, error)

	// Modify runs the optimistic-concurrency update loop against the
	// freestanding entity at the given location: fetch, apply mutate, submit
	// conditionally on the fetched version tag, retry on conflict up to
	// maxAttempts times. The returned entity is the state submitted by the
	// successful attempt.
	Modify(ctx context.Context, location string, mutate func(*Entity) error, maxAttempts int) (*Entity, error)

	// Close logs the session off. Logoff failures are swallowed.
	Close(ctx context.Context) error
}

// ManagedSystemsClient operates on managed systems.
type ManagedSystemsClient interface {
	List(ctx context.Context) ([]*ManagedSystem, error)
	Get(ctx context.Context, uuid string) (*ManagedSystem, error)
	// PowerOn and PowerOff return an unsubmitted job for the operation; drive
	// it with Job.Run or the individual Submit/Wait/Release steps.
	PowerOn(uuid string, params map[string]string) Job
	PowerOff(uuid string, params map[string]string) Job
}

// LogicalPartitionsClient operates on logical partitions.
type LogicalPartitionsClient interface {
	List(ctx context.Context) ([]*LogicalPartition, error)
	ListForSystem(ctx context.Context, systemUUID string) ([]*LogicalPartition, error)
	Get(ctx context.Context, uuid string) (*LogicalPartition, error)
	Delete(ctx context.Context, uuid string) error
	// Rename updates the partition name through the conditional-update loop.
	Rename(ctx context.Context, uuid string, name string) (*LogicalPartition, error)
	PowerOn(uuid string, params map[string]string) Job
	PowerOff(uuid string, params map[string]string) Job
	// Shutdown requests an OS-level shutdown rather than an immediate
	// power-off. Extra params are merged into the job request.
	Shutdown(uuid string, params map[string]string) Job
}

// VirtualIOServersClient operates on virtual I/O servers.
type VirtualIOServersClient interface {
	List(ctx context.Context) ([]*VirtualIOServer, error)
	Get(ctx context.Context, uuid string) (*VirtualIOServer, error)
}

// VirtualSwitchesClient operates on virtual switches, scoped to a system.
type VirtualSwitchesClient interface {
	List(ctx context.Context, systemUUID string) ([]*VirtualSwitch, error)
	Get(ctx context.Context, systemUUID, uuid string) (*VirtualSwitch, error)
}

// VirtualNetworksClient operates on virtual networks, scoped to a system.
type VirtualNetworksClient interface {
	List(ctx context.Context, systemUUID string) ([]*VirtualNetwork, error)
	Get(ctx context.Context, systemUUID, uuid string) (*VirtualNetwork, error)
}

// JobsClient creates and inspects asynchronous jobs.
type JobsClient interface {
	// New creates an unsubmitted job for the named operation against the named
	// group, to be submitted at the target path.
	New(target, operation, group string, params map[string]string) Job
	// Get fetches the status of an already-submitted job by UUID.
	Get(ctx context.Context, uuid string) (*JobStatus, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// Endpoint is the console base URL (e.g. "https://hmc.example.com:12443").
// UserID and Password are exchanged for a session token at first use; the
// token is attached to every request and transparently re-acquired once when
// the console rejects it.
type Config struct {
	// Endpoint: base URL for the HMC REST API. Required.
	Endpoint string

	// UserID and Password for the session logon exchange.
	UserID   string
	Password string

	// HTTPTimeout: default timeout applied to the underlying HTTP client.
	// Per-call deadlines should be set via context.
	HTTPTimeout time.Duration
	// RetryMax: maximum transport-level retries for transient failures
	// (>=500, 429, connection errors). 0 disables retries.
	RetryMax int
	// RetryWaitMin/RetryWaitMax: backoff bounds applied when RetryMax > 0.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// SkipTLSVerify disables certificate verification. Consoles commonly run
	// with self-signed certificates; prefer installing the CA instead.
	SkipTLSVerify bool
	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
