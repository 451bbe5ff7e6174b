package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hmc-client/internal/constants"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// LogicalPartitionsClient implements hmc.LogicalPartitionsClient.
type LogicalPartitionsClient struct {
	client *Client
}

// NewLogicalPartitionsClient creates a new logical partitions client.
func NewLogicalPartitionsClient(client *Client) *LogicalPartitionsClient {
	return &LogicalPartitionsClient{client: client}
}

// List implements hmc.LogicalPartitionsClient.List.
func (c *LogicalPartitionsClient) List(ctx context.Context) ([]*hmc.LogicalPartition, error) {
	return c.list(ctx, uomPath(hmc.KindLogicalPartition))
}

// ListForSystem implements hmc.LogicalPartitionsClient.ListForSystem.
func (c *LogicalPartitionsClient) ListForSystem(ctx context.Context, systemUUID string) ([]*hmc.LogicalPartition, error) {
	return c.list(ctx, uomPath(hmc.KindManagedSystem, systemUUID, string(hmc.KindLogicalPartition)))
}

func (c *LogicalPartitionsClient) list(ctx context.Context, path string) ([]*hmc.LogicalPartition, error) {
	entities, err := c.client.listEntities(ctx, path, hmc.KindLogicalPartition)
	if err != nil {
		return nil, err
	}

	partitions := make([]*hmc.LogicalPartition, 0, len(entities))
	for _, entity := range entities {
		partitions = append(partitions, &hmc.LogicalPartition{Entity: entity})
	}

	return partitions, nil
}

// Get implements hmc.LogicalPartitionsClient.Get.
func (c *LogicalPartitionsClient) Get(ctx context.Context, uuid string) (*hmc.LogicalPartition, error) {
	entity, err := c.client.getEntity(ctx, uomPath(hmc.KindLogicalPartition, uuid), hmc.KindLogicalPartition)
	if err != nil {
		return nil, err
	}

	return &hmc.LogicalPartition{Entity: entity}, nil
}

// Delete implements hmc.LogicalPartitionsClient.Delete.
func (c *LogicalPartitionsClient) Delete(ctx context.Context, uuid string) error {
	_, err := c.client.httpClient.Delete(ctx, uomPath(hmc.KindLogicalPartition, uuid))
	if err != nil {
		return fmt.Errorf("deleting partition %s: %w", uuid, err)
	}

	return nil
}

// Rename implements hmc.LogicalPartitionsClient.Rename through the
// conditional-update loop.
func (c *LogicalPartitionsClient) Rename(ctx context.Context, uuid, name string) (*hmc.LogicalPartition, error) {
	location := uomPath(hmc.KindLogicalPartition, uuid)

	entity, err := c.client.Modify(ctx, location, func(p *hmc.Entity) error {
		return p.Set("Name", name)
	}, constants.DefaultModifyAttempts)
	if err != nil {
		return nil, err
	}

	return &hmc.LogicalPartition{Entity: entity}, nil
}

// PowerOn implements hmc.LogicalPartitionsClient.PowerOn.
func (c *LogicalPartitionsClient) PowerOn(uuid string, params map[string]string) hmc.Job {
	target := uomPath(hmc.KindLogicalPartition, uuid, "do", "PowerOn")

	return c.client.jobs.New(target, "PowerOn", string(hmc.KindLogicalPartition), params)
}

// PowerOff implements hmc.LogicalPartitionsClient.PowerOff.
func (c *LogicalPartitionsClient) PowerOff(uuid string, params map[string]string) hmc.Job {
	target := uomPath(hmc.KindLogicalPartition, uuid, "do", "PowerOff")

	return c.client.jobs.New(target, "PowerOff", string(hmc.KindLogicalPartition), params)
}

// Shutdown implements hmc.LogicalPartitionsClient.Shutdown. It is the PowerOff
// job with the operation parameter preset to "shutdown"; callers can still
// override it through params.
func (c *LogicalPartitionsClient) Shutdown(uuid string, params map[string]string) hmc.Job {
	merged := map[string]string{"operation": "shutdown"}
	for name, value := range params {
		merged[name] = value
	}

	return c.PowerOff(uuid, merged)
}
