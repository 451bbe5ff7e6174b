package client

import (
	"context"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// ManagedSystemsClient implements hmc.ManagedSystemsClient.
type ManagedSystemsClient struct {
	client *Client
}

// NewManagedSystemsClient creates a new managed systems client.
func NewManagedSystemsClient(client *Client) *ManagedSystemsClient {
	return &ManagedSystemsClient{client: client}
}

// List implements hmc.ManagedSystemsClient.List.
func (c *ManagedSystemsClient) List(ctx context.Context) ([]*hmc.ManagedSystem, error) {
	entities, err := c.client.listEntities(ctx, uomPath(hmc.KindManagedSystem), hmc.KindManagedSystem)
	if err != nil {
		return nil, err
	}

	systems := make([]*hmc.ManagedSystem, 0, len(entities))
	for _, entity := range entities {
		systems = append(systems, &hmc.ManagedSystem{Entity: entity})
	}

	return systems, nil
}

// Get implements hmc.ManagedSystemsClient.Get.
func (c *ManagedSystemsClient) Get(ctx context.Context, uuid string) (*hmc.ManagedSystem, error) {
	entity, err := c.client.getEntity(ctx, uomPath(hmc.KindManagedSystem, uuid), hmc.KindManagedSystem)
	if err != nil {
		return nil, err
	}

	return &hmc.ManagedSystem{Entity: entity}, nil
}

// PowerOn implements hmc.ManagedSystemsClient.PowerOn.
func (c *ManagedSystemsClient) PowerOn(uuid string, params map[string]string) hmc.Job {
	target := uomPath(hmc.KindManagedSystem, uuid, "do", "PowerOn")

	return c.client.jobs.New(target, "PowerOn", string(hmc.KindManagedSystem), params)
}

// PowerOff implements hmc.ManagedSystemsClient.PowerOff.
func (c *ManagedSystemsClient) PowerOff(uuid string, params map[string]string) hmc.Job {
	target := uomPath(hmc.KindManagedSystem, uuid, "do", "PowerOff")

	return c.client.jobs.New(target, "PowerOff", string(hmc.KindManagedSystem), params)
}
