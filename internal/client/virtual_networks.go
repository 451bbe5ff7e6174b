package client

import (
	"context"

	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// Virtual switches and networks are scoped under their managed system:
// /rest/api/uom/ManagedSystem/{uuid}/VirtualSwitch[/{uuid}] and the same for
// VirtualNetwork.

// VirtualSwitchesClient implements hmc.VirtualSwitchesClient.
type VirtualSwitchesClient struct {
	client *Client
}

// NewVirtualSwitchesClient creates a new virtual switches client.
func NewVirtualSwitchesClient(client *Client) *VirtualSwitchesClient {
	return &VirtualSwitchesClient{client: client}
}

// List implements hmc.VirtualSwitchesClient.List.
func (c *VirtualSwitchesClient) List(ctx context.Context, systemUUID string) ([]*hmc.VirtualSwitch, error) {
	path := uomPath(hmc.KindManagedSystem, systemUUID, string(hmc.KindVirtualSwitch))

	entities, err := c.client.listEntities(ctx, path, hmc.KindVirtualSwitch)
	if err != nil {
		return nil, err
	}

	switches := make([]*hmc.VirtualSwitch, 0, len(entities))
	for _, entity := range entities {
		switches = append(switches, &hmc.VirtualSwitch{Entity: entity})
	}

	return switches, nil
}

// Get implements hmc.VirtualSwitchesClient.Get.
func (c *VirtualSwitchesClient) Get(ctx context.Context, systemUUID, uuid string) (*hmc.VirtualSwitch, error) {
	path := uomPath(hmc.KindManagedSystem, systemUUID, string(hmc.KindVirtualSwitch), uuid)

	entity, err := c.client.getEntity(ctx, path, hmc.KindVirtualSwitch)
	if err != nil {
		return nil, err
	}

	return &hmc.VirtualSwitch{Entity: entity}, nil
}

// VirtualNetworksClient implements hmc.VirtualNetworksClient.
type VirtualNetworksClient struct {
	client *Client
}

// NewVirtualNetworksClient creates a new virtual networks client.
func NewVirtualNetworksClient(client *Client) *VirtualNetworksClient {
	return &VirtualNetworksClient{client: client}
}

// List implements hmc.VirtualNetworksClient.List.
func (c *VirtualNetworksClient) List(ctx context.Context, systemUUID string) ([]*hmc.VirtualNetwork, error) {
	path := uomPath(hmc.KindManagedSystem, systemUUID, string(hmc.KindVirtualNetwork))

	entities, err := c.client.listEntities(ctx, path, hmc.KindVirtualNetwork)
	if err != nil {
		return nil, err
	}

	networks := make([]*hmc.VirtualNetwork, 0, len(entities))
	for _, entity := range entities {
		networks = append(networks, &hmc.VirtualNetwork{Entity: entity})
	}

	return networks, nil
}

// Get implements hmc.VirtualNetworksClient.Get.
func (c *VirtualNetworksClient) Get(ctx context.Context, systemUUID, uuid string) (*hmc.VirtualNetwork, error) {
	path := uomPath(hmc.KindManagedSystem, systemUUID, string(hmc.KindVirtualNetwork), uuid)

	entity, err := c.client.getEntity(ctx, path, hmc.KindVirtualNetwork)
	if err != nil {
		return nil, err
	}

	return &hmc.VirtualNetwork{Entity: entity}, nil
}
